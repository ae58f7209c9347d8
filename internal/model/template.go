package model

import (
	"time"

	"github.com/google/uuid"
)

// CatalogTemplate is a reusable stock catalog saved under a name, so a
// yard's standard commercial lengths per diameter don't need retyping for
// every cartilla run.
type CatalogTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Catalog     StockCatalog `json:"catalog"`
}

// NewCatalogTemplate creates a new template from the given catalog.
func NewCatalogTemplate(name, description string, catalog StockCatalog) CatalogTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return CatalogTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Catalog:     catalog,
	}
}

// CatalogTemplateStore holds a collection of catalog templates.
type CatalogTemplateStore struct {
	Templates []CatalogTemplate `json:"templates"`
}

// NewCatalogTemplateStore creates an empty template store.
func NewCatalogTemplateStore() CatalogTemplateStore {
	return CatalogTemplateStore{Templates: []CatalogTemplate{}}
}

// Add adds a template to the store.
func (ts *CatalogTemplateStore) Add(t CatalogTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *CatalogTemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *CatalogTemplateStore) FindByID(id string) *CatalogTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name,
// or nil.
func (ts *CatalogTemplateStore) FindByName(name string) *CatalogTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the names of every stored template, for UI dropdowns.
func (ts *CatalogTemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
