package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cutplan/rebarcut/internal/model"
)

// BackupData is the top-level structure for import/export of all
// persisted application data: app preferences, the banked scrap
// inventory, and saved catalog templates.
type BackupData struct {
	Version   string                     `json:"version"`
	CreatedAt string                     `json:"created_at"`
	Config    model.AppConfig            `json:"config"`
	Inventory model.ScrapInventory       `json:"inventory"`
	Templates model.CatalogTemplateStore `json:"templates"`
}

// ExportAllData exports all application data to a single JSON file at the
// specified path.
func ExportAllData(exportPath string, config model.AppConfig, inventory model.ScrapInventory, templates model.CatalogTemplateStore) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inventory,
		Templates: templates,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentCartillas == nil {
		backup.Config.RecentCartillas = []string{}
	}
	if backup.Inventory.Entries == nil {
		backup.Inventory.Entries = []model.ScrapEntry{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.CatalogTemplate{}
	}
	return backup, nil
}
