package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cutplan/rebarcut/internal/model"
)

// DefaultInventoryPath returns the default file path for the scrap
// inventory file. This is located at ~/.rebarcut/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rebarcut", "inventory.json"), nil
}

// SaveInventory writes the scrap inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.ScrapInventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the scrap inventory from the specified JSON file.
// If the file does not exist, it returns the default (empty) inventory
// and saves it.
func LoadInventory(path string) (model.ScrapInventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultScrapInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.ScrapInventory{}, err
	}
	var inv model.ScrapInventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.ScrapInventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the scrap inventory from the default path.
// If the file does not exist, it creates one with no entries.
func LoadOrCreateInventory() (model.ScrapInventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultScrapInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory exports the scrap inventory to a user-specified JSON file.
func ExportInventory(path string, inv model.ScrapInventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory imports a scrap inventory from a user-specified JSON
// file, merging it with the existing inventory. Duplicate entry IDs are
// skipped.
func ImportInventory(path string, existing model.ScrapInventory) (model.ScrapInventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.ScrapInventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Entries))
	for _, e := range existing.Entries {
		ids[e.ID] = true
	}
	for _, e := range imported.Entries {
		if !ids[e.ID] {
			existing.Entries = append(existing.Entries, e)
			ids[e.ID] = true
		}
	}
	return existing, nil
}
