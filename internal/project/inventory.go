package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ModuPlan/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.moduplan/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to path as JSON, or TOML for a .toml path.
func SaveInventory(path string, inv model.Inventory) error {
	data, err := encode(path, inv)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return writeFile(path, data)
}

// LoadInventory reads the inventory from path.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			return inv, SaveInventory(path, inv)
		}
		return model.Inventory{}, fmt.Errorf("failed to read inventory: %w", err)
	}
	var inv model.Inventory
	if err := decode(path, data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory: %w", err)
	}
	return inv, nil
}

// ImportInventory reads an inventory file and merges it into existing.
// Entries whose IDs are already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, 0, fmt.Errorf("failed to read inventory: %w", err)
	}
	var imported model.Inventory
	if err := decode(path, data, &imported); err != nil {
		return existing, 0, fmt.Errorf("failed to parse inventory: %w", err)
	}
	added := existing.Merge(imported)
	return existing, added, nil
}
