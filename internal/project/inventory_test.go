package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ModuPlan/internal/model"
)

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Modules) == 0 {
		t.Error("expected default modules")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected inventory file to be created: %v", err)
	}

	again, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("second LoadInventory failed: %v", err)
	}
	if again.Modules[0].ID != inv.Modules[0].ID {
		t.Errorf("expected saved IDs to persist, got %s and %s", inv.Modules[0].ID, again.Modules[0].ID)
	}
}

func TestSaveLoadInventoryTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.toml")
	inv := model.Inventory{
		Modules: []model.ModuleType{{ID: "m1", Label: "Loft", Length: 8, Width: 5}},
		Sites:   []model.SitePreset{{ID: "s1", Name: "Lot", Width: 30, Height: 20}},
	}
	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Modules) != 1 || loaded.Modules[0].Length != 8 {
		t.Errorf("unexpected modules %+v", loaded.Modules)
	}
	if len(loaded.Sites) != 1 || loaded.Sites[0].Name != "Lot" {
		t.Errorf("unexpected sites %+v", loaded.Sites)
	}
}

func TestImportInventoryMerges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "import.json")

	existing := model.Inventory{
		Modules: []model.ModuleType{{ID: "m1", Label: "A", Length: 1, Width: 1}},
	}
	imported := model.Inventory{
		Modules: []model.ModuleType{
			{ID: "m1", Label: "A duplicate", Length: 1, Width: 1},
			{ID: "m2", Label: "B", Length: 2, Width: 2},
		},
		Sites: []model.SitePreset{{ID: "s1", Name: "Lot", Width: 10, Height: 10}},
	}
	if err := SaveInventory(path, imported); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	merged, added, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if len(merged.Modules) != 2 {
		t.Errorf("expected 2 modules, got %d", len(merged.Modules))
	}
	if merged.Modules[0].Label != "A" {
		t.Errorf("existing entry should win, got %s", merged.Modules[0].Label)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	out, added, err := ImportInventory(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Error("expected error for missing file")
	}
	if added != 0 || len(out.Modules) != len(existing.Modules) {
		t.Error("existing inventory should be returned unchanged")
	}
}
