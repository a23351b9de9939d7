package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Assembler.StrictRegisterBound {
		t.Error("Expected StrictRegisterBound=false")
	}
	if !cfg.Assembler.WarnDataSizeMismatch {
		t.Error("Expected WarnDataSizeMismatch=true")
	}
	if cfg.Output.DefaultOutputSuffix != ".bin" {
		t.Errorf("Expected DefaultOutputSuffix=.bin, got %s", cfg.Output.DefaultOutputSuffix)
	}
	if !cfg.Listing.ShowDataSection {
		t.Error("Expected ShowDataSection=true")
	}
	if cfg.Listing.BytesPerRow != 16 {
		t.Errorf("Expected BytesPerRow=16, got %d", cfg.Listing.BytesPerRow)
	}
}

func TestLoadNonExistentReturnsDefault(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not error on a missing file: %v", err)
	}
	if cfg.Assembler.StrictRegisterBound {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")

	contents := `
[assembler]
strict_register_bound = true
warn_data_size_mismatch = false

[output]
default_output_suffix = ".img"

[listing]
show_data_section = false
bytes_per_row = 8
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Assembler.StrictRegisterBound {
		t.Error("Expected StrictRegisterBound=true")
	}
	if cfg.Assembler.WarnDataSizeMismatch {
		t.Error("Expected WarnDataSizeMismatch=false")
	}
	if cfg.Output.DefaultOutputSuffix != ".img" {
		t.Errorf("DefaultOutputSuffix = %s", cfg.Output.DefaultOutputSuffix)
	}
	if cfg.Listing.ShowDataSection {
		t.Error("Expected ShowDataSection=false")
	}
	if cfg.Listing.BytesPerRow != 8 {
		t.Errorf("BytesPerRow = %d", cfg.Listing.BytesPerRow)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "invalid.toml")

	invalid := `
[assembler]
strict_register_bound = "not a bool"
`
	if err := os.WriteFile(path, []byte(invalid), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}
