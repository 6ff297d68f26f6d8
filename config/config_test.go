package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom(missing) returned an error: %v", err)
	}
	want := DefaultConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadFrom(missing) = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFromParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lasm.toml")
	contents := `
[assemble]
cpu = "65816"
hex_prefix = "$"
abort_on_error = true

[include]
search_paths = ["lib", "vendor"]
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Assemble.CPU != "65816" {
		t.Errorf("CPU = %q, want 65816", cfg.Assemble.CPU)
	}
	if cfg.Assemble.HexPrefix != "$" {
		t.Errorf("HexPrefix = %q, want $", cfg.Assemble.HexPrefix)
	}
	if !cfg.Assemble.AbortOnError {
		t.Error("AbortOnError should be true")
	}
	if cfg.Assemble.Delimiter != "." {
		t.Errorf("Delimiter = %q, unset field should keep the default from DefaultConfig", cfg.Assemble.Delimiter)
	}
	if len(cfg.Include.SearchPaths) != 2 || cfg.Include.SearchPaths[0] != "lib" {
		t.Errorf("SearchPaths = %v, want [lib vendor]", cfg.Include.SearchPaths)
	}
}
