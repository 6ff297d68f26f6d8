package assemble

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileReaderFallsBackToSearchPaths(t *testing.T) {
	primaryDir := t.TempDir()
	libDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(libDir, "macros.asm"), []byte("nop;"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFileReader(primaryDir, libDir)
	text, err := r.ReadText("macros.asm")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "nop;" {
		t.Errorf("ReadText = %q, want %q", text, "nop;")
	}
}

func TestFileReaderPrefersActiveDirectoryOverSearchPaths(t *testing.T) {
	primaryDir := t.TempDir()
	libDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(primaryDir, "macros.asm"), []byte("rts;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(libDir, "macros.asm"), []byte("nop;"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFileReader(primaryDir, libDir)
	text, err := r.ReadText("macros.asm")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "rts;" {
		t.Errorf("ReadText = %q, want the active-directory copy %q", text, "rts;")
	}
}
