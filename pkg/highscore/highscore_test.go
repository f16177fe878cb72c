package highscore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	f := NewFileStore(filepath.Join(t.TempDir(), "nope"))
	n, err := f.Load()
	if err != nil || n != 0 {
		t.Errorf("expected 0, nil for a missing file, got %d, %v", n, err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "highscore")
	f := NewFileStore(path)

	for _, score := range []int{40, 250} {
		if err := f.Save(score); err != nil {
			t.Fatalf("Save(%d): %v", score, err)
		}
		got, err := NewFileStore(path).Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got != score {
			t.Errorf("expected %d, got %d", score, got)
		}
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore")
	if err := os.WriteFile(path, []byte("lots"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(); err == nil {
		t.Error("expected a parse error")
	}
}
