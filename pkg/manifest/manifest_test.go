package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch_files.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, "invoices/a.pdf\n\n  invoices/b.pdf  \ninvoices/c.pdf\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"invoices/a.pdf", "invoices/b.pdf", "invoices/c.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestLoad_PreservesOrderAndDuplicates(t *testing.T) {
	path := writeManifest(t, "b.pdf\na.pdf\nb.pdf\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := []string{"b.pdf", "a.pdf", "b.pdf"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeManifest(t, "\n\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Load() succeeded for missing manifest")
	}
}
