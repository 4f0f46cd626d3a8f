package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheck_MissingFile(t *testing.T) {
	c := NewChecker()
	if _, err := c.Check(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Check() succeeded for missing file")
	}
}

func TestCheck_NonPDFPassesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, []byte("not a real image"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	c := NewChecker()
	report, err := c.Check(path)
	if err != nil {
		t.Fatalf("Check() failed for non-PDF input: %v", err)
	}
	if report.IsPDF {
		t.Error("Check() flagged .png as PDF")
	}
	if report.PageCount != 0 {
		t.Errorf("PageCount = %d, want 0 for non-PDF", report.PageCount)
	}
	if report.SizeBytes == 0 {
		t.Error("SizeBytes = 0, want file size")
	}
}

func TestCheck_CorruptPDFRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7 garbage with no structure"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	c := NewChecker()
	if _, err := c.Check(path); err == nil {
		t.Error("Check() accepted a corrupt PDF")
	}
}
