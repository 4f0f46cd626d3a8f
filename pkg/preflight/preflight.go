// Package preflight runs cheap local checks on input documents before an API
// call is spent on them.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Report summarizes the local checks for one input file.
// PageCount is zero for non-PDF inputs, which are passed through unchecked.
type Report struct {
	Path      string
	SizeBytes int64
	IsPDF     bool
	PageCount int
}

// Checker validates input files locally. PDF structure checks go through
// pdfcpu; other file types are only stat'ed.
type Checker struct {
	conf *model.Configuration
}

func NewChecker() *Checker {
	return &Checker{conf: model.NewDefaultConfiguration()}
}

// Check stats the file and, for .pdf inputs, validates the PDF structure and
// counts pages. A corrupt PDF fails here instead of burning an API call.
func (c *Checker) Check(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	report := &Report{Path: path, SizeBytes: info.Size()}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return report, nil
	}
	report.IsPDF = true

	if err := api.ValidateFile(path, c.conf); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", path, err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages in %s: %w", path, err)
	}
	report.PageCount = pages

	return report, nil
}
