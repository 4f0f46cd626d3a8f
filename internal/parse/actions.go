// Package parse implements the offline parse command: run the extraction and
// validation stages against OCR text already on disk, no API involved.
package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"invoicebatch/internal/process"
	"invoicebatch/pkg/detector"
	"invoicebatch/pkg/parser"
	"invoicebatch/pkg/storage"
	"invoicebatch/pkg/validator"
)

// ParseAction reads a raw OCR text file, parses and validates it, and prints
// the record as JSON to stdout (or saves it when --output-dir is set).
func ParseAction(c *cli.Context) error {
	logger := process.NewLogger(c.Bool("quiet"))

	input := c.Args().First()
	if input == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file given")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  invoicebatch parse ocr_dump.txt")
		fmt.Fprintln(os.Stderr, "  invoicebatch parse --output-dir extractedData ocr_dump.txt")
		os.Exit(1)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		logger.Error("failed to read input", "file", input, "error", err)
		os.Exit(2)
	}
	text := string(data)

	if !detector.IsEnglish(text) {
		logger.Warn("text does not look English; extraction patterns may not apply", "file", input)
	}

	p := &parser.Parser{}
	record, err := p.Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", input, err)
	}

	if outcome := validator.Validate(record); !outcome.Valid {
		return fmt.Errorf("invalid record from %s: missing required field: %s", input, outcome.Reason)
	}

	if c.IsSet("output-dir") {
		store, err := storage.New(c.String("output-dir"))
		if err != nil {
			return err
		}
		path, size, err := store.SaveResult(record, input)
		if err != nil {
			return err
		}
		logger.Info("saved", "artifact", path, "size_bytes", size)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
