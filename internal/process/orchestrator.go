package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"invoicebatch/pkg/detector"
	"invoicebatch/pkg/ocrclient"
	"invoicebatch/pkg/parser"
	"invoicebatch/pkg/preflight"
	"invoicebatch/pkg/storage"
	"invoicebatch/pkg/validator"
)

// ErrorType classifies why one manifest entry failed.
type ErrorType string

const (
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
)

// Result holds the outcome of processing a single manifest entry.
type Result struct {
	Path         string
	ArtifactPath string
	Skipped      bool
	Language     string
	SizeBytes    int64
	ErrorType    ErrorType
	Err          error
}

// Pipeline bundles the collaborators for one batch run. Client is an
// interface so tests drive the loop without any network access.
type Pipeline struct {
	Client    ocrclient.DocumentProcessor
	Parser    *parser.Parser
	Store     *storage.Storage
	Preflight *preflight.Checker // nil disables local PDF checks
	Logger    *slog.Logger

	// SkipExisting leaves items alone when their artifact already exists.
	// Default behavior is to silently overwrite.
	SkipExisting bool
}

// Run processes every manifest entry in order, one at a time. No entry
// failure aborts the batch: each failure is recorded and the loop moves on,
// so all entries are always attempted.
func (p *Pipeline) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		p.Logger.Info("processing", "file", path)
		result := p.processOne(ctx, path)
		if result.Err != nil {
			p.Logger.Error("item failed", "file", path, "error_type", string(result.ErrorType), "error", result.Err)
		} else if result.Skipped {
			p.Logger.Info("skipped, artifact exists", "file", path, "artifact", result.ArtifactPath)
		} else {
			p.Logger.Info("saved", "file", path, "artifact", result.ArtifactPath, "size_bytes", result.SizeBytes)
		}
		results = append(results, result)
	}
	return results
}

func (p *Pipeline) processOne(ctx context.Context, path string) Result {
	result := Result{Path: path}

	artifact := p.Store.ArtifactPath(path)
	if p.SkipExisting && p.Store.HasFile(artifact) {
		result.ArtifactPath = artifact
		result.Skipped = true
		return result
	}

	if p.Preflight != nil {
		report, err := p.Preflight.Check(path)
		if err != nil {
			if os.IsNotExist(err) {
				result.ErrorType = ErrorTypeNotFound
				result.Err = fmt.Errorf("file not found: %s", path)
			} else {
				result.ErrorType = ErrorTypeFormat
				result.Err = err
			}
			return result
		}
		if report.IsPDF {
			p.Logger.Debug("preflight passed", "file", path, "pages", report.PageCount, "size_bytes", report.SizeBytes)
		}
	}

	doc, err := p.Client.Process(ctx, path)
	if err != nil {
		var notFound *ocrclient.NotFoundError
		if errors.As(err, &notFound) {
			result.ErrorType = ErrorTypeNotFound
		} else {
			result.ErrorType = ErrorTypeTransport
		}
		result.Err = err
		return result
	}

	if lang, ok := detector.DetectLanguage(doc.OCRText); ok {
		result.Language = lang
		if lang != "English" {
			p.Logger.Warn("document does not look English; extraction patterns may not apply", "file", path, "language", lang)
		}
	}

	record, err := p.Parser.Parse(doc.OCRText)
	if err != nil {
		result.ErrorType = ErrorTypeFormat
		result.Err = err
		return result
	}

	outcome := validator.Validate(record)
	if !outcome.Valid {
		result.ErrorType = ErrorTypeValidation
		result.Err = fmt.Errorf("missing required field: %s", outcome.Reason)
		return result
	}

	written, size, err := p.Store.SaveResult(record, path)
	if err != nil {
		result.ErrorType = ErrorTypeIO
		result.Err = err
		return result
	}
	result.ArtifactPath = written
	result.SizeBytes = size
	return result
}
