package process

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"invoicebatch/internal/common"
	"invoicebatch/models"
	"invoicebatch/pkg/manifest"
	"invoicebatch/pkg/ocrclient"
	"invoicebatch/pkg/parser"
	"invoicebatch/pkg/preflight"
	"invoicebatch/pkg/storage"
)

// NewLogger builds the shared JSON logger. --quiet drops everything below
// errors so stdout stays clean for summary output.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// ProcessAction runs the full batch: manifest -> OCR API -> parse ->
// validate -> artifact, sequentially, one file at a time.
func ProcessAction(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))
	startTime := time.Now()

	cfg, err := models.LoadConfig(c.String("config"), c.String("env-file"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	// Fail fast on credentials: if config is broken no file can succeed.
	client, err := ocrclient.New(cfg.APIBaseURL, cfg.Credentials, cfg.Timeout)
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(2)
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(2)
	}

	paths, err := manifest.Load(c.String("list"))
	if err != nil {
		logger.Error("failed to load batch manifest", "error", err)
		os.Exit(2)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No files to process.")
		return nil
	}

	pipeline := &Pipeline{
		Client:       client,
		Parser:       &parser.Parser{},
		Store:        store,
		Logger:       logger,
		SkipExisting: c.Bool("skip-existing"),
	}
	if !c.Bool("no-preflight") {
		pipeline.Preflight = preflight.NewChecker()
	}

	logger.Info("starting batch", "files", len(paths), "output_dir", cfg.OutputDir)
	results := pipeline.Run(context.Background(), paths)

	summary := BuildSummary(results, time.Since(startTime))
	logger.Info("batch finished",
		"total", summary.TotalFiles,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	fmt.Fprintln(os.Stderr, summary.Tally())

	if c.Bool("json") {
		if err := summary.Render(os.Stdout, c.String("fields")); err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
	}

	// Per-item failures never fail the run; the batch completed.
	return nil
}

// PreflightAction runs only the local PDF checks over the manifest — no
// credentials, no network. Useful to vet a batch before spending API calls.
func PreflightAction(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))

	paths, err := manifest.Load(c.String("list"))
	if err != nil {
		logger.Error("failed to load batch manifest", "error", err)
		os.Exit(2)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "No files to check.")
		return nil
	}

	checker := preflight.NewChecker()
	var passed, failed int
	for _, path := range paths {
		report, err := checker.Check(path)
		if err != nil {
			failed++
			logger.Error("preflight failed", "file", path, "error", err)
			continue
		}
		passed++

		// Hash the input so a batch can be audited against what was vetted.
		var hash string
		if data, err := os.ReadFile(path); err == nil {
			hash = common.ContentHash(data)
		}
		logger.Info("preflight ok",
			"file", path,
			"is_pdf", report.IsPDF,
			"pages", report.PageCount,
			"size_bytes", report.SizeBytes,
			"sha256", hash,
		)
	}

	fmt.Fprintf(os.Stderr, "checked %d file(s): %d ok, %d failed\n", len(paths), passed, failed)
	return nil
}
