package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"invoicebatch/internal/parse"
	"invoicebatch/internal/process"
	"invoicebatch/models"
)

func main() {
	app := &cli.App{
		Name:  "invoicebatch",
		Usage: "batch-extract structured data from PDF invoices via the Veryfi OCR API",
		Commands: []*cli.Command{
			{
				Name:  "process",
				Usage: "process every file in the batch manifest and write JSON artifacts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "list",
						Value: "batch_files.txt",
						Usage: "manifest file with one input path per line",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Value: models.DefaultOutputDir,
						Usage: "directory for extracted JSON artifacts",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "optional YAML config file",
					},
					&cli.StringFlag{
						Name:  "env-file",
						Value: ".env",
						Usage: "env file with the VERYFI_* credentials",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: models.DefaultTimeout,
						Usage: "per-document API timeout",
					},
					&cli.BoolFlag{
						Name:  "skip-existing",
						Usage: "skip files whose artifact already exists instead of overwriting",
					},
					&cli.BoolFlag{
						Name:  "no-preflight",
						Usage: "skip local PDF validation before upload",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the run summary as JSON to stdout",
					},
					&cli.StringFlag{
						Name:  "fields",
						Usage: "comma-separated fields to keep in JSON summary entries",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: process.ProcessAction,
			},
			{
				Name:  "check",
				Usage: "run local PDF checks over the manifest without calling the API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "list",
						Value: "batch_files.txt",
						Usage: "manifest file with one input path per line",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: process.PreflightAction,
			},
			{
				Name:      "parse",
				Usage:     "parse a raw OCR text dump into a structured record, offline",
				ArgsUsage: "<ocr-text-file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "save the record as an artifact instead of printing it",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: parse.ParseAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
