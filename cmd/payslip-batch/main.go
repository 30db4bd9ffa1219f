package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/detect"
	"github.com/joseph-ayodele/payslips-extractor/internal/export"
	"github.com/joseph-ayodele/payslips-extractor/internal/extract"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
	"github.com/joseph-ayodele/payslips-extractor/internal/pdftext"
	"github.com/joseph-ayodele/payslips-extractor/internal/pipeline"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(stderr io.Writer, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

type flags struct {
	config      string
	inputDir    string
	outputDir   string
	patterns    string
	csvFilename string
	layout      string
	noCSV       bool
	noJSON      bool
	noXLSX      bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	f := &flags{}
	fs := flag.NewFlagSet("payslip-batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", os.Getenv("PAYSLIPS_CONFIG"), "TOML config file (default payslips.toml if present)")
	fs.StringVar(&f.inputDir, "input-dir", "", "directory scanned recursively for PDF payslips")
	fs.StringVar(&f.outputDir, "output-dir", "", "directory receiving the extracted files")
	fs.StringVar(&f.patterns, "patterns", "", "pattern table JSON file (default: built-in table)")
	fs.StringVar(&f.csvFilename, "csv-filename", "", "name of the combined CSV file")
	fs.StringVar(&f.layout, "layout", "", "per-document JSON layout: flat or mirrored")
	fs.BoolVar(&f.noCSV, "no-csv", false, "skip the combined CSV file")
	fs.BoolVar(&f.noJSON, "no-json", false, "skip per-document JSON files")
	fs.BoolVar(&f.noXLSX, "no-xlsx", false, "skip the combined XLSX workbook")
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return f, fs, nil
}

// apply overrides cfg with the flags that were set on the command line.
func (f *flags) apply(fs *flag.FlagSet, cfg *common.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "input-dir":
			cfg.Input.Dir = f.inputDir
		case "output-dir":
			cfg.Output.Dir = f.outputDir
		case "patterns":
			cfg.Patterns.Path = f.patterns
		case "csv-filename":
			cfg.Output.CSVFilename = f.csvFilename
		case "layout":
			cfg.Output.Layout = f.layout
		case "no-csv":
			cfg.Output.CSV = !f.noCSV
		case "no-json":
			cfg.Output.JSON = !f.noJSON
		case "no-xlsx":
			cfg.Output.XLSX = !f.noXLSX
		}
	})
}

func run(args []string, stdout, stderr io.Writer) int {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		printError(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		return exitUsage
	}

	cfg, err := common.Load(f.config)
	if err != nil {
		printError(stderr, "Error: %v\n", err)
		return exitFailed
	}
	f.apply(fs, cfg)

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		printError(stderr, "Error: %v\n", err)
		return exitFailed
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		logger.Error("config.invalid", "error", err)
		printError(stderr, "Error: %v\n", err)
		return exitFailed
	}

	table, err := patterns.Load(cfg.Patterns.Path)
	if err != nil {
		logger.Error("patterns.load.failed", "path", cfg.Patterns.Path, "error", err)
		printError(stderr, "Error: %v\n", err)
		return exitFailed
	}
	validator, err := record.NewSchemaValidator(table)
	if err != nil {
		logger.Error("record.schema.failed", "error", err)
		printError(stderr, "Error: %v\n", err)
		return exitFailed
	}

	// Wire stages
	pdf := pdftext.NewExtractor(pdftext.Config{Pdftotext: cfg.PDF.Pdftotext, MaxPages: cfg.PDF.MaxPages}, logger)
	processor := pipeline.NewProcessor(logger,
		pipeline.NewTextStage(extract.NewPDFAdapter(pdf, logger), detect.NewDetector(table), logger),
		pipeline.NewParseStage(extract.NewEngine(table, logger), table, validator, logger),
		export.NewService(export.OptionsFromConfig(cfg.Output), logger),
	)

	runID := uuid.NewString()
	ctx := common.WithRunID(context.Background(), runID)
	logger.Info("batch.start",
		"run_id", runID,
		"input_dir", cfg.Input.Dir,
		"output_dir", cfg.Output.Dir,
		"layout", cfg.Output.Layout,
		"fields", len(table.Fields),
	)

	sum, err := processor.Run(ctx, cfg.Input.Dir, cfg.Output.Dir, cfg.Input.SkipHidden)
	if err != nil {
		logger.Error("batch.failed", "run_id", runID, "error", err)
		printError(stderr, "Error: %v\n", err)
		return exitFailed
	}

	printSummary(stdout, sum)
	if sum.OutputErr != nil {
		printError(stderr, "Warning: aggregate output incomplete: %v\n", sum.OutputErr)
	}
	return exitOK
}

func printSummary(w io.Writer, sum pipeline.Summary) {
	fmt.Fprintf(w, "Batch processing complete!\n")
	fmt.Fprintf(w, "- Run: %s\n", sum.RunID)
	fmt.Fprintf(w, "- Files scanned: %d\n", sum.Scanned)
	fmt.Fprintf(w, "- PDFs found: %d\n", sum.Matched)
	fmt.Fprintf(w, "- Processed: %d\n", sum.Processed)
	fmt.Fprintf(w, "- Skipped: %d\n", sum.Skipped)
	for _, s := range sum.Skips {
		fmt.Fprintf(w, "  - %s: %s\n", s.Path, s.Error)
	}
	if sum.WalkFailed > 0 {
		fmt.Fprintf(w, "- Unreadable entries: %d\n", sum.WalkFailed)
		for _, s := range sum.WalkErrors {
			fmt.Fprintf(w, "  - %s: %s\n", s.Path, s.Error)
		}
	}
	fmt.Fprintf(w, "- Output: %s\n", sum.OutputDir)
	if sum.Outputs.CSV != "" {
		fmt.Fprintf(w, "- CSV: %s\n", sum.Outputs.CSV)
	}
	if sum.Outputs.XLSX != "" {
		fmt.Fprintf(w, "- XLSX: %s\n", sum.Outputs.XLSX)
	}
	if sum.Outputs.SkipLog != "" {
		fmt.Fprintf(w, "- Skip log: %s\n", sum.Outputs.SkipLog)
	}
	if sum.OutputErr != nil {
		fmt.Fprintf(w, "- Aggregate output failed: %v\n", sum.OutputErr)
	}
}
