package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/detect"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
	"github.com/joseph-ayodele/payslips-extractor/internal/pdftext"
)

// payslip-text prints the normalized text of one PDF together with the
// layout it would be parsed as. Useful when writing patterns.
func main() {
	cfg, err := common.Load(os.Getenv("PAYSLIPS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "payslip-text <file.pdf>")
		os.Exit(2)
	}
	path := os.Args[1]

	table, err := patterns.Load(cfg.Patterns.Path)
	if err != nil {
		logger.Error("patterns.load.failed", "path", cfg.Patterns.Path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ex := pdftext.NewExtractor(pdftext.Config{Pdftotext: cfg.PDF.Pdftotext, MaxPages: cfg.PDF.MaxPages}, logger)
	res, err := ex.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	format := detect.NewDetector(table).Detect(res.Text, filepath.ToSlash(path))
	logger.Info("text extraction OK",
		"path", path,
		"pages", res.Pages,
		"method", res.Method,
		"format", format,
		"chars", len(res.Text),
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)
	fmt.Println(res.Text)
}
