// Package pipeline runs the batch: scan, extract text, detect layout,
// extract fields, write outputs. One document at a time.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/export"
	"github.com/joseph-ayodele/payslips-extractor/internal/ingest"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

// DocumentResult is the outcome of one document.
type DocumentResult struct {
	Document   ingest.Document
	Format     constants.Format
	Status     constants.DocumentStatus
	OutputPath string
	Record     *record.Record
	Err        error
}

// Processor coordinates text extraction, field parsing and export.
type Processor struct {
	Logger *slog.Logger
	Text   *TextStage
	Parse  *ParseStage
	Export *export.Service
}

func NewProcessor(logger *slog.Logger, text *TextStage, parse *ParseStage, exp *export.Service) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Parse: parse, Export: exp}
}

// ProcessDocument never returns an error: a failure marks the document skipped
// and the batch continues.
func (p *Processor) ProcessDocument(ctx context.Context, doc ingest.Document) DocumentResult {
	start := time.Now()
	ctx = common.WithDocument(ctx, doc.Path)
	logger := common.LoggerFrom(ctx, p.Logger)
	result := DocumentResult{Document: doc, Status: constants.DocumentSkipped}

	textRes, format, err := p.Text.Run(ctx, doc)
	if err != nil {
		logger.Warn("pipeline.document.skipped", "stage", "text", "err", err)
		result.Err = err
		return result
	}
	result.Format = format

	rec, err := p.Parse.Run(ctx, doc, textRes.Text, format)
	if err != nil {
		logger.Warn("pipeline.document.skipped", "stage", "parse", "err", err)
		result.Err = err
		return result
	}
	result.Record = rec

	out, err := p.Export.WriteRecord(ctx, rec, doc.RelPath)
	if err != nil {
		logger.Error("pipeline.document.skipped", "stage", "export", "err", err)
		result.Err = err
		return result
	}

	result.OutputPath = out
	result.Status = constants.DocumentProcessed
	logger.Info("pipeline.document.ok",
		"format", format,
		"output", out,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result
}
