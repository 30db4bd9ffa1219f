package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/detect"
	"github.com/joseph-ayodele/payslips-extractor/internal/extract"
	"github.com/joseph-ayodele/payslips-extractor/internal/ingest"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

// TextStage reads a document and decides its layout.
type TextStage struct {
	TextExtractor extract.TextExtractor
	Detector      *detect.Detector
	Logger        *slog.Logger
}

func NewTextStage(tx extract.TextExtractor, detector *detect.Detector, logger *slog.Logger) *TextStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextStage{TextExtractor: tx, Detector: detector, Logger: logger}
}

// Run returns the document text and its detected format.
func (s *TextStage) Run(ctx context.Context, doc ingest.Document) (extract.TextExtractionResult, constants.Format, error) {
	res, err := s.TextExtractor.Extract(ctx, doc.Path)
	if err != nil {
		if !common.IsDocumentReadError(err) {
			err = common.NewDocumentReadError(doc.Path, err)
		}
		return res, "", err
	}
	format := s.Detector.Detect(res.Text, doc.RelPath)
	common.LoggerFrom(ctx, s.Logger).Debug("pipeline.text.ok",
		"method", res.Method,
		"pages", res.Pages,
		"format", format,
		"duration_ms", res.Duration.Milliseconds(),
	)
	for _, w := range res.Warnings {
		common.LoggerFrom(ctx, s.Logger).Warn("pipeline.text.warning", "warning", w)
	}
	return res, format, nil
}

// ParseStage turns text into a validated record.
type ParseStage struct {
	FieldExtractor extract.FieldExtractor
	Table          *patterns.Table
	Validator      *record.SchemaValidator
	Logger         *slog.Logger
}

func NewParseStage(fx extract.FieldExtractor, table *patterns.Table, validator *record.SchemaValidator, logger *slog.Logger) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{FieldExtractor: fx, Table: table, Validator: validator, Logger: logger}
}

// Run extracts fields for format and assembles the record.
func (s *ParseStage) Run(ctx context.Context, doc ingest.Document, text string, format constants.Format) (*record.Record, error) {
	hints := map[string]string{extract.HintFilename: filepath.Base(doc.Path)}
	fields, err := s.FieldExtractor.ExtractFields(ctx, text, format, hints)
	if err != nil {
		return nil, err
	}
	rec := record.Assemble(s.Table, doc.RelPath, format, fields)
	if s.Validator != nil {
		if err := s.Validator.Validate(rec); err != nil {
			return nil, err
		}
	}
	if len(fields.Missing) > 0 {
		common.LoggerFrom(ctx, s.Logger).Debug("pipeline.parse.missing", "fields", fields.Missing)
	}
	return rec, nil
}
