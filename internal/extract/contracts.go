package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/payslips-extractor/constants"
)

// HintFilename is the hint key carrying the document's file name.
const HintFilename = "filename"

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-reader" | "pdftotext"
	Duration time.Duration
	Warnings []string
}

// FieldExtractor is Stage 2: text -> field values for one layout.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string, format constants.Format, hints map[string]string) (FieldsResult, error)
}

// FieldsResult maps field name to value; nil means the field was not found.
type FieldsResult struct {
	Values  map[string]*string
	Missing []string
}
