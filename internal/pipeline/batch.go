package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/export"
	"github.com/joseph-ayodele/payslips-extractor/internal/ingest"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

// Summary is the end-of-run report.
type Summary struct {
	RunID      string
	InputDir   string
	OutputDir  string
	Scanned    uint32
	Matched    uint32
	Processed  int
	Skipped    int
	Skips      []export.SkipEntry
	// WalkFailed counts directory entries the scan could not read. They are
	// not documents, so they stay out of Processed and Skipped.
	WalkFailed int
	WalkErrors []export.SkipEntry
	Outputs    export.Outputs
	// OutputErr holds failed aggregate writes. The run still completes.
	OutputErr  error
	Duration   time.Duration
}

// Run processes every PDF under inputDir in lexical order and then writes the
// aggregate outputs. Per-document failures end up in Summary.Skips. Unreadable
// entries and failed aggregate writes are reported on the Summary as well;
// only a failed walk of the root is returned as an error.
func (p *Processor) Run(ctx context.Context, inputDir, outputDir string, skipHidden bool) (Summary, error) {
	start := time.Now()
	logger := common.LoggerFrom(ctx, p.Logger)
	sum := Summary{RunID: common.RunIDFromContext(ctx), InputDir: inputDir, OutputDir: outputDir}

	var recs []*record.Record
	stats, walkErrs, err := ingest.ScanDirectory(ctx, inputDir, skipHidden, func(ctx context.Context, doc ingest.Document) error {
		res := p.ProcessDocument(ctx, doc)
		switch res.Status {
		case constants.DocumentProcessed:
			sum.Processed++
			recs = append(recs, res.Record)
		default:
			sum.Skipped++
			sum.Skips = append(sum.Skips, export.SkipEntry{Path: doc.Path, Error: res.Err.Error()})
		}
		return nil
	})
	sum.Scanned, sum.Matched = stats.Scanned, stats.Matched
	sum.addWalkErrors(logger, walkErrs)
	if err != nil {
		sum.Duration = time.Since(start)
		return sum, fmt.Errorf("scan input: %w", err)
	}

	outs, err := p.Export.WriteAggregates(ctx, p.Parse.Table.FieldNames(), recs, sum.skipLog())
	sum.Outputs = outs
	sum.Duration = time.Since(start)
	if err != nil {
		logger.Error("pipeline.aggregate.failed", "err", err)
		sum.OutputErr = err
	}

	logger.Info("pipeline.run.done",
		"scanned", sum.Scanned,
		"matched", sum.Matched,
		"processed", sum.Processed,
		"skipped", sum.Skipped,
		"walk_failed", sum.WalkFailed,
		"output_dir", outputDir,
		"elapsed_ms", sum.Duration.Milliseconds(),
	)
	return sum, nil
}

func (s *Summary) addWalkErrors(logger *slog.Logger, errs []ingest.WalkError) {
	for _, we := range errs {
		logger.Warn("pipeline.walk.failed", "path", we.Path, "err", we.Err)
		s.WalkFailed++
		s.WalkErrors = append(s.WalkErrors, export.SkipEntry{Path: we.Path, Error: we.Err.Error()})
	}
}

// skipLog lists skipped documents first, then unreadable entries.
func (s *Summary) skipLog() []export.SkipEntry {
	if len(s.WalkErrors) == 0 {
		return s.Skips
	}
	out := make([]export.SkipEntry, 0, len(s.Skips)+len(s.WalkErrors))
	out = append(out, s.Skips...)
	return append(out, s.WalkErrors...)
}
