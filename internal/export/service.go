// Package export writes extracted records to disk: per-document JSON plus
// aggregate CSV, XLSX and the skip log.
package export

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

type Options struct {
	Dir             string
	Layout          string // common.LayoutFlat | common.LayoutMirrored
	JSON            bool
	CSV             bool
	CSVFilename     string
	XLSX            bool
	XLSXFilename    string
	SkipLogFilename string
}

// OptionsFromConfig maps the [output] config section onto writer options.
func OptionsFromConfig(c common.OutputConfig) Options {
	return Options{
		Dir:             c.Dir,
		Layout:          c.Layout,
		JSON:            c.JSON,
		CSV:             c.CSV,
		CSVFilename:     c.CSVFilename,
		XLSX:            c.XLSX,
		XLSXFilename:    c.XLSXFilename,
		SkipLogFilename: c.SkipLogFilename,
	}
}

// Outputs lists the aggregate files a run produced.
type Outputs struct {
	CSV     string
	XLSX    string
	SkipLog string
}

// Service is a small façade over the individual writers.
type Service struct {
	opts   Options
	logger *slog.Logger

	// written maps each JSON path of this run to the document that produced it.
	written map[string]string
}

func NewService(opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Layout == "" {
		opts.Layout = common.LayoutFlat
	}
	return &Service{opts: opts, logger: logger, written: make(map[string]string)}
}

// WriteRecord writes the per-document JSON file and returns its path, or ""
// when JSON output is disabled. Reusing a path already written for another
// document in this run replaces that file and logs export.json.overwrite.
func (s *Service) WriteRecord(ctx context.Context, r *record.Record, relPath string) (string, error) {
	if !s.opts.JSON {
		return "", nil
	}
	logger := common.LoggerFrom(ctx, s.logger)
	path := JSONPath(s.opts.Dir, s.opts.Layout, relPath)
	if prev, ok := s.written[path]; ok && prev != relPath {
		logger.Warn("export.json.overwrite", "path", path, "previous", prev, "source", relPath)
	}
	if err := WriteJSON(path, r); err != nil {
		return "", err
	}
	s.written[path] = relPath
	logger.Debug("export.json.ok", "path", path)
	return path, nil
}

// WriteAggregates writes the enabled aggregate files. A failed file does not
// stop the others; the failures are joined in the returned error. The skip
// log is only written when something was skipped.
func (s *Service) WriteAggregates(ctx context.Context, names []string, recs []*record.Record, skips []SkipEntry) (Outputs, error) {
	logger := common.LoggerFrom(ctx, s.logger)
	var out Outputs
	var errs []error

	if s.opts.CSV {
		path := filepath.Join(s.opts.Dir, s.opts.CSVFilename)
		if err := WriteCSV(path, names, recs); err != nil {
			logger.Error("export.csv.failed", "path", path, "error", err)
			errs = append(errs, err)
		} else {
			out.CSV = path
			logger.Info("export.csv.ok", "path", path, "rows", len(recs))
		}
	}

	if s.opts.XLSX {
		path := filepath.Join(s.opts.Dir, s.opts.XLSXFilename)
		if err := WriteXLSX(path, names, recs); err != nil {
			logger.Error("export.xlsx.failed", "path", path, "error", err)
			errs = append(errs, err)
		} else {
			out.XLSX = path
			logger.Info("export.xlsx.ok", "path", path, "rows", len(recs))
		}
	}

	if len(skips) > 0 && s.opts.SkipLogFilename != "" {
		path := filepath.Join(s.opts.Dir, s.opts.SkipLogFilename)
		if err := WriteSkipLog(path, skips); err != nil {
			logger.Error("export.skiplog.failed", "path", path, "error", err)
			errs = append(errs, err)
		} else {
			out.SkipLog = path
			logger.Info("export.skiplog.ok", "path", path, "entries", len(skips))
		}
	}
	return out, errors.Join(errs...)
}
