// Package extract applies a pattern table to document text and normalizes
// what it finds into per-field string values.
package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

// reFilenameName matches "<name> payslip..." at the start of a file name.
var reFilenameName = regexp.MustCompile(`(?i)^([A-Za-z\s']+?)\s+payslip`)

var _ FieldExtractor = (*Engine)(nil)

// Engine is the rule-based FieldExtractor. It holds no per-document state.
type Engine struct {
	table  *patterns.Table
	logger *slog.Logger
}

func NewEngine(table *patterns.Table, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{table: table, logger: logger}
}

// ExtractFields resolves every table field against text. A field without a
// usable match is nil; it is never an error.
func (e *Engine) ExtractFields(ctx context.Context, text string, format constants.Format, hints map[string]string) (FieldsResult, error) {
	res := FieldsResult{Values: make(map[string]*string, len(e.table.Fields))}

	for i := range e.table.Fields {
		entry := &e.table.Fields[i]
		v, ok := e.matchField(entry, text, format, hints)
		if !ok && entry.MonthEndOf == "" {
			v, ok = selectValue(entry, entry.FallbackPatterns(), text)
		}
		if ok {
			res.Values[entry.Name] = &v
		} else {
			res.Values[entry.Name] = nil
		}
	}

	// Derived dates run after the pass so they can read any field. The month
	// end of the source field is preferred over the fallback patterns.
	for i := range e.table.Fields {
		entry := &e.table.Fields[i]
		if entry.MonthEndOf == "" || res.Values[entry.Name] != nil {
			continue
		}
		if src := res.Values[entry.MonthEndOf]; src != nil {
			if v, ok := monthEnd(*src); ok {
				res.Values[entry.Name] = &v
				continue
			}
		}
		if v, ok := selectValue(entry, entry.FallbackPatterns(), text); ok {
			res.Values[entry.Name] = &v
		}
	}

	for _, name := range e.table.FieldNames() {
		if res.Values[name] == nil {
			res.Missing = append(res.Missing, name)
		}
	}

	common.LoggerFrom(ctx, e.logger).Debug("extract.fields.done",
		"format", format,
		"found", len(e.table.Fields)-len(res.Missing),
		"missing", len(res.Missing),
	)
	return res, nil
}

// matchField tries the file name hint and then the patterns of format.
func (e *Engine) matchField(entry *patterns.PatternEntry, text string, format constants.Format, hints map[string]string) (string, bool) {
	if entry.UseFilename {
		if name, ok := nameFromFilename(hints[HintFilename]); ok {
			return name, true
		}
	}
	return selectValue(entry, entry.Compiled(format), text)
}

// selectValue applies the entry's selection rule over patterns in priority
// order. first_match and last_match stop at the first pattern that yields a
// value that normalizes; max_numeric pools every candidate of every pattern.
func selectValue(entry *patterns.PatternEntry, res []*regexp.Regexp, text string) (string, bool) {
	switch entry.Selection {
	case patterns.MaxNumeric:
		return maxNumeric(res, text)
	case patterns.LastMatch:
		for _, re := range res {
			matches := re.FindAllStringSubmatch(text, -1)
			for i := len(matches) - 1; i >= 0; i-- {
				if v, ok := normalize(entry.Kind, firstGroup(matches[i])); ok {
					return v, true
				}
			}
		}
	default:
		for _, re := range res {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if v, ok := normalize(entry.Kind, firstGroup(m)); ok {
					return v, true
				}
			}
		}
	}
	return "", false
}

// maxNumeric keeps the largest parseable candidate; on ties the earliest wins.
func maxNumeric(res []*regexp.Regexp, text string) (string, bool) {
	var best Amount
	found := false
	for _, re := range res {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, g := range m[1:] {
				if strings.TrimSpace(g) == "" {
					continue
				}
				a, ok := normalizeAmount(g)
				if !ok {
					continue
				}
				if !found || a.Value.GreaterThan(best.Value) {
					best, found = a, true
				}
			}
		}
	}
	return best.Text, found
}

// firstGroup returns the first non-empty capture group, or the whole match
// when the pattern has no groups.
func firstGroup(m []string) string {
	if len(m) == 1 {
		return m[0]
	}
	for _, g := range m[1:] {
		if strings.TrimSpace(g) != "" {
			return g
		}
	}
	return ""
}

func nameFromFilename(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	m := reFilenameName.FindStringSubmatch(base)
	if m == nil {
		return "", false
	}
	return normalizeText(m[1])
}
