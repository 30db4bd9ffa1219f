package patterns

import (
	"regexp"

	"github.com/joseph-ayodele/payslips-extractor/constants"
)

// Kind selects the normalizer applied to a captured value.
type Kind string

const (
	KindText   Kind = "text"
	KindAmount Kind = "amount"
	KindDate   Kind = "date"
	KindName   Kind = "name"
)

// Selection decides which match wins when a pattern hits more than once.
type Selection string

const (
	FirstMatch Selection = "first_match"
	LastMatch  Selection = "last_match"
	MaxNumeric Selection = "max_numeric"
)

// Flags every pattern is compiled with: case-insensitive, ^ and $ at line boundaries.
const Flags = "(?im)"

// FormatMarkers are the lowercase phrases that identify a layout.
type FormatMarkers struct {
	TextMarkers []string `json:"text_markers,omitempty"`
	PathMarkers []string `json:"path_markers,omitempty"`
}

// PatternEntry describes how one output field is located.
type PatternEntry struct {
	Name        string                        `json:"name"`
	Kind        Kind                          `json:"kind,omitempty"`
	Selection   Selection                     `json:"selection"`
	Patterns    map[constants.Format][]string `json:"patterns"`
	Fallback    []string                      `json:"fallback,omitempty"`
	UseFilename bool                          `json:"use_filename,omitempty"`
	MonthEndOf  string                        `json:"month_end_of,omitempty"`

	compiled map[constants.Format][]*regexp.Regexp
	fallback []*regexp.Regexp
}

// Compiled returns the ordered patterns for a format.
func (e *PatternEntry) Compiled(format constants.Format) []*regexp.Regexp {
	return e.compiled[format]
}

// FallbackPatterns are tried, in order, when no format pattern yields a value.
func (e *PatternEntry) FallbackPatterns() []*regexp.Regexp {
	return e.fallback
}

// Table is the full, ordered field configuration. Field order is output order.
type Table struct {
	Version int                                `json:"version"`
	Formats map[constants.Format]FormatMarkers `json:"formats,omitempty"`
	Fields  []PatternEntry                     `json:"fields"`

	index map[string]int
}

// FieldNames returns output field names in table order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i := range t.Fields {
		names[i] = t.Fields[i].Name
	}
	return names
}

// Entry looks up a field by display name.
func (t *Table) Entry(name string) (*PatternEntry, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.Fields[i], true
}

// Markers returns the detection markers for a format. Formats without markers
// return the zero value.
func (t *Table) Markers(format constants.Format) FormatMarkers {
	return t.Formats[format]
}

func (t *Table) compile() error {
	t.index = make(map[string]int, len(t.Fields))
	for i := range t.Fields {
		e := &t.Fields[i]
		t.index[e.Name] = i
		if e.Kind == "" {
			e.Kind = KindText
		}
		e.compiled = make(map[constants.Format][]*regexp.Regexp, len(e.Patterns))
		for format, exprs := range e.Patterns {
			for _, expr := range exprs {
				re, err := regexp.Compile(Flags + expr)
				if err != nil {
					return err
				}
				e.compiled[format] = append(e.compiled[format], re)
			}
		}
		e.fallback = e.fallback[:0]
		for _, expr := range e.Fallback {
			re, err := regexp.Compile(Flags + expr)
			if err != nil {
				return err
			}
			e.fallback = append(e.fallback, re)
		}
	}
	return nil
}
