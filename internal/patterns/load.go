package patterns

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/common"
)

//go:embed default_patterns.json
var defaultTable []byte

// Default returns the built-in pattern table.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Load reads a pattern table from path. An empty path selects the built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewConfigError(fmt.Sprintf("read pattern table %s", path), err)
	}
	return Parse(data)
}

// Parse decodes, validates and compiles a pattern table document.
// Any problem is reported as a configuration error.
func Parse(data []byte) (*Table, error) {
	if err := common.ValidateJSONAgainstSchema(BuildTableJSONSchema(), data); err != nil {
		return nil, common.NewConfigError("pattern table", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var t Table
	if err := dec.Decode(&t); err != nil {
		return nil, common.NewConfigError("decode pattern table", err)
	}

	if err := validateTable(&t); err != nil {
		return nil, common.NewConfigError("pattern table", err)
	}
	if err := t.compile(); err != nil {
		return nil, common.NewConfigError("compile pattern table", err)
	}
	return &t, nil
}

func validateTable(t *Table) error {
	v := common.NewValidator()
	seen := make(map[string]int, len(t.Fields))
	kinds := make(map[string]Kind, len(t.Fields))
	for i, e := range t.Fields {
		kinds[e.Name] = e.Kind
		if prev, dup := seen[e.Name]; dup {
			v.Add(fmt.Sprintf("fields[%d].name", i), e.Name, fmt.Sprintf("duplicates fields[%d]", prev))
		}
		seen[e.Name] = i

		for _, format := range constants.Formats() {
			v.Field(fmt.Sprintf("%s.patterns.%s", e.Name, format), e.Patterns[format], common.Required)
			for j, expr := range e.Patterns[format] {
				v.Field(fmt.Sprintf("%s.patterns.%s[%d]", e.Name, format, j), Flags+expr, common.Regexp)
			}
		}
		for j, expr := range e.Fallback {
			v.Field(fmt.Sprintf("%s.fallback[%d]", e.Name, j), Flags+expr, common.Regexp)
		}
		if e.Selection == MaxNumeric && e.Kind != KindAmount {
			v.Add(e.Name+".selection", e.Selection, "max_numeric requires kind amount")
		}
	}

	for _, e := range t.Fields {
		if e.MonthEndOf == "" {
			continue
		}
		kind, ok := kinds[e.MonthEndOf]
		switch {
		case e.Kind != KindDate:
			v.Add(e.Name+".month_end_of", e.MonthEndOf, "only date fields can derive a month end")
		case !ok:
			v.Add(e.Name+".month_end_of", e.MonthEndOf, "names an unknown field")
		case kind != KindDate:
			v.Add(e.Name+".month_end_of", e.MonthEndOf, "must name a date field")
		}
	}
	return v.Error()
}
