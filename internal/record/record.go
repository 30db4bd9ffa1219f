// Package record assembles extracted field values into the fixed output shape.
package record

import (
	"bytes"
	"encoding/json"

	"github.com/joseph-ayodele/payslips-extractor/constants"
	"github.com/joseph-ayodele/payslips-extractor/internal/extract"
	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

// Field is one output key and its value; a nil Value serializes as null.
type Field struct {
	Name  string
	Value *string
}

// Record is the output for one document. Fields follow pattern table order
// and always carry the full key set, whatever the detected format.
type Record struct {
	Source string
	Format constants.Format
	Fields []Field
}

// Assemble builds a Record from extractor output. Names the extractor did not
// report are present with a nil value.
func Assemble(table *patterns.Table, source string, format constants.Format, res extract.FieldsResult) *Record {
	names := table.FieldNames()
	r := &Record{Source: source, Format: format, Fields: make([]Field, len(names))}
	for i, name := range names {
		r.Fields[i] = Field{Name: name, Value: res.Values[name]}
	}
	return r
}

// Names returns the record keys in output order.
func (r *Record) Names() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Name
	}
	return out
}

// Get returns the value for name and whether the key exists.
func (r *Record) Get(name string) (*string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Strings returns values in output order with nulls rendered empty.
func (r *Record) Strings() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		if f.Value != nil {
			out[i] = *f.Value
		}
	}
	return out
}

// MarshalJSON writes an object whose key order is the field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if f.Value == nil {
			buf.WriteString("null")
			continue
		}
		if err := writeString(&buf, *f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
