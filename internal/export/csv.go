package export

import (
	"bytes"

	"github.com/gocarina/gocsv"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

// Leading aggregate columns ahead of the field names.
const (
	ColumnSourceFile = "Source File"
	ColumnFormat     = "Format"
)

// SkipEntry is one skipped document in the skip log.
type SkipEntry struct {
	Path  string `csv:"path"`
	Error string `csv:"error"`
}

// WriteCSV writes one row per record. The header is the source file, the
// detected format, then names; null values are empty cells.
func WriteCSV(path string, names []string, recs []*record.Record) error {
	var buf bytes.Buffer
	w := gocsv.DefaultCSVWriter(&buf)

	header := append([]string{ColumnSourceFile, ColumnFormat}, names...)
	if err := w.Write(header); err != nil {
		return common.NewOutputError(path, err)
	}
	for _, r := range recs {
		row := append([]string{r.Source, string(r.Format)}, r.Strings()...)
		if err := w.Write(row); err != nil {
			return common.NewOutputError(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return common.NewOutputError(path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return common.NewOutputError(path, err)
	}
	return nil
}

// WriteSkipLog writes the path and error of every skipped document.
func WriteSkipLog(path string, entries []SkipEntry) error {
	var buf bytes.Buffer
	if err := gocsv.Marshal(entries, &buf); err != nil {
		return common.NewOutputError(path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return common.NewOutputError(path, err)
	}
	return nil
}
