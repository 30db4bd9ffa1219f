package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/payslips-extractor/internal/common"
	"github.com/joseph-ayodele/payslips-extractor/internal/record"
)

// SheetName is the worksheet holding one row per payslip.
const SheetName = "Payslips"

// WriteXLSX writes the same table as WriteCSV into a workbook.
func WriteXLSX(path string, names []string, recs []*record.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return common.NewOutputError(path, err)
	}
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	header := append([]string{ColumnSourceFile, ColumnFormat}, names...)
	if err := writeRow(f, 1, header); err != nil {
		return common.NewOutputError(path, err)
	}
	for i, r := range recs {
		row := append([]string{r.Source, string(r.Format)}, r.Strings()...)
		if err := writeRow(f, i+2, row); err != nil {
			return common.NewOutputError(path, err)
		}
	}

	// Widen the source column, keep the rest readable.
	_ = f.SetColWidth(SheetName, "A", "A", 48)
	if last, err := excelize.ColumnNumberToName(len(header)); err == nil {
		_ = f.SetColWidth(SheetName, "B", last, 16)
	}
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return common.NewOutputError(path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return common.NewOutputError(path, err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &vals)
}
