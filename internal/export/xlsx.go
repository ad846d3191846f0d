package export

import (
	"fmt"

	"github.com/pocketledger/backend/internal/reports"
	"github.com/xuri/excelize/v2"
)

type column struct {
	name  string
	label string
	width float64
}

var xlsxColumns = []column{
	{"A", "Date", 15},
	{"B", "Category", 15},
	{"C", "Amount", 10},
	{"D", "Description", 30},
}

// XLSX renders the rows as a workbook with a single worksheet.
//
// The worksheet starts with a bold header row. Dates are written as
// YYYY-MM-DD strings, amounts as numbers.
func XLSX(rows []reports.Row, sheetName, filename string) (Document, error) {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return Document{}, fmt.Errorf("naming worksheet: %w", err)
	}

	header := make([]any, 0, len(xlsxColumns))
	for _, c := range xlsxColumns {
		if err := f.SetColWidth(sheetName, c.name, c.name, c.width); err != nil {
			return Document{}, fmt.Errorf("setting width of column %s: %w", c.name, err)
		}
		header = append(header, c.label)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return Document{}, fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Document{}, fmt.Errorf("creating header style: %w", err)
	}

	last := xlsxColumns[len(xlsxColumns)-1].name
	if err := f.SetCellStyle(sheetName, "A1", last+"1", bold); err != nil {
		return Document{}, fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return Document{}, err
		}

		values := []any{
			r.Date.String(),
			r.Category,
			r.Amount.InexactFloat64(),
			r.Description,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return Document{}, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Document{}, fmt.Errorf("writing workbook: %w", err)
	}

	return Document{
		Body:        buf.Bytes(),
		Filename:    filename,
		ContentType: ContentTypeXLSX,
	}, nil
}
