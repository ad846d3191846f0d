package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"slices"

	"github.com/pocketledger/backend/internal/reports"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{"date", "category", "amount", "description"}

// CSV renders the rows as a CSV document with a header row.
//
// Amounts are written in plain decimal notation, dates as YYYY-MM-DD.
func CSV(rows []reports.Row, filename string) (Document, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return Document{}, fmt.Errorf("writing csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.Date.String(),
			r.Category,
			r.Amount.String(),
			r.Description,
		}
		if err := w.Write(record); err != nil {
			return Document{}, fmt.Errorf("writing csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Document{}, fmt.Errorf("flushing csv: %w", err)
	}

	return Document{
		Body:        buf.Bytes(),
		Filename:    filename,
		ContentType: ContentTypeCSV,
	}, nil
}

// ParseCSV reads a document created by CSV back into rows.
func ParseCSV(body []byte) ([]reports.Row, error) {
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if len(records) == 0 || !slices.Equal(records[0], csvHeader) {
		return nil, fmt.Errorf("%w: the header row is missing", ErrInvalidDocument)
	}

	rows := make([]reports.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		date, err := types.ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, i+2, err)
		}

		amount, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, i+2, err)
		}

		rows = append(rows, reports.Row{
			Date:        date,
			Category:    record[1],
			Amount:      amount,
			Description: record[3],
		})
	}

	return rows, nil
}
