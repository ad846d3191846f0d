// Package importer turns CSV documents in the monthly report format
// into expenses.
package importer

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketledger/backend/internal/export"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/reports"
)

// ErrInvalidRow is returned for rows that do not describe a valid expense.
var ErrInvalidRow = errors.New("the import contains an invalid expense")

// Parse reads a CSV document and returns the expenses in it, owned by owner.
//
// Every expense carries the hash of its row so that rows that have already
// been imported can be detected.
func Parse(body []byte, owner string) ([]models.Expense, error) {
	rows, err := export.ParseCSV(body)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0, len(rows))
	for i, r := range rows {
		// The first line is the header
		line := i + 2

		if strings.TrimSpace(r.Category) == "" {
			return nil, fmt.Errorf("%w: line %d: the category is missing", ErrInvalidRow, line)
		}

		if r.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: the amount must not be negative", ErrInvalidRow, line)
		}

		expenses = append(expenses, models.Expense{
			OwnerID:     owner,
			Description: r.Description,
			Amount:      r.Amount,
			Category:    r.Category,
			Date:        r.Date,
			ImportHash:  Hash(r),
		})
	}

	return expenses, nil
}

// Hash calculates the SHA256 hash identifying a row in duplicate detection.
func Hash(r reports.Row) string {
	record := strings.Join([]string{r.Date.String(), r.Category, r.Amount.String(), r.Description}, ",")
	return fmt.Sprintf("%x", sha256.Sum256([]byte(record)))
}
