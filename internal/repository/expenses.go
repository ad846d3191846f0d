package repository

import (
	"context"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"gorm.io/gorm"
)

// Expenses is the Repository for expenses.
type Expenses struct {
	Repository[models.Expense]
}

// NewExpenses returns the Repository for expenses.
func NewExpenses(db *gorm.DB) Expenses {
	return Expenses{New[models.Expense](db)}
}

// FindInWindow returns all expenses of the owner dated on or after start
// and before end, sorted by date and then by creation.
func (r Expenses) FindInWindow(ctx context.Context, owner string, start, end types.Date) ([]models.Expense, error) {
	q, err := r.filtered(ctx, owner, Query{
		Scopes: []func(*gorm.DB) *gorm.DB{DateRange(start, end)},
	})
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0)
	err = q.Order("date ASC").Order("created_at ASC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// ImportHashes returns which of the hashes are carried by expenses of the owner.
func (r Expenses) ImportHashes(ctx context.Context, owner string, hashes []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(hashes) == 0 {
		return existing, nil
	}

	q, err := r.scoped(ctx, owner)
	if err != nil {
		return nil, err
	}

	var found []string
	err = q.Distinct("import_hash").Where("import_hash IN ?", hashes).Pluck("import_hash", &found).Error
	if err != nil {
		return nil, err
	}

	for _, h := range found {
		existing[h] = true
	}

	return existing, nil
}

// DateRange limits a query to records dated on or after start and before end.
// A zero date leaves the respective side of the range open.
func DateRange(start, end types.Date) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !start.IsZero() {
			db = db.Where("date >= ?", start)
		}

		if !end.IsZero() {
			db = db.Where("date < ?", end)
		}

		return db
	}
}
