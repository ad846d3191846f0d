package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnauthorized is returned when no user is given.
	ErrUnauthorized = models.ErrUnauthorized

	// ErrStoreFailure wraps all errors returned by the store.
	ErrStoreFailure = errors.New("reading expenses failed")
)

// ExpenseFinder loads the expenses of a user dated inside [start, end).
type ExpenseFinder interface {
	FindInWindow(ctx context.Context, owner string, start, end types.Date) ([]models.Expense, error)
}

// FetchExpensesInWindow returns the expenses of the owner inside the window,
// ordered by date and creation.
//
// The finder is never called without an owner.
func FetchExpensesInWindow(ctx context.Context, finder ExpenseFinder, owner string, w Window) ([]models.Expense, error) {
	if owner == "" {
		return nil, ErrUnauthorized
	}

	expenses, err := finder.FindInWindow(ctx, owner, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}

	return expenses, nil
}

// Summary is the aggregate of a list of expenses.
type Summary struct {
	Total      decimal.Decimal            `json:"total" example:"25" swaggertype:"string"` // Sum of all amounts
	ByCategory map[string]decimal.Decimal `json:"byCategory" swaggertype:"object"`         // Sum of amounts per category
}

// CategoryTotal is the aggregate for a single category.
type CategoryTotal struct {
	Category string          `json:"category" example:"food"`                 // Category label
	Count    int             `json:"count" example:"2"`                       // Number of expenses
	Total    decimal.Decimal `json:"total" example:"25" swaggertype:"string"` // Sum of amounts
}

// Summarize adds up the amounts of the expenses in total and per category.
//
// Categories are compared as they are, "Food" and "food" are different
// categories.
func Summarize(expenses []models.Expense) Summary {
	s := Summary{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}

	for _, e := range expenses {
		s.Total = s.Total.Add(e.Amount)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Amount)
	}

	return s
}

// Categories returns the category totals of the expenses sorted by category.
func Categories(expenses []models.Expense) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}

		totals[i].Count++
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})

	return totals
}

// Row is the exported representation of an expense.
type Row struct {
	Date        types.Date
	Category    string
	Amount      decimal.Decimal
	Description string
}

// ToExportRows converts expenses to rows, keeping their order.
func ToExportRows(expenses []models.Expense) []Row {
	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, Row{
			Date:        e.Date,
			Category:    e.Category,
			Amount:      e.Amount,
			Description: e.Description,
		})
	}

	return rows
}
