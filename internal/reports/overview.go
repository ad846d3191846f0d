package reports

import (
	"sort"

	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetStatus compares the spending in a category with its limit.
type BudgetStatus struct {
	Category  string          `json:"category" example:"food"`                      // Category label
	Limit     decimal.Decimal `json:"limit" example:"300" swaggertype:"string"`     // Sum of all budget limits for the category
	Spent     decimal.Decimal `json:"spent" example:"25" swaggertype:"string"`      // Sum of all expenses in the category
	Remaining decimal.Decimal `json:"remaining" example:"275" swaggertype:"string"` // Limit minus spent, negative when overspent
	Exceeded  bool            `json:"exceeded" example:"false"`                     // Is more spent than the limit?
}

// Overview compares the summary of a period with the budgets of the user.
type Overview struct {
	Limit      decimal.Decimal `json:"limit" example:"500" swaggertype:"string"`     // Sum of all budget limits
	Spent      decimal.Decimal `json:"spent" example:"25" swaggertype:"string"`      // Sum of all expenses
	Remaining  decimal.Decimal `json:"remaining" example:"475" swaggertype:"string"` // Limit minus spent
	Categories []BudgetStatus  `json:"categories"`                                   // Status per category, sorted by category
}

// NewOverview builds the overview from the budgets and a summary.
//
// Limits of budgets for the same category are added up. Categories with
// expenses but no budget are listed with a limit of zero.
func NewOverview(budgets []models.Budget, summary Summary) Overview {
	limits := make(map[string]decimal.Decimal)
	for _, b := range budgets {
		limits[b.Category] = limits[b.Category].Add(b.Limit)
	}

	for category := range summary.ByCategory {
		if _, ok := limits[category]; !ok {
			limits[category] = decimal.Zero
		}
	}

	o := Overview{
		Limit:      decimal.Zero,
		Spent:      summary.Total,
		Categories: make([]BudgetStatus, 0, len(limits)),
	}

	for category, limit := range limits {
		spent := summary.ByCategory[category].Add(decimal.Zero)
		remaining := limit.Sub(spent)

		o.Limit = o.Limit.Add(limit)
		o.Categories = append(o.Categories, BudgetStatus{
			Category:  category,
			Limit:     limit,
			Spent:     spent,
			Remaining: remaining,
			Exceeded:  remaining.IsNegative(),
		})
	}

	sort.Slice(o.Categories, func(i, j int) bool {
		return o.Categories[i].Category < o.Categories[j].Category
	})

	o.Remaining = o.Limit.Sub(o.Spent)
	return o
}
