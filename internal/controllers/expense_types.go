package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	Description string          `json:"description" example:"Weekly groceries" default:""`                               // Free text describing the expense
	Amount      decimal.Decimal `json:"amount" example:"12.50" swaggertype:"string" binding:"gte=0"`                     // Amount of the expense, must not be negative
	Category    string          `json:"category" example:"food" binding:"required"`                                      // Category of the expense. Case sensitive
	Date        types.Date      `json:"date" example:"2024-01-05" swaggertype:"string" format:"date" binding:"required"` // Date of the expense in YYYY-MM-DD format
}

// expenseFields are the names of all fields of ExpenseEditable, used for full updates.
var expenseFields = []any{"Description", "Amount", "Category", "Date"}

func (editable ExpenseEditable) model(owner string) models.Expense {
	return models.Expense{
		OwnerID:     owner,
		Description: editable.Description,
		Amount:      editable.Amount,
		Category:    editable.Category,
		Date:        editable.Date,
	}
}

func newExpenseEditable(model models.Expense) ExpenseEditable {
	return ExpenseEditable{
		Description: model.Description,
		Amount:      model.Amount,
		Category:    model.Category,
		Date:        model.Date,
	}
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/expenses/d1c0d3e4-6d0a-4c7e-a6d3-30c5a1e2c5d1"` // The expense itself
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.ContextURL))

	return Expense{
		DefaultModel:    model.DefaultModel,
		ExpenseEditable: newExpenseEditable(model),
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/expenses/%s", url, model.ID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	Category    string     `form:"category"`                                           // Exact category
	Description string     `form:"description" filterField:"false"`                    // By string in the description
	FromDate    types.Date `form:"fromDate" filterField:"false" swaggertype:"string"`  // Expenses on or after this date
	UntilDate   types.Date `form:"untilDate" filterField:"false" swaggertype:"string"` // Expenses on or before this date
	Offset      uint       `form:"offset" filterField:"false"`                         // The offset of the first expense returned. Defaults to 0.
	Limit       int        `form:"limit" filterField:"false"`                          // Maximum number of expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		Category: f.Category,
	}
}

type ExpenseImportResult struct {
	Created []Expense `json:"created"`             // The expenses that have been created
	Skipped int       `json:"skipped" example:"2"` // Number of rows that had already been imported before
}

type ExpenseImportResponse struct {
	Data  *ExpenseImportResult `json:"data"`                                                   // Result of the import
	Error *string              `json:"error" example:"the import contains an invalid expense"` // The error, if any occurred
}
