package controllers

import (
	"fmt"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Category string          `json:"category" example:"food" binding:"required"`                   // Category the budget applies to. Case sensitive
	Limit    decimal.Decimal `json:"limit" example:"300" swaggertype:"string" binding:"gte=0"` // Spending limit for the category, must not be negative
}

// budgetFields are the names of all fields of BudgetEditable, used for full updates.
var budgetFields = []any{"Category", "Limit"}

func (editable BudgetEditable) model(owner string) models.Budget {
	return models.Budget{
		OwnerID:  owner,
		Category: editable.Category,
		Limit:    editable.Limit,
	}
}

func newBudgetEditable(model models.Budget) BudgetEditable {
	return BudgetEditable{
		Category: model.Category,
		Limit:    model.Limit,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`  // The budget itself
	Expenses string `json:"expenses" example:"https://example.com/api/expenses?category=food"`                // Expenses in the category of the budget
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	baseURL := c.GetString(string(models.ContextURL))

	return Budget{
		DefaultModel:   model.DefaultModel,
		BudgetEditable: newBudgetEditable(model),
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/budgets/%s", baseURL, model.ID),
			Expenses: fmt.Sprintf("%s/expenses?category=%s", baseURL, url.QueryEscape(model.Category)),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Category string `form:"category"`                   // Exact category
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Category: f.Category,
	}
}
