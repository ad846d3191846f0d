package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	b := suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "eating out", Limit: decimal.NewFromInt(300)})
	require.NotNil(suite.T(), b.Data)

	assert.Equal(suite.T(), "eating out", b.Data.Category)
	assert.True(suite.T(), decimal.NewFromInt(300).Equal(b.Data.Limit))
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/budgets/%s", b.Data.ID), b.Data.Links.Self)
	assert.Equal(suite.T(), "http://example.com/expenses?category=eating+out", b.Data.Links.Expenses)
}

func (suite *TestSuiteStandard) TestBudgetsCreateInvalid() {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"Empty body", "", "the request body must not be empty"},
		{"Missing category", map[string]any{"limit": "30"}, "category is required"},
		{"Negative limit", map[string]any{"category": "food", "limit": "-0.01"}, "limit must be greater than or equal to 0"},
		{"Limit is not a number", map[string]any{"category": "food", "limit": "a lot"}, "invalid or un-parseable data"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/budgets", tt.body, alice)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var b controllers.BudgetResponse
			test.DecodeResponse(t, &r, &b)
			require.NotNil(t, b.Error)
			assert.Contains(t, *b.Error, tt.message)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "rent", Limit: decimal.NewFromInt(500)})
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(30)})
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(10)})
	_ = suite.createTestBudget(suite.T(), bob, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(99)})

	tests := []struct {
		name       string
		query      string
		categories []string
		total      int64
	}{
		{"All, sorted by category", "", []string{"food", "food", "rent"}, 3},
		{"Category", "category=food", []string{"food", "food"}, 2},
		{"Limit", "limit=1", []string{"food"}, 3},
		{"Offset", "offset=2", []string{"rent"}, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/budgets?%s", tt.query), nil, alice)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var l controllers.BudgetListResponse
			test.DecodeResponse(t, &r, &l)

			categories := make([]string, 0, len(l.Data))
			for _, b := range l.Data {
				categories = append(categories, b.Category)
			}

			assert.Equal(t, tt.categories, categories)
			assert.Equal(t, tt.total, l.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	b := suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(30)}).Data
	url := fmt.Sprintf("http://example.com/budgets/%s", b.ID)

	r := suite.request(suite.T(), http.MethodPatch, url, map[string]any{"limit": "45.5"}, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	require.NotNil(suite.T(), updated.Data)
	assert.Equal(suite.T(), "food", updated.Data.Category)
	assert.True(suite.T(), decimal.RequireFromString("45.5").Equal(updated.Data.Limit))

	// A limit of zero is a valid update
	r = suite.request(suite.T(), http.MethodPatch, url, map[string]any{"limit": "0"}, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Limit.IsZero())

	r = suite.request(suite.T(), http.MethodPut, url, controllers.BudgetEditable{Category: "groceries"}, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "groceries", updated.Data.Category)
	assert.True(suite.T(), updated.Data.Limit.IsZero())

	r = suite.request(suite.T(), http.MethodPatch, url, map[string]any{"limit": "1"}, bob)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsGetAndDelete() {
	id := suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food"}).Data.ID
	url := fmt.Sprintf("http://example.com/budgets/%s", id)

	tests := []struct {
		name   string
		method string
		url    string
		user   string
		status int
	}{
		{"Other user cannot read", http.MethodGet, url, bob, http.StatusNotFound},
		{"Other user cannot delete", http.MethodDelete, url, bob, http.StatusNotFound},
		{"Invalid UUID", http.MethodGet, "http://example.com/budgets/1234", alice, http.StatusBadRequest},
		{"Unknown budget", http.MethodDelete, fmt.Sprintf("http://example.com/budgets/%s", uuid.New()), alice, http.StatusNotFound},
		{"Owner reads", http.MethodGet, url, alice, http.StatusOK},
		{"Owner deletes", http.MethodDelete, url, alice, http.StatusNoContent},
		{"Deleted budget is gone", http.MethodGet, url, alice, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, tt.method, tt.url, nil, tt.user)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	suite.CloseDB()

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/budgets", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	r = suite.request(suite.T(), http.MethodPost, "http://example.com/budgets", controllers.BudgetEditable{Category: "food"}, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
