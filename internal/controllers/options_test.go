package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestOptions() {
	expense := suite.createTestExpense(suite.T(), alice, groceries()).Data.ID
	budget := suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food"}).Data.ID

	tests := []struct {
		name   string
		path   string
		user   string
		status int
		allow  string
	}{
		{"Expense list", "/expenses", alice, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Budget list", "/budgets", alice, http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Expense import", "/expenses/import", alice, http.StatusNoContent, "OPTIONS, POST"},
		{"Expense", fmt.Sprintf("/expenses/%s", expense), alice, http.StatusNoContent, "OPTIONS, GET, PUT, PATCH, DELETE"},
		{"Budget", fmt.Sprintf("/budgets/%s", budget), alice, http.StatusNoContent, "OPTIONS, GET, PUT, PATCH, DELETE"},
		{"Expense of other user", fmt.Sprintf("/expenses/%s", expense), bob, http.StatusNotFound, ""},
		{"No budget with this ID", fmt.Sprintf("/budgets/%s", uuid.New()), alice, http.StatusNotFound, ""},
		{"Not a valid UUID", "/expenses/NotParseableAsUUID", alice, http.StatusBadRequest, ""},
		{"Monthly report", "/reports/monthly", alice, http.StatusNoContent, "OPTIONS, GET"},
		{"Yearly report", "/reports/yearly", alice, http.StatusNoContent, "OPTIONS, GET"},
		{"Summary", "/reports/summary", alice, http.StatusNoContent, "OPTIONS, GET"},
		{"Root", "/", "", http.StatusNoContent, "OPTIONS, GET"},
		{"Version", "/version", "", http.StatusNoContent, "OPTIONS, GET"},
		{"Healthz", "/healthz", "", http.StatusNoContent, "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodOptions, "http://example.com"+tt.path, nil, tt.user)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
