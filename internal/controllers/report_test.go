package controllers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/internal/export"
	"github.com/pocketledger/backend/internal/types"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createReportScenario creates three expenses for alice and one for bob.
func (suite *TestSuiteStandard) createReportScenario() {
	_ = suite.createTestExpense(suite.T(), alice, controllers.ExpenseEditable{Description: "Groceries", Amount: decimal.NewFromInt(10), Category: "food", Date: types.NewDate(2024, 1, 5)})
	_ = suite.createTestExpense(suite.T(), alice, controllers.ExpenseEditable{Description: "Restaurant", Amount: decimal.NewFromInt(15), Category: "food", Date: types.NewDate(2024, 1, 20)})
	_ = suite.createTestExpense(suite.T(), alice, controllers.ExpenseEditable{Description: "Bus ticket", Amount: decimal.NewFromInt(5), Category: "transport", Date: types.NewDate(2024, 2, 1)})
	_ = suite.createTestExpense(suite.T(), bob, controllers.ExpenseEditable{Description: "Groceries", Amount: decimal.NewFromInt(7), Category: "food", Date: types.NewDate(2024, 1, 7)})
}

func (suite *TestSuiteStandard) TestReportMonthly() {
	suite.createReportScenario()

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/monthly?month=1&year=2024", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), export.ContentTypeCSV, r.Header().Get("Content-Type"))
	assert.Equal(suite.T(), `attachment; filename="monthly_report.csv"`, r.Header().Get("Content-Disposition"))

	rows, err := export.ParseCSV(r.Body.Bytes())
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rows, 2)

	assert.Equal(suite.T(), "2024-01-05", rows[0].Date.String())
	assert.Equal(suite.T(), "food", rows[0].Category)
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(rows[0].Amount))
	assert.Equal(suite.T(), "Groceries", rows[0].Description)

	assert.Equal(suite.T(), "2024-01-20", rows[1].Date.String())
	assert.Equal(suite.T(), "Restaurant", rows[1].Description)
}

func (suite *TestSuiteStandard) TestReportMonthlyDecember() {
	_ = suite.createTestExpense(suite.T(), alice, controllers.ExpenseEditable{Amount: decimal.NewFromInt(1), Category: "gifts", Date: types.NewDate(2023, 12, 31)})
	_ = suite.createTestExpense(suite.T(), alice, controllers.ExpenseEditable{Amount: decimal.NewFromInt(1), Category: "gifts", Date: types.NewDate(2024, 1, 1)})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/monthly?month=12&year=2023", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	rows, err := export.ParseCSV(r.Body.Bytes())
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), "2023-12-31", rows[0].Date.String())
}

func (suite *TestSuiteStandard) TestReportMonthlyEmpty() {
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/monthly?month=6&year=2024", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.Equal(suite.T(), "date,category,amount,description\n", r.Body.String())
}

func (suite *TestSuiteStandard) TestReportYearly() {
	suite.createReportScenario()

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/yearly?year=2024", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), export.ContentTypeXLSX, r.Header().Get("Content-Type"))
	assert.Equal(suite.T(), `attachment; filename="yearly_report.xlsx"`, r.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(r.Body.Bytes()))
	require.Nil(suite.T(), err)
	defer f.Close()

	rows, err := f.GetRows(export.DefaultSheetName)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rows, 4)

	assert.Equal(suite.T(), []string{"Date", "Category", "Amount", "Description"}, rows[0])
	assert.Equal(suite.T(), []string{"2024-01-05", "food", "10", "Groceries"}, rows[1])
	assert.Equal(suite.T(), []string{"2024-02-01", "transport", "5", "Bus ticket"}, rows[3])
}

func (suite *TestSuiteStandard) TestReportYearlyEmpty() {
	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/yearly?year=2030", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	f, err := excelize.OpenReader(bytes.NewReader(r.Body.Bytes()))
	require.Nil(suite.T(), err)
	defer f.Close()

	rows, err := f.GetRows(export.DefaultSheetName)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), rows, 1, "only the header row is expected")
}

func (suite *TestSuiteStandard) TestReportErrors() {
	tests := []struct {
		name    string
		url     string
		user    string
		status  int
		message string
	}{
		{"Monthly without user", "http://example.com/reports/monthly?month=1&year=2024", "", http.StatusUnauthorized, "the request does not identify a user"},
		{"Yearly without user", "http://example.com/reports/yearly?year=2024", "", http.StatusUnauthorized, "the request does not identify a user"},
		{"Month 13", "http://example.com/reports/monthly?month=13&year=2024", alice, http.StatusBadRequest, "the month must be between 1 and 12, got 13"},
		{"Month 0", "http://example.com/reports/monthly?month=0&year=2024", alice, http.StatusBadRequest, "the month must be between 1 and 12, got 0"},
		{"Month missing", "http://example.com/reports/monthly?year=2024", alice, http.StatusBadRequest, "the month must be between 1 and 12"},
		{"Year missing", "http://example.com/reports/yearly", alice, http.StatusBadRequest, "the year must be between 1 and"},
		{"Year out of range", "http://example.com/reports/yearly?year=10000", alice, http.StatusBadRequest, "the report period is invalid"},
		{"Year not a number", "http://example.com/reports/yearly?year=last", alice, http.StatusBadRequest, "the query string contains unparseable data"},
		{"Month not a number", "http://example.com/reports/monthly?month=may&year=2024", alice, http.StatusBadRequest, "the query string contains unparseable data"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, tt.url, nil, tt.user)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.message)
		})
	}
}

func (suite *TestSuiteStandard) TestReportDBClosed() {
	suite.CloseDB()

	for _, url := range []string{
		"http://example.com/reports/monthly?month=1&year=2024",
		"http://example.com/reports/yearly?year=2024",
		"http://example.com/reports/summary?year=2024",
	} {
		suite.T().Run(url, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, url, nil, alice)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), "reading expenses failed")
		})
	}
}

func (suite *TestSuiteStandard) TestReportSummaryMonthly() {
	suite.createReportScenario()
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(30)})
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "rent", Limit: decimal.NewFromInt(500)})
	_ = suite.createTestBudget(suite.T(), bob, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(1)})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/summary?month=1&year=2024", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s controllers.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &s)
	require.NotNil(suite.T(), s.Data)

	assert.Equal(suite.T(), "2024-01", s.Data.Period)
	assert.Equal(suite.T(), "2024-01-01", s.Data.Window.Start.String())
	assert.Equal(suite.T(), "2024-02-01", s.Data.Window.End.String())
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(s.Data.Total))
	assert.Len(suite.T(), s.Data.ByCategory, 1)
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(s.Data.ByCategory["food"]))

	require.Len(suite.T(), s.Data.Categories, 1)
	assert.Equal(suite.T(), "food", s.Data.Categories[0].Category)
	assert.Equal(suite.T(), 2, s.Data.Categories[0].Count)

	overview := s.Data.Overview
	assert.True(suite.T(), decimal.NewFromInt(530).Equal(overview.Limit))
	assert.True(suite.T(), decimal.NewFromInt(25).Equal(overview.Spent))
	assert.True(suite.T(), decimal.NewFromInt(505).Equal(overview.Remaining))
	require.Len(suite.T(), overview.Categories, 2)
	assert.Equal(suite.T(), "food", overview.Categories[0].Category)
	assert.True(suite.T(), decimal.NewFromInt(5).Equal(overview.Categories[0].Remaining))
	assert.False(suite.T(), overview.Categories[0].Exceeded)
	assert.Equal(suite.T(), "rent", overview.Categories[1].Category)
	assert.True(suite.T(), overview.Categories[1].Spent.IsZero())
}

func (suite *TestSuiteStandard) TestReportSummaryYearlyWithCategoryPattern() {
	suite.createReportScenario()
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "transport", Limit: decimal.NewFromInt(2)})
	_ = suite.createTestBudget(suite.T(), alice, controllers.BudgetEditable{Category: "food", Limit: decimal.NewFromInt(30)})

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/reports/summary?year=2024&category=t*", nil, alice)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var s controllers.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &s)
	require.NotNil(suite.T(), s.Data)

	assert.Equal(suite.T(), "2024", s.Data.Period)
	assert.Equal(suite.T(), "2025-01-01", s.Data.Window.End.String())
	assert.True(suite.T(), decimal.NewFromInt(5).Equal(s.Data.Total))

	require.Len(suite.T(), s.Data.Overview.Categories, 1)
	assert.Equal(suite.T(), "transport", s.Data.Overview.Categories[0].Category)
	assert.True(suite.T(), s.Data.Overview.Categories[0].Exceeded)
	assert.True(suite.T(), decimal.NewFromInt(-3).Equal(s.Data.Overview.Remaining))
}

func (suite *TestSuiteStandard) TestReportSummaryInvalid() {
	for _, query := range []string{"month=13&year=2024", "year=0", "month=&year=2024"} {
		suite.T().Run(query, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "http://example.com/reports/summary?"+query, nil, alice)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var s controllers.SummaryResponse
			test.DecodeResponse(t, &r, &s)
			assert.Nil(t, s.Data)
			assert.NotNil(t, s.Error)
		})
	}
}
