package controllers

import (
	"github.com/pocketledger/backend/internal/reports"
)

// Filenames of the report downloads.
const (
	MonthlyReportFilename = "monthly_report.csv"
	YearlyReportFilename  = "yearly_report.xlsx"
)

type MonthlyReportQuery struct {
	Month int `form:"month" example:"1"`    // Month of the report, 1 to 12
	Year  int `form:"year" example:"2024"` // Year of the report
}

type YearlyReportQuery struct {
	Year int `form:"year" example:"2024"` // Year of the report
}

type SummaryQuery struct {
	Month    int    `form:"month" example:"1"`       // Month of the summary. If not set, the whole year is summarized
	Year     int    `form:"year" example:"2024"`     // Year of the summary
	Category string `form:"category" example:"f*"` // Glob pattern for the categories to include. "*" matches any text
}

type Summary struct {
	Period string         `json:"period" example:"2024-01"` // The summarized period, YYYY-MM for months and YYYY for years
	Window reports.Window `json:"window"`                    // The dates the summary includes
	reports.Summary
	Categories []reports.CategoryTotal `json:"categories"` // Totals per category, sorted by category
	Overview   reports.Overview        `json:"overview"`   // Spending compared to the budgets of the user
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`                                                // Data for the summary
	Error *string  `json:"error" example:"the month must be between 1 and 12"` // The error, if any occurred
}
