package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/export"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/reports"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", co.OptionsReport)
	r.GET("/monthly", co.GetMonthlyReport)
	r.OPTIONS("/yearly", co.OptionsReport)
	r.GET("/yearly", co.GetYearlyReport)
	r.OPTIONS("/summary", co.OptionsReport)
	r.GET("/summary", co.GetSummary)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/reports/monthly [options]
// @Router			/reports/yearly [options]
// @Router			/reports/summary [options]
func (co Controller) OptionsReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Monthly report
// @Description	Returns all expenses of the month as CSV document
// @Tags			Reports
// @Produce		text/csv
// @Produce		json
// @Success		200		{file}		file
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		int	true	"Month, 1 to 12"
// @Param			year	query		int	true	"Year"
// @Router			/reports/monthly [get]
func (co Controller) GetMonthlyReport(c *gin.Context) {
	var query MonthlyReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidQuery.Error(),
		})
		return
	}

	rows, err := co.reportRows(c, reports.MonthlyPeriod(query.Year, query.Month))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	doc, err := export.CSV(rows, MonthlyReportFilename)
	if err != nil {
		renderError(c, err)
		return
	}

	download(c, doc)
}

// @Summary		Yearly report
// @Description	Returns all expenses of the year as spreadsheet
// @Tags			Reports
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce		json
// @Success		200		{file}		file
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			year	query		int	true	"Year"
// @Router			/reports/yearly [get]
func (co Controller) GetYearlyReport(c *gin.Context) {
	var query YearlyReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidQuery.Error(),
		})
		return
	}

	rows, err := co.reportRows(c, reports.YearlyPeriod(query.Year))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	doc, err := export.XLSX(rows, export.DefaultSheetName, YearlyReportFilename)
	if err != nil {
		renderError(c, err)
		return
	}

	download(c, doc)
}

// @Summary		Summary
// @Description	Returns the totals for a month or a year and compares them to the budgets
// @Tags			Reports
// @Produce		json
// @Success		200			{object}	SummaryResponse
// @Failure		400			{object}	SummaryResponse
// @Failure		401			{object}	httpError
// @Failure		500			{object}	SummaryResponse
// @Param			month		query		int		false	"Month, 1 to 12. If not set, the whole year is summarized"
// @Param			year		query		int		true	"Year"
// @Param			category	query		string	false	"Glob pattern for the categories to include"
// @Router			/reports/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{
			Error: &e,
		})
		return
	}

	period := reports.YearlyPeriod(query.Year)
	if c.Request.URL.Query().Has("month") {
		period = reports.MonthlyPeriod(query.Year, query.Month)
	}

	window, err := reports.ComputeWindow(period)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	owner := auth.UserID(c)
	expenses, err := reports.FetchExpensesInWindow(c.Request.Context(), co.expenses(), owner, window)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	budgets, err := co.budgets().All(c.Request.Context(), owner)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &e,
		})
		return
	}

	if query.Category != "" {
		expenses = matching(expenses, query.Category, func(e models.Expense) string { return e.Category })
		budgets = matching(budgets, query.Category, func(b models.Budget) string { return b.Category })
	}

	summary := reports.Summarize(expenses)
	c.JSON(http.StatusOK, SummaryResponse{
		Data: &Summary{
			Period:     period.String(),
			Window:     window,
			Summary:    summary,
			Categories: reports.Categories(expenses),
			Overview:   reports.NewOverview(budgets, summary),
		},
	})
}

// reportRows loads the export rows of the user for the period.
func (co Controller) reportRows(c *gin.Context, period reports.Period) ([]reports.Row, error) {
	window, err := reports.ComputeWindow(period)
	if err != nil {
		return nil, err
	}

	expenses, err := reports.FetchExpensesInWindow(c.Request.Context(), co.expenses(), auth.UserID(c), window)
	if err != nil {
		return nil, err
	}

	return reports.ToExportRows(expenses), nil
}

// matching returns the resources whose category matches the glob pattern.
func matching[T any](resources []T, pattern string, category func(T) string) []T {
	result := make([]T, 0, len(resources))
	for _, r := range resources {
		if glob.Glob(pattern, category(r)) {
			result = append(result, r)
		}
	}

	return result
}

// download sends the document as attachment.
func download(c *gin.Context, doc export.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// renderError handles errors that occur when rendering a document.
func renderError(c *gin.Context, err error) {
	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	c.JSON(http.StatusInternalServerError, httpError{
		Error: fmt.Sprintf("%s. The request id is '%s'", models.ErrGeneral, requestid.Get(c)),
	})
}
