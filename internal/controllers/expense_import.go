package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/importer"
	"github.com/pocketledger/backend/internal/models"
)

var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following type")
)

// uploadedFile returns the content of the form file and handles potential errors.
func uploadedFile(c *gin.Context, suffix string) ([]byte, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/expenses/import [options]
func (co Controller) OptionsExpenseImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import expenses
// @Description	Imports expenses from a CSV file in the format of the monthly report. Rows that have been imported before are skipped.
// @Tags			Expenses
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ExpenseImportResponse
// @Failure		400		{object}	ExpenseImportResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	ExpenseImportResponse
// @Param			file	formData	file	true	"File to import"
// @Router			/expenses/import [post]
func (co Controller) ImportExpenses(c *gin.Context) {
	body, err := uploadedFile(c, ".csv")
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseImportResponse{
			Error: &e,
		})
		return
	}

	owner := auth.UserID(c)
	expenses, err := importer.Parse(body, owner)
	if err != nil {
		// importer.Parse returns a usable error already
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseImportResponse{
			Error: &e,
		})
		return
	}

	hashes := make([]string, 0, len(expenses))
	for _, e := range expenses {
		hashes = append(hashes, e.ImportHash)
	}

	existing, err := co.expenses().ImportHashes(c.Request.Context(), owner, hashes)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseImportResponse{
			Error: &e,
		})
		return
	}

	create := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !existing[e.ImportHash] {
			create = append(create, e)
		}
	}

	err = co.expenses().CreateAll(c.Request.Context(), create)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseImportResponse{
			Error: &e,
		})
		return
	}

	result := ExpenseImportResult{
		Created: make([]Expense, 0, len(create)),
		Skipped: len(expenses) - len(create),
	}
	for _, e := range create {
		result.Created = append(result.Created, newExpense(c, e))
	}

	c.JSON(http.StatusCreated, ExpenseImportResponse{Data: &result})
}
