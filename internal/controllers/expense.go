package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/repository"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	// Import
	{
		r.OPTIONS("/import", co.OptionsExpenseImport)
		r.POST("/import", co.ImportExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PUT("/:id", co.ReplaceExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/expenses [options]
func (co Controller) OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	resourceOptionsDetail(c, co.expenses().Repository)
}

// @Summary		Create expense
// @Description	Creates a new expense for the user
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	ExpenseResponse
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var editable ExpenseEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	expense := editable.model(auth.UserID(c))
	err = co.expenses().Create(c.Request.Context(), &expense)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusCreated, ExpenseResponse{Data: &data})
}

// @Summary		List expenses
// @Description	Returns a list of the user's expenses, newest first
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	ExpenseListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	ExpenseListResponse
// @Router			/expenses [get]
// @Param			category	query	string	false	"Filter by category"
// @Param			description	query	string	false	"Search for this text in the description"
// @Param			fromDate	query	string	false	"Expenses on or after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Expenses on or before this date, YYYY-MM-DD"
// @Param			offset		query	uint	false	"The offset of the first expense returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of expenses to return. Defaults to 50."
func (co Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// untilDate is inclusive, the range end is exclusive
	until := filter.UntilDate
	if !until.IsZero() {
		until = until.AddDate(0, 0, 1)
	}

	scopes := []func(*gorm.DB) *gorm.DB{
		repository.DateRange(filter.FromDate, until),
	}

	if slices.Contains(setFields, "Description") {
		scopes = append(scopes, repository.Contains("description", filter.Description))
	}

	// Default to 50 expenses
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	expenses, total, err := co.expenses().List(c.Request.Context(), auth.UserID(c), repository.Query{
		Where:  filter.model(),
		Fields: queryFields,
		Scopes: scopes,
		Order:  []string{"date DESC", "created_at DESC"},
		Offset: int(filter.Offset),
		Limit:  limit,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		apiResources = append(apiResources, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	ExpenseResponse
// @Failure		500	{object}	ExpenseResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	expense, err := co.expenses().Get(c.Request.Context(), auth.UserID(c), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Replace expense
// @Description	Replaces all fields of an existing expense.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		401		{object}	httpError
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/expenses/{id} [put]
func (co Controller) ReplaceExpense(c *gin.Context) {
	co.updateExpense(c, true)
}

// @Summary		Update expense
// @Description	Update an existing expense. Only values to be updated need to be specified.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		401		{object}	httpError
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	co.updateExpense(c, false)
}

// updateExpense writes the request body to the expense. With replace set,
// all fields are written, otherwise only the fields set in the body.
func (co Controller) updateExpense(c *gin.Context, replace bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	owner := auth.UserID(c)
	repo := co.expenses()

	expense, err := repo.Get(c.Request.Context(), owner, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	data := ExpenseEditable{}
	updateFields := expenseFields
	if !replace {
		// Fields not in the body keep their current value
		data = newExpenseEditable(expense)

		updateFields, err = httputil.GetBodyFields(c, ExpenseEditable{})
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ExpenseResponse{
				Error: &e,
			})
			return
		}
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	expense, err = repo.Update(c.Request.Context(), owner, uri.ID.UUID, updateFields, data.model(owner))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{
			Error: &e,
		})
		return
	}

	apiResource := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &apiResource})
}

// @Summary		Delete expense
// @Description	Deletes an expense
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	deleteResource(c, co.expenses().Repository)
}
