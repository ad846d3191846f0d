package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/repository"
	"golang.org/x/exp/slices"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PUT("/:id", co.ReplaceBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/budgets [options]
func (co Controller) OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, co.budgets().Repository)
}

// @Summary		Create budget
// @Description	Creates a new budget for the user. Multiple budgets for the same category are allowed
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget := editable.model(auth.UserID(c))
	err = co.budgets().Create(c.Request.Context(), &budget)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		List budgets
// @Description	Returns a list of the user's budgets, ordered by category
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	BudgetListResponse
// @Router			/budgets [get]
// @Param			category	query	string	false	"Filter by category"
// @Param			offset		query	uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of budgets to return. Defaults to 50."
func (co Controller) GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Default to 50 budgets
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	budgets, total, err := co.budgets().List(c.Request.Context(), auth.UserID(c), repository.Query{
		Where:  filter.model(),
		Fields: queryFields,
		Order:  []string{"category ASC", "created_at ASC"},
		Offset: int(filter.Offset),
		Limit:  limit,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		apiResources = append(apiResources, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, err := co.budgets().Get(c.Request.Context(), auth.UserID(c), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Replace budget
// @Description	Replaces all fields of an existing budget.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		401		{object}	httpError
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/budgets/{id} [put]
func (co Controller) ReplaceBudget(c *gin.Context) {
	co.updateBudget(c, true)
}

// @Summary		Update budget
// @Description	Update an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		401		{object}	httpError
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	co.updateBudget(c, false)
}

// updateBudget writes the request body to the budget. With replace set,
// all fields are written, otherwise only the fields set in the body.
func (co Controller) updateBudget(c *gin.Context, replace bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	owner := auth.UserID(c)
	repo := co.budgets()

	budget, err := repo.Get(c.Request.Context(), owner, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data := BudgetEditable{}
	updateFields := budgetFields
	if !replace {
		// Fields not in the body keep their current value
		data = newBudgetEditable(budget)

		updateFields, err = httputil.GetBodyFields(c, BudgetEditable{})
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	budget, err = repo.Update(c.Request.Context(), owner, uri.ID.UUID, updateFields, data.model(owner))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	apiResource := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// @Summary		Delete budget
// @Description	Deletes an budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	deleteResource(c, co.budgets().Repository)
}
