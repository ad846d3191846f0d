// Package controllers implements the HTTP handlers for expenses, budgets
// and reports.
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/repository"
	"gorm.io/gorm"
)

// Controller holds the database handle shared by all handlers.
type Controller struct {
	DB *gorm.DB
}

func (co Controller) expenses() repository.Expenses {
	return repository.NewExpenses(co.DB)
}

func (co Controller) budgets() repository.Budgets {
	return repository.NewBudgets(co.DB)
}

// RegisterRoutes registers the routes for all resources and reports with
// the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterReportRoutes(r.Group("/reports"))
}
