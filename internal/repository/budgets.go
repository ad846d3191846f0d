package repository

import (
	"context"

	"github.com/pocketledger/backend/internal/models"
	"gorm.io/gorm"
)

// Budgets is the Repository for budgets.
type Budgets struct {
	Repository[models.Budget]
}

// NewBudgets returns the Repository for budgets.
func NewBudgets(db *gorm.DB) Budgets {
	return Budgets{New[models.Budget](db)}
}

// All returns all budgets of the owner, ordered by category.
func (r Budgets) All(ctx context.Context, owner string) ([]models.Budget, error) {
	budgets, _, err := r.List(ctx, owner, Query{Order: []string{"category ASC", "created_at ASC"}})
	return budgets, err
}
