package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/repository"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateRequiresOwner() {
	repo := repository.NewExpenses(suite.db)

	err := repo.Create(context.Background(), &models.Expense{Category: "food"})
	suite.Assert().ErrorIs(err, models.ErrUnauthorized)
}

func (suite *TestSuiteStandard) TestOwnerIsolation() {
	repo := repository.NewExpenses(suite.db)
	ctx := context.Background()

	e := suite.createExpense("alice", "food", "10.00", types.NewDate(2024, 1, 5))

	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Get as owner",
			func(t *testing.T) {
				got, err := repo.Get(ctx, "alice", e.ID)
				assert.Nil(t, err)
				assert.Equal(t, e.ID, got.ID)
			},
		},
		{
			"Get as other user",
			func(t *testing.T) {
				_, err := repo.Get(ctx, "mallory", e.ID)
				assert.ErrorIs(t, err, models.ErrResourceNotFound)
			},
		},
		{
			"Get without user",
			func(t *testing.T) {
				_, err := repo.Get(ctx, "", e.ID)
				assert.ErrorIs(t, err, models.ErrUnauthorized)
			},
		},
		{
			"List as other user",
			func(t *testing.T) {
				expenses, count, err := repo.List(ctx, "mallory", repository.Query{})
				assert.Nil(t, err)
				assert.Len(t, expenses, 0)
				assert.Equal(t, int64(0), count)
			},
		},
		{
			"Update as other user",
			func(t *testing.T) {
				_, err := repo.Update(ctx, "mallory", e.ID, []any{"Category"}, models.Expense{Category: "stolen"})
				assert.ErrorIs(t, err, models.ErrResourceNotFound)

				got, err := repo.Get(ctx, "alice", e.ID)
				assert.Nil(t, err)
				assert.Equal(t, "food", got.Category)
			},
		},
		{
			"Delete as other user",
			func(t *testing.T) {
				err := repo.Delete(ctx, "mallory", e.ID)
				assert.ErrorIs(t, err, models.ErrResourceNotFound)

				_, err = repo.Get(ctx, "alice", e.ID)
				assert.Nil(t, err)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, tt.test)
	}
}

func (suite *TestSuiteStandard) TestGetNotFound() {
	_, err := repository.NewBudgets(suite.db).Get(context.Background(), "alice", uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "budget")
}

func (suite *TestSuiteStandard) TestUpdateSelectedFields() {
	repo := repository.NewExpenses(suite.db)
	ctx := context.Background()

	e := suite.createExpense("alice", "food", "10.00", types.NewDate(2024, 1, 5))

	// Amount is set to zero explicitly, Category is not selected and must not change
	updated, err := repo.Update(ctx, "alice", e.ID, []any{"Amount", "Description"}, models.Expense{
		Amount:      decimal.Zero,
		Description: "  Lunch ",
		Category:    "ignored",
	})
	suite.Require().Nil(err)

	suite.Assert().True(updated.Amount.IsZero(), "amount not updated: %s", updated.Amount)
	suite.Assert().Equal("Lunch", updated.Description)
	suite.Assert().Equal("food", updated.Category)
	suite.Assert().Equal("alice", updated.OwnerID)
	suite.Assert().Equal("2024-01-05", updated.Date.String())
}

func (suite *TestSuiteStandard) TestUpdateNoFields() {
	repo := repository.NewExpenses(suite.db)
	e := suite.createExpense("alice", "food", "10.00", types.NewDate(2024, 1, 5))

	updated, err := repo.Update(context.Background(), "alice", e.ID, nil, models.Expense{})
	suite.Require().Nil(err)
	suite.Assert().Equal("food", updated.Category)
}

func (suite *TestSuiteStandard) TestDelete() {
	repo := repository.NewBudgets(suite.db)
	ctx := context.Background()

	b := models.Budget{OwnerID: "alice", Category: "food", Limit: decimal.NewFromInt(100)}
	suite.Require().Nil(repo.Create(ctx, &b))

	suite.Require().Nil(repo.Delete(ctx, "alice", b.ID))

	_, err := repo.Get(ctx, "alice", b.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestListPagination() {
	repo := repository.NewExpenses(suite.db)

	for day := 1; day <= 5; day++ {
		suite.createExpense("alice", "food", "1", types.NewDate(2024, 3, day))
	}

	expenses, count, err := repo.List(context.Background(), "alice", repository.Query{
		Order:  []string{"date DESC"},
		Offset: 1,
		Limit:  2,
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(5), count)
	suite.Require().Len(expenses, 2)
	suite.Assert().Equal("2024-03-04", expenses[0].Date.String())
	suite.Assert().Equal("2024-03-03", expenses[1].Date.String())
}

func (suite *TestSuiteStandard) TestListWhereZeroValue() {
	repo := repository.NewExpenses(suite.db)

	suite.createExpense("alice", "", "1", types.NewDate(2024, 3, 1))
	suite.createExpense("alice", "food", "1", types.NewDate(2024, 3, 2))

	expenses, count, err := repo.List(context.Background(), "alice", repository.Query{
		Where:  models.Expense{Category: ""},
		Fields: []any{"Category"},
	})
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(1), count)
	suite.Require().Len(expenses, 1)
	suite.Assert().Equal("", expenses[0].Category)
}

func (suite *TestSuiteStandard) TestListDatabaseClosed() {
	suite.CloseDB()

	_, _, err := repository.NewExpenses(suite.db).List(context.Background(), "alice", repository.Query{})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
