package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/repository"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestFindInWindow() {
	repo := repository.NewExpenses(suite.db)

	first := suite.createExpense("alice", "food", "10.00", types.NewDate(2024, 1, 20))
	second := suite.createExpense("alice", "food", "15.00", types.NewDate(2024, 1, 5))
	third := suite.createExpense("alice", "misc", "1.00", types.NewDate(2024, 1, 5))

	// Outside of the window or owned by someone else
	suite.createExpense("alice", "transport", "5.00", types.NewDate(2024, 2, 1))
	suite.createExpense("alice", "transport", "5.00", types.NewDate(2023, 12, 31))
	suite.createExpense("bob", "food", "99.00", types.NewDate(2024, 1, 10))

	expenses, err := repo.FindInWindow(context.Background(), "alice", types.NewDate(2024, 1, 1), types.NewDate(2024, 2, 1))
	suite.Require().Nil(err)
	suite.Require().Len(expenses, 3)

	// Ordered by date, then by creation
	suite.Assert().Equal(second.ID, expenses[0].ID)
	suite.Assert().Equal(third.ID, expenses[1].ID)
	suite.Assert().Equal(first.ID, expenses[2].ID)
}

func (suite *TestSuiteStandard) TestFindInWindowSingleStatement() {
	suite.createExpense("alice", "food", "10.00", types.NewDate(2024, 1, 20))

	statements := 0
	count := func(*gorm.DB) { statements++ }
	suite.Require().Nil(suite.db.Callback().Query().After("gorm:query").Register("test:count_query", count))
	suite.Require().Nil(suite.db.Callback().Row().After("gorm:row").Register("test:count_row", count))

	expenses, err := repository.NewExpenses(suite.db).FindInWindow(context.Background(), "alice", types.NewDate(2024, 1, 1), types.NewDate(2024, 2, 1))
	suite.Require().Nil(err)
	suite.Assert().Len(expenses, 1)
	suite.Assert().Equal(1, statements, "reading a window must issue exactly one statement")
}

func (suite *TestSuiteStandard) TestFindInWindowEmpty() {
	expenses, err := repository.NewExpenses(suite.db).FindInWindow(context.Background(), "alice", types.NewDate(2024, 1, 1), types.NewDate(2025, 1, 1))
	suite.Require().Nil(err)
	suite.Assert().NotNil(expenses)
	suite.Assert().Len(expenses, 0)
}

func (suite *TestSuiteStandard) TestDateRangeOpenEnded() {
	repo := repository.NewExpenses(suite.db)

	suite.createExpense("alice", "food", "1", types.NewDate(2024, 1, 1))
	suite.createExpense("alice", "food", "1", types.NewDate(2024, 6, 1))

	expenses, count, err := repo.List(context.Background(), "alice", repository.Query{
		Scopes: []func(*gorm.DB) *gorm.DB{repository.DateRange(types.NewDate(2024, 3, 1), types.Date{})},
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(1), count)
	suite.Assert().Equal("2024-06-01", expenses[0].Date.String())
}

func (suite *TestSuiteStandard) TestContains() {
	repo := repository.NewExpenses(suite.db)

	suite.createExpense("alice", "Food", "1", types.NewDate(2024, 1, 1))
	suite.createExpense("alice", "rent", "1", types.NewDate(2024, 1, 1))

	empty := models.Expense{OwnerID: "alice", Category: "misc", Date: types.NewDate(2024, 1, 2)}
	suite.Require().Nil(repo.Create(context.Background(), &empty))

	tests := []struct {
		name  string
		value string
		count int64
	}{
		{"Case insensitive", "FOOD ON", 1},
		{"Substring", "on 2024", 2},
		{"Empty matches empty", "", 1},
		{"No match", "salary", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, count, err := repo.List(context.Background(), "alice", repository.Query{
				Scopes: []func(*gorm.DB) *gorm.DB{repository.Contains("description", tt.value)},
			})
			require.Nil(t, err)
			assert.Equal(t, tt.count, count)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateAll() {
	repo := repository.NewExpenses(suite.db)
	ctx := context.Background()

	err := repo.CreateAll(ctx, []models.Expense{
		{OwnerID: "alice", Category: "food", Amount: decimal.NewFromInt(3), Date: types.NewDate(2024, 1, 1), ImportHash: "a"},
		{OwnerID: "alice", Category: "rent", Amount: decimal.NewFromInt(900), Date: types.NewDate(2024, 1, 2), ImportHash: "b"},
	})
	suite.Require().Nil(err)

	_, count, err := repo.List(ctx, "alice", repository.Query{})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(2), count)
}

func (suite *TestSuiteStandard) TestCreateAllManyRows() {
	repo := repository.NewExpenses(suite.db)
	ctx := context.Background()

	// More rows than fit into a single INSERT statement on sqlite
	expenses := make([]models.Expense, 0, 5000)
	for i := range 5000 {
		expenses = append(expenses, models.Expense{
			OwnerID:    "alice",
			Category:   "food",
			Amount:     decimal.NewFromInt(int64(i)),
			Date:       types.NewDate(2024, 1, 1).AddDate(0, 0, i%365),
			ImportHash: fmt.Sprintf("hash-%d", i),
		})
	}

	err := repo.CreateAll(ctx, expenses)
	suite.Require().Nil(err)

	_, count, err := repo.List(ctx, "alice", repository.Query{Limit: 1})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(5000), count)
}

func (suite *TestSuiteStandard) TestCreateAllEmpty() {
	err := repository.NewExpenses(suite.db).CreateAll(context.Background(), nil)
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestCreateAllRequiresOwner() {
	repo := repository.NewExpenses(suite.db)
	ctx := context.Background()

	err := repo.CreateAll(ctx, []models.Expense{
		{OwnerID: "alice", Category: "food"},
		{Category: "rent"},
	})
	suite.Assert().ErrorIs(err, models.ErrUnauthorized)

	_, count, err := repo.List(ctx, "alice", repository.Query{})
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), count, "no expense must be stored when one record has no owner")
}

func (suite *TestSuiteStandard) TestImportHashes() {
	repo := repository.NewExpenses(suite.db)
	ctx := context.Background()

	suite.Require().Nil(repo.CreateAll(ctx, []models.Expense{
		{OwnerID: "alice", Category: "food", ImportHash: "a"},
		{OwnerID: "alice", Category: "food", ImportHash: "a"},
		{OwnerID: "bob", Category: "food", ImportHash: "b"},
	}))

	existing, err := repo.ImportHashes(ctx, "alice", []string{"a", "b", "c"})
	suite.Require().Nil(err)
	suite.Assert().Equal(map[string]bool{"a": true}, existing)

	existing, err = repo.ImportHashes(ctx, "alice", nil)
	suite.Require().Nil(err)
	suite.Assert().Len(existing, 0)

	_, err = repo.ImportHashes(ctx, "", []string{"a"})
	suite.Assert().ErrorIs(err, models.ErrUnauthorized)
}
