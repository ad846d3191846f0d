package models_test

import (
	"testing"

	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseSelf() {
	suite.Assert().Equal("Expense", models.Expense{}.Self())
	suite.Assert().Equal("alice", models.Expense{OwnerID: "alice"}.Owner())
}

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	expense := models.Expense{
		OwnerID:     "alice",
		Description: "\t Coffee  ",
		Category:    " food\n",
		Amount:      decimal.NewFromFloat(3.2),
		Date:        types.NewDate(2024, 1, 5),
	}

	err := suite.db.Create(&expense).Error
	suite.Require().Nil(err)

	suite.Assert().Equal("Coffee", expense.Description)
	suite.Assert().Equal("food", expense.Category)
}

func (suite *TestSuiteStandard) TestExpenseRoundTrip() {
	expense := models.Expense{
		OwnerID:     "alice",
		Description: "Train ticket",
		Category:    "transport",
		Amount:      decimal.RequireFromString("12.34"),
		Date:        types.NewDate(2024, 2, 29),
	}

	suite.Require().Nil(suite.db.Create(&expense).Error)
	suite.Assert().NotEqual(expense.ID.String(), "00000000-0000-0000-0000-000000000000")

	var read models.Expense
	suite.Require().Nil(suite.db.First(&read, "id = ?", expense.ID).Error)

	suite.Assert().True(expense.Amount.Equal(read.Amount), "amount changed: %s", read.Amount)
	suite.Assert().Equal("2024-02-29", read.Date.String())
	suite.Assert().Equal("alice", read.OwnerID)
	suite.Assert().Equal("UTC", read.CreatedAt.Location().String())
}

// sqlite stores DECIMAL columns as REAL. Amounts with up to 15 significant
// digits are read back exactly.
func (suite *TestSuiteStandard) TestExpenseAmountPrecision() {
	tests := []string{"0.1", "0.3", "19.99", "1234567.89", "9999999999.99", "0.00000001", "12345.12345678"}

	for _, amount := range tests {
		suite.T().Run(amount, func(t *testing.T) {
			expense := models.Expense{
				OwnerID:  "alice",
				Category: "food",
				Amount:   decimal.RequireFromString(amount),
				Date:     types.NewDate(2024, 1, 5),
			}
			require.Nil(t, suite.db.Create(&expense).Error)

			var read models.Expense
			require.Nil(t, suite.db.First(&read, "id = ?", expense.ID).Error)
			assert.True(t, expense.Amount.Equal(read.Amount), "wrote %s, read %s", expense.Amount, read.Amount)
		})
	}
}
