package models

import (
	"strings"

	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is a single expense recorded by a user.
type Expense struct {
	DefaultModel
	OwnerID     string `gorm:"index:expense_owner_date,priority:1;not null"`
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string          `gorm:"index"`
	Date        types.Date      `gorm:"index:expense_owner_date,priority:2"`
	ImportHash  string          `gorm:"index"` // The SHA256 hash of the imported CSV row, used in duplicate detection
}

// BeforeSave trims whitespace from all strings
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)

	return nil
}

func (e Expense) Self() string {
	return "Expense"
}

func (e Expense) Owner() string {
	return e.OwnerID
}
