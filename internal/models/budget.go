package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending limit a user sets for a category.
//
// Multiple budgets for the same category are allowed, their limits
// are added up in the overview.
type Budget struct {
	DefaultModel
	OwnerID  string `gorm:"index;not null"`
	Category string
	Limit    decimal.Decimal `gorm:"column:limit_amount;type:DECIMAL(20,8)"`
}

// BeforeSave trims whitespace from all strings
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)

	return nil
}

func (b Budget) Self() string {
	return "Budget"
}

func (b Budget) Owner() string {
	return b.OwnerID
}
