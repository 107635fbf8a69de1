package subwise

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit on one expense category.
//
// At most one budget exists per category. What has been spent is derived from the transactions,
// never stored.
type Budget struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewBudget holds the fields supplied when creating a budget.
type NewBudget struct {
	Category string
	Limit    decimal.Decimal
	Currency string
}

// BudgetUpdate holds the fields to overwrite in UpdateBudget. Nil fields are left untouched.
type BudgetUpdate struct {
	Category *string
	Limit    *decimal.Decimal
	Currency *string
}

func (u BudgetUpdate) apply(b Budget) Budget {
	if u.Category != nil {
		b.Category = *u.Category
	}
	if u.Limit != nil {
		b.Limit = *u.Limit
	}
	if u.Currency != nil {
		b.Currency = *u.Currency
	}
	return b
}
