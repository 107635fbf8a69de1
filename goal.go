package subwise

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress toward a target amount.
//
// The linked account is informational: contributions never move money out of it.
type SavingsGoal struct {
	ID            string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal // may exceed TargetAmount
	Currency      string
	Deadline      date.Date // zero when none
	AccountID     string    // optional linked account
	Color         string
	CreatedAt     time.Time
}

// Reached reports whether the goal target is met.
func (g SavingsGoal) Reached() bool { return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) }

// MarshalJSON writes the snapshot representation, omitting the optional deadline and account.
func (g SavingsGoal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", g.ID)
	w.Append("name", g.Name)
	w.Append("targetAmount", g.TargetAmount)
	w.Append("currentAmount", g.CurrentAmount)
	w.Append("currency", g.Currency)
	w.Optional("deadline", g.Deadline)
	w.Optional("accountId", g.AccountID)
	w.Append("color", g.Color)
	w.Append("createdAt", g.CreatedAt)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the snapshot representation.
func (g *SavingsGoal) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		TargetAmount  decimal.Decimal `json:"targetAmount"`
		CurrentAmount decimal.Decimal `json:"currentAmount"`
		Currency      string          `json:"currency"`
		Deadline      string          `json:"deadline"`
		AccountID     string          `json:"accountId"`
		Color         string          `json:"color"`
		CreatedAt     time.Time       `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*g = SavingsGoal{
		ID:            temp.ID,
		Name:          temp.Name,
		TargetAmount:  temp.TargetAmount,
		CurrentAmount: temp.CurrentAmount,
		Currency:      temp.Currency,
		AccountID:     temp.AccountID,
		Color:         temp.Color,
		CreatedAt:     temp.CreatedAt,
	}
	if temp.Deadline != "" {
		d, err := parseDataDate(temp.Deadline)
		if err != nil {
			return fmt.Errorf("savings goal %q: %w", temp.ID, err)
		}
		g.Deadline = d
	}
	return nil
}

// NewSavingsGoal holds the fields supplied when creating a goal.
type NewSavingsGoal struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal // starting amount, zero by default
	Currency      string
	Deadline      date.Date
	AccountID     string
	Color         string
}

// SavingsGoalUpdate holds the fields to overwrite in UpdateSavingsGoal. Nil fields are left
// untouched.
type SavingsGoalUpdate struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Currency      *string
	Deadline      *date.Date // a zero date clears the deadline
	AccountID     *string
	Color         *string
}

func (u SavingsGoalUpdate) apply(g SavingsGoal) SavingsGoal {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.TargetAmount != nil {
		g.TargetAmount = *u.TargetAmount
	}
	if u.CurrentAmount != nil {
		g.CurrentAmount = *u.CurrentAmount
	}
	if u.Currency != nil {
		g.Currency = *u.Currency
	}
	if u.Deadline != nil {
		g.Deadline = *u.Deadline
	}
	if u.AccountID != nil {
		g.AccountID = *u.AccountID
	}
	if u.Color != nil {
		g.Color = *u.Color
	}
	return g
}
