package subwise

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the kind of an account.
type AccountType string

const (
	Bank       AccountType = "bank"
	Wallet     AccountType = "wallet"
	Card       AccountType = "card"
	Savings    AccountType = "savings"
	Investment AccountType = "investment"
)

// AccountTypes lists the account types in display order.
var AccountTypes = []AccountType{Bank, Wallet, Card, Savings, Investment}

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AccountTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type: %q", s)
}

// Label is the human readable name of the type.
func (t AccountType) Label() string {
	switch t {
	case Bank:
		return "Bank Account"
	case Wallet:
		return "Digital Wallet"
	case Card:
		return "Credit Card"
	case Savings:
		return "Savings"
	case Investment:
		return "Investment"
	default:
		return string(t)
	}
}

// DefaultColor is the display color used when an account is created without one.
func (t AccountType) DefaultColor() string {
	switch t {
	case Bank:
		return "#7c3aed"
	case Wallet:
		return "#0ea5e9"
	case Card:
		return "#f59e0b"
	case Savings:
		return "#10b981"
	case Investment:
		return "#ec4899"
	default:
		return "#94a3b8"
	}
}

// Account holds money in a single currency.
//
// Balance is maintained incrementally by every transaction command touching the account; it is
// never recomputed from the transaction history.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Money returns the account balance in its currency.
func (a Account) Money() Money { return M(a.Balance, a.Currency) }

// NewAccount holds the fields supplied when creating an account.
type NewAccount struct {
	Name     string
	Type     AccountType
	Balance  decimal.Decimal // starting balance
	Currency string
	Color    string
}

// Validate checks user input before AddAccount. The ledger itself trusts its input.
func (a NewAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return invalid("add account", "name is required")
	}
	if _, err := ParseAccountType(string(a.Type)); err != nil {
		return invalid("add account", "%v", err)
	}
	if !KnownCurrency(a.Currency) {
		return invalid("add account", "unknown currency %q", a.Currency)
	}
	return nil
}

// AccountUpdate holds the fields to overwrite in UpdateAccount. Nil fields are left untouched.
type AccountUpdate struct {
	Name     *string
	Type     *AccountType
	Balance  *decimal.Decimal
	Currency *string
	Color    *string
}

func (u AccountUpdate) apply(a Account) Account {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.Balance != nil {
		a.Balance = *u.Balance
	}
	if u.Currency != nil {
		a.Currency = *u.Currency
	}
	if u.Color != nil {
		a.Color = *u.Color
	}
	return a
}
