package subwise

import (
	"fmt"
	"time"

	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

// d is a helper for test to create a decimal from a const
func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// testLedger returns a ledger with deterministic ids ("id-1", "id-2", ...) and a fixed clock.
func testLedger(initial State, opts ...Option) *Ledger {
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return NewLedger(initial, append([]Option{WithIDs(ids), WithClock(clock)}, opts...)...)
}

func balances(s State) map[string]string {
	m := make(map[string]string)
	for _, a := range s.Accounts {
		m[a.ID] = a.Balance.String()
	}
	return m
}

func expense(amount, account, day string) TransactionInput {
	return TransactionInput{Type: Expense, Amount: d(amount), Category: "Food & Dining", AccountID: account, Date: date.MustParse(day)}
}

func income(amount, account, day string) TransactionInput {
	return TransactionInput{Type: Income, Amount: d(amount), Category: "Salary", AccountID: account, Date: date.MustParse(day)}
}

func transfer(amount, from, to, day string) TransactionInput {
	return TransactionInput{Type: Transfer, Amount: d(amount), Category: TransferCategory, AccountID: from, ToAccountID: to, Date: date.MustParse(day)}
}
