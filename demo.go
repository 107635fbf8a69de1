package subwise

import (
	"time"

	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

// DemoState returns the sample ledger offered on first run. Dates are relative to now.
//
// Account balances are given as they are, they are not derived from the sample transactions.
func DemoState(now time.Time) State {
	ago := func(days int) time.Time { return now.AddDate(0, 0, -days) }
	day := func(days int) date.Date { return date.Of(ago(days)) }

	accounts := []Account{
		{ID: "acc-1", Name: "CIB Bank", Type: Bank, Balance: decimal.NewFromInt(45000), Currency: "EGP", Color: Bank.DefaultColor(), CreatedAt: ago(90)},
		{ID: "acc-2", Name: "Vodafone Cash", Type: Wallet, Balance: decimal.NewFromInt(3200), Currency: "EGP", Color: Wallet.DefaultColor(), CreatedAt: ago(60)},
		{ID: "acc-3", Name: "Cash Wallet", Type: Wallet, Balance: decimal.NewFromInt(1500), Currency: "EGP", Color: "#f59e0b", CreatedAt: ago(60)},
		{ID: "acc-4", Name: "Savings Goal", Type: Savings, Balance: decimal.NewFromInt(22000), Currency: "EGP", Color: Savings.DefaultColor(), CreatedAt: ago(30)},
	}

	tx := func(id string, typ TransactionType, amount int64, category, note string, days int, from, to string) Transaction {
		return Transaction{
			ID:          id,
			Type:        typ,
			Amount:      decimal.NewFromInt(amount),
			Category:    category,
			Note:        note,
			Date:        day(days),
			AccountID:   from,
			ToAccountID: to,
			CreatedAt:   ago(days),
		}
	}
	// newest first
	transactions := []Transaction{
		tx("tx-12", Income, 800, "Investment Returns", "Dividends", 1, "acc-4", ""),
		tx("tx-11", Expense, 720, "Utilities", "Electricity & water", 3, "acc-1", ""),
		tx("tx-10", Transfer, 1200, TransferCategory, "Top-up wallet", 4, "acc-1", "acc-2"),
		tx("tx-9", Expense, 450, "Healthcare", "Doctor visit", 6, "acc-1", ""),
		tx("tx-8", Expense, 600, "Entertainment", "Cinema & events", 8, "acc-3", ""),
		tx("tx-7", Income, 4500, "Freelance", "Design project", 10, "acc-1", ""),
		tx("tx-6", Expense, 3200, "Shopping", "Clothes & electronics", 12, "acc-1", ""),
		tx("tx-5", Expense, 980, "Subscriptions", "Netflix, Spotify, etc.", 15, "acc-1", ""),
		tx("tx-4", Transfer, 5000, TransferCategory, "Monthly savings", 18, "acc-1", "acc-4"),
		tx("tx-3", Expense, 1800, "Transportation", "Uber & fuel", 20, "acc-2", ""),
		tx("tx-2", Expense, 2400, "Food & Dining", "Groceries & restaurants", 22, "acc-1", ""),
		tx("tx-1", Income, 15000, "Salary", "Monthly salary", 25, "acc-1", ""),
	}

	return State{Accounts: accounts, Transactions: transactions}
}
