package subwise

import (
	"slices"

	"github.com/shopspring/decimal"
)

// NetWorth sums every account balance.
//
// Balances in different currencies are added as plain numbers; use NetWorthByCurrency for a
// meaningful figure on multi-currency ledgers.
func NetWorth(s State) decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// NetWorthByCurrency sums account balances per currency.
func NetWorthByCurrency(s State) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, a := range s.Accounts {
		totals[a.Currency] = totals[a.Currency].Add(a.Balance)
	}
	return totals
}

// Currencies returns the sorted list of currencies held by accounts.
func Currencies(s State) []string {
	var curs []string
	for _, a := range s.Accounts {
		if !slices.Contains(curs, a.Currency) {
			curs = append(curs, a.Currency)
		}
	}
	slices.Sort(curs)
	return curs
}

func AccountByID(s State, id string) (Account, bool) {
	return find(s.Accounts, func(a Account) bool { return a.ID == id })
}

func TransactionByID(s State, id string) (Transaction, bool) {
	return find(s.Transactions, func(t Transaction) bool { return t.ID == id })
}

func BudgetByID(s State, id string) (Budget, bool) {
	return find(s.Budgets, func(b Budget) bool { return b.ID == id })
}

func SavingsGoalByID(s State, id string) (SavingsGoal, bool) {
	return find(s.SavingsGoals, func(g SavingsGoal) bool { return g.ID == id })
}

func budgetByCategory(s State, category string) (Budget, bool) {
	return find(s.Budgets, func(b Budget) bool { return b.Category == category })
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	if i := slices.IndexFunc(items, match); i >= 0 {
		return items[i], true
	}
	var zero T
	return zero, false
}
