package subwise

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

// Transactions returns an iterator over the transactions of s, newest first, that match every
// filter.
func Transactions(s State, filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
	next:
		for _, tx := range s.Transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// ByType returns a predicate that filters transactions by type.
func ByType(t TransactionType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Type == t }
}

// ByCategory returns a predicate that filters transactions by category. The Transfer category
// matches every transfer whatever its category.
func ByCategory(category string) func(Transaction) bool {
	return func(tx Transaction) bool {
		if category == TransferCategory {
			return tx.Type == Transfer
		}
		return tx.Category == category
	}
}

// ByAccount returns a predicate that filters transactions by source account.
func ByAccount(id string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.AccountID == id }
}

// Within returns a predicate that filters transactions dated in r. A zero bound is open.
func Within(r date.Range) func(Transaction) bool {
	return func(tx Transaction) bool {
		if !r.From.IsZero() && tx.Date.Before(r.From) {
			return false
		}
		return r.To.IsZero() || !tx.Date.After(r.To)
	}
}

// Matching returns a predicate that performs a case insensitive search in the note, the category
// and the source account name.
func Matching(s State, query string) func(Transaction) bool {
	q := strings.ToLower(query)
	return func(tx Transaction) bool {
		if strings.Contains(strings.ToLower(tx.Note), q) || strings.Contains(strings.ToLower(tx.Category), q) {
			return true
		}
		acc, ok := AccountByID(s, tx.AccountID)
		return ok && strings.Contains(strings.ToLower(acc.Name), q)
	}
}

// Filter holds the transaction list criteria. Empty fields match everything.
type Filter struct {
	Type      TransactionType
	Category  string
	AccountID string
	Search    string
	Range     date.Range // zero means all dates
}

// FilterTransactions returns the transactions of s matching f, newest first.
func FilterTransactions(s State, f Filter) []Transaction {
	var filters []func(Transaction) bool
	if f.Type != "" {
		filters = append(filters, ByType(f.Type))
	}
	if f.Category != "" {
		filters = append(filters, ByCategory(f.Category))
	}
	if f.AccountID != "" {
		filters = append(filters, ByAccount(f.AccountID))
	}
	if f.Search != "" {
		filters = append(filters, Matching(s, f.Search))
	}
	if !f.Range.From.IsZero() || !f.Range.To.IsZero() {
		filters = append(filters, Within(f.Range))
	}
	return slices.Collect(Transactions(s, filters...))
}

// MonthlySpending returns the expense total per category for the month containing day.
//
// Amounts are added regardless of the account currency.
func MonthlySpending(s State, day date.Date) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for tx := range Transactions(s, ByType(Expense), Within(date.NewRange(day, date.Monthly))) {
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
	}
	return spent
}

// BudgetLevel grades how much of a budget has been spent.
type BudgetLevel int

const (
	OnTrack BudgetLevel = iota // below 80%
	Warning                    // from 80% to 100%
	Over                       // 100% or more
)

func (l BudgetLevel) String() string {
	switch l {
	case OnTrack:
		return "on track"
	case Warning:
		return "warning"
	case Over:
		return "over budget"
	default:
		return "unknown"
	}
}

// BudgetStatus is the spending against one budget over a month.
type BudgetStatus struct {
	Budget  Budget
	Spent   decimal.Decimal
	Percent decimal.Decimal // Spent/Limit*100, zero when the limit is not positive
	Level   BudgetLevel
}

// Remaining is the amount left to spend, negative once the budget is exceeded.
func (b BudgetStatus) Remaining() decimal.Decimal { return b.Budget.Limit.Sub(b.Spent) }

// BudgetStatuses computes the status of every budget for the month containing day.
func BudgetStatuses(s State, day date.Date) []BudgetStatus {
	spent := MonthlySpending(s, day)
	hundred := decimal.NewFromInt(100)
	statuses := make([]BudgetStatus, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		st := BudgetStatus{Budget: b, Spent: spent[b.Category]}
		if b.Limit.IsPositive() {
			st.Percent = st.Spent.Div(b.Limit).Mul(hundred)
		}
		switch {
		case st.Percent.GreaterThanOrEqual(hundred):
			st.Level = Over
		case st.Percent.GreaterThanOrEqual(decimal.NewFromInt(80)):
			st.Level = Warning
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// MonthSummary holds the income and expense flows of one currency over a month.
type MonthSummary struct {
	Range    date.Range
	Currency string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Savings is income minus expenses; negative means a deficit.
func (m MonthSummary) Savings() decimal.Decimal { return m.Income.Sub(m.Expenses) }

// SavingsRate is the share of income saved, in percent. Zero without income.
func (m MonthSummary) SavingsRate() decimal.Decimal {
	if !m.Income.IsPositive() {
		return decimal.Zero
	}
	return m.Savings().Div(m.Income).Mul(decimal.NewFromInt(100))
}

// MonthSummaries returns one summary per account currency for the month containing day. The
// currency of a transaction is the one of its source account; transfers are not flows.
func MonthSummaries(s State, day date.Date) []MonthSummary {
	r := date.NewRange(day, date.Monthly)
	byCur := make(map[string]*MonthSummary)
	for _, cur := range Currencies(s) {
		byCur[cur] = &MonthSummary{Range: r, Currency: cur}
	}
	for tx := range Transactions(s, Within(r)) {
		acc, ok := AccountByID(s, tx.AccountID)
		if !ok {
			continue
		}
		m := byCur[acc.Currency]
		switch tx.Type {
		case Income:
			m.Income = m.Income.Add(tx.Amount)
		case Expense:
			m.Expenses = m.Expenses.Add(tx.Amount)
		}
	}
	summaries := make([]MonthSummary, 0, len(byCur))
	for _, cur := range Currencies(s) {
		summaries = append(summaries, *byCur[cur])
	}
	return summaries
}

// CategoryAmount is a total for one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// SpendingByCategory returns expense totals per category over all time, largest first, keeping at
// most top entries (all of them when top <= 0).
func SpendingByCategory(s State, top int) []CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	for tx := range Transactions(s, ByType(Expense)) {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	amounts := make([]CategoryAmount, 0, len(totals))
	for c, a := range totals {
		amounts = append(amounts, CategoryAmount{Category: c, Amount: a})
	}
	slices.SortFunc(amounts, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if top > 0 && len(amounts) > top {
		amounts = amounts[:top]
	}
	return amounts
}

// TrendPoint is the total balance at the end of a day.
type TrendPoint struct {
	Date    date.Date
	Balance decimal.Decimal
}

// BalanceTrend reconstructs the total balance at the end of today and of every transaction date,
// walking back from the current balances. Transfers do not change the total and negative totals
// are shown as zero. Points are in chronological order.
func BalanceTrend(s State, today date.Date) []TrendPoint {
	if len(s.Transactions) == 0 {
		return nil
	}
	change := map[date.Date]decimal.Decimal{today: decimal.Zero}
	for _, tx := range s.Transactions {
		delta := change[tx.Date]
		switch tx.Type {
		case Income:
			delta = delta.Add(tx.Amount)
		case Expense:
			delta = delta.Sub(tx.Amount)
		}
		change[tx.Date] = delta
	}
	days := make([]date.Date, 0, len(change))
	for d := range change {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b date.Date) int { return b.Compare(a) })

	balance := NetWorth(s)
	points := make([]TrendPoint, 0, len(days))
	for _, d := range days {
		points = append(points, TrendPoint{Date: d, Balance: decimal.Max(balance, decimal.Zero)})
		balance = balance.Sub(change[d])
	}
	slices.Reverse(points)
	return points
}

// GoalProgress is the standing of a savings goal on a given day.
type GoalProgress struct {
	Goal     SavingsGoal
	Percent  decimal.Decimal // may exceed 100
	DaysLeft int             // meaningful only when the goal has a deadline, negative once past
}

// Progress computes the standing of g on today.
func Progress(g SavingsGoal, today date.Date) GoalProgress {
	p := GoalProgress{Goal: g}
	if g.TargetAmount.IsPositive() {
		p.Percent = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	}
	if !g.Deadline.IsZero() {
		p.DaysLeft = today.DaysUntil(g.Deadline)
	}
	return p
}
