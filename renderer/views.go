package renderer

import (
	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
)

// CurrencyTotal is a formatted total in one currency.
type CurrencyTotal struct {
	Currency string
	Total    string
}

func netWorth(s subwise.State, opts Options) []CurrencyTotal {
	totals := subwise.NetWorthByCurrency(s)
	var rows []CurrencyTotal
	for _, cur := range subwise.Currencies(s) {
		rows = append(rows, CurrencyTotal{Currency: cur, Total: opts.money(totals[cur], cur)})
	}
	return rows
}

type accountsView struct {
	Rows     []accountRow
	NetWorth []CurrencyTotal
}

type accountRow struct {
	ID, Name, Type, Currency, Balance string
}

// Accounts renders the account list and the net worth per currency.
func Accounts(s subwise.State, opts Options) string {
	v := accountsView{NetWorth: netWorth(s, opts)}
	for _, a := range s.Accounts {
		v.Rows = append(v.Rows, accountRow{
			ID:       a.ID,
			Name:     a.Name,
			Type:     a.Type.Label(),
			Currency: a.Currency,
			Balance:  opts.money(a.Balance, a.Currency),
		})
	}
	return renderTemplate("accounts", "accounts.md", map[string]string{"networth": "networth.md"}, v)
}

// NetWorth renders the net worth per currency.
func NetWorth(s subwise.State, opts Options) string {
	return renderTemplate("networth", "networth.md", nil, netWorth(s, opts))
}

type transactionsView struct {
	Count int
	Rows  []transactionRow
}

type transactionRow struct {
	ID, Date, Type, Category, Account, Amount, Note, Recurrence string
}

// Transactions renders txs as a table, resolving account names against s.
func Transactions(s subwise.State, txs []subwise.Transaction, opts Options) string {
	v := transactionsView{Count: len(txs)}
	for _, tx := range txs {
		row := transactionRow{
			ID:       tx.ID,
			Date:     tx.Date.String(),
			Type:     string(tx.Type),
			Category: tx.Category,
			Note:     tx.Note,
		}
		from, _ := subwise.AccountByID(s, tx.AccountID)
		row.Account = from.Name
		if tx.Type == subwise.Transfer {
			to, _ := subwise.AccountByID(s, tx.ToAccountID)
			row.Account = from.Name + " → " + to.Name
		}
		amount := tx.Amount
		if tx.Type == subwise.Expense {
			amount = amount.Neg()
		}
		row.Amount = opts.signed(amount, from.Currency)
		if tx.Type == subwise.Transfer {
			row.Amount = opts.money(amount, from.Currency)
		}
		switch {
		case tx.IsRecurring:
			row.Recurrence = "every " + periodNoun(tx.RecurrenceFrequency)
		case tx.ParentRecurringID != "":
			row.Recurrence = "auto"
		}
		v.Rows = append(v.Rows, row)
	}
	return renderTemplate("transactions", "transactions.md", nil, v)
}

func periodNoun(p date.Period) string {
	switch p {
	case date.Daily:
		return "day"
	case date.Weekly:
		return "week"
	case date.Monthly:
		return "month"
	default:
		return "year"
	}
}

type budgetsView struct {
	Month string
	Rows  []budgetRow
	Over  int
}

type budgetRow struct {
	ID, Category, Spent, Limit, Remaining, Percent, Status string
}

// Budgets renders the status of every budget over the month containing day.
func Budgets(s subwise.State, day date.Date, opts Options) string {
	v := budgetsView{Month: day.Time().Format("January 2006")}
	for _, st := range subwise.BudgetStatuses(s, day) {
		b := st.Budget
		v.Rows = append(v.Rows, budgetRow{
			ID:        b.ID,
			Category:  b.Category,
			Spent:     opts.money(st.Spent, b.Currency),
			Limit:     opts.money(b.Limit, b.Currency),
			Remaining: opts.money(st.Remaining(), b.Currency),
			Percent:   percent(st.Percent),
			Status:    st.Level.String(),
		})
		if st.Spent.GreaterThan(b.Limit) {
			v.Over++
		}
	}
	return renderTemplate("budgets", "budgets.md", nil, v)
}

type goalsView struct {
	Rows      []goalRow
	Completed int
}

type goalRow struct {
	ID, Name, Saved, Target, Percent, Deadline, Account string
	Reached                                             bool
}

// Goals renders the progress of every savings goal on today.
func Goals(s subwise.State, today date.Date, opts Options) string {
	var v goalsView
	for _, g := range s.SavingsGoals {
		p := subwise.Progress(g, today)
		row := goalRow{
			ID:      g.ID,
			Name:    g.Name,
			Saved:   opts.money(g.CurrentAmount, g.Currency),
			Target:  opts.money(g.TargetAmount, g.Currency),
			Percent: percent(p.Percent),
			Reached: g.Reached(),
		}
		if !g.Deadline.IsZero() {
			row.Deadline = deadline(g.Deadline, p.DaysLeft)
		}
		if acc, ok := subwise.AccountByID(s, g.AccountID); ok {
			row.Account = acc.Name
		}
		if row.Reached {
			v.Completed++
		}
		v.Rows = append(v.Rows, row)
	}
	return renderTemplate("goals", "goals.md", nil, v)
}

func deadline(d date.Date, daysLeft int) string {
	switch {
	case daysLeft < 0:
		return d.String() + " (overdue)"
	case daysLeft == 0:
		return d.String() + " (today)"
	default:
		return d.String() + " (" + itoa(daysLeft) + " days left)"
	}
}

type summaryView struct {
	Month    string
	Flows    []flowRow
	Spending []categoryRow
	Budgets  []budgetRow // over or near their limit only
	NetWorth []CurrencyTotal
}

type flowRow struct {
	Currency, Income, Expenses, Savings, Rate string
}

type categoryRow struct {
	Category, Amount string
}

// Summary renders the dashboard of the month containing day: flows per currency, top spending
// categories, budgets needing attention and net worth.
func Summary(s subwise.State, day date.Date, opts Options) string {
	v := summaryView{Month: day.Time().Format("January 2006"), NetWorth: netWorth(s, opts)}
	for _, m := range subwise.MonthSummaries(s, day) {
		v.Flows = append(v.Flows, flowRow{
			Currency: m.Currency,
			Income:   opts.money(m.Income, m.Currency),
			Expenses: opts.money(m.Expenses, m.Currency),
			Savings:  opts.signed(m.Savings(), m.Currency),
			Rate:     percent(m.SavingsRate()),
		})
	}
	// spending is added across currencies: show raw amounts
	for _, c := range subwise.SpendingByCategory(s, 5) {
		amount := c.Amount.StringFixed(2)
		if opts.Privacy {
			amount = Mask
		}
		v.Spending = append(v.Spending, categoryRow{Category: c.Category, Amount: amount})
	}
	for _, st := range subwise.BudgetStatuses(s, day) {
		if st.Level == subwise.OnTrack {
			continue
		}
		v.Budgets = append(v.Budgets, budgetRow{
			Category: st.Budget.Category,
			Spent:    opts.money(st.Spent, st.Budget.Currency),
			Limit:    opts.money(st.Budget.Limit, st.Budget.Currency),
			Percent:  percent(st.Percent),
			Status:   st.Level.String(),
		})
	}
	partials := map[string]string{
		"summary_flows":    "summary_flows.md",
		"summary_spending": "summary_spending.md",
		"summary_budgets":  "summary_budgets.md",
		"networth":         "networth.md",
	}
	if len(v.Budgets) == 0 {
		partials["summary_budgets"] = ""
	}
	return renderTemplate("summary", "summary.md", partials, v)
}
