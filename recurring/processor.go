// Package recurring generates the dated occurrences of recurring transaction templates.
//
// It only uses the public command API of the ledger: every occurrence is an ordinary transaction
// added with AddTransaction, so its balance effect is applied like any other.
package recurring

import (
	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
)

// Process generates, for every recurring template, at most one occurrence due on or before today,
// and returns the generated transactions.
//
// The next occurrence is one period after the latest existing occurrence of the template, or
// after the template itself when it has none. A template whose end date is before today is
// skipped. Missed periods are caught up one call at a time.
func Process(l *subwise.Ledger, today date.Date) []subwise.Transaction {
	s := l.State()
	var generated []subwise.Transaction
	for _, tpl := range s.Transactions {
		next, due := NextOccurrence(s, tpl, today)
		if !due {
			continue
		}
		in := subwise.TransactionInput{
			Type:              tpl.Type,
			Amount:            tpl.Amount,
			Category:          tpl.Category,
			Note:              tpl.Note,
			Date:              next,
			AccountID:         tpl.AccountID,
			ToAccountID:       tpl.ToAccountID,
			ParentRecurringID: tpl.ID,
		}
		generated = append(generated, l.AddTransaction(in))
	}
	return generated
}

// NextOccurrence returns the date of the next occurrence of tpl and whether it is due on today.
// It returns false for transactions that are not dated templates or whose recurrence has ended.
func NextOccurrence(s subwise.State, tpl subwise.Transaction, today date.Date) (date.Date, bool) {
	if !tpl.IsRecurring || tpl.Date.IsZero() {
		return date.Date{}, false
	}
	if !tpl.RecurrenceEndDate.IsZero() && tpl.RecurrenceEndDate.Before(today) {
		return date.Date{}, false
	}
	next := LastOccurrence(s, tpl).AddPeriod(tpl.RecurrenceFrequency)
	return next, !next.After(today)
}

// LastOccurrence returns the latest date among the occurrences of tpl, or the template date when
// none has been generated yet.
func LastOccurrence(s subwise.State, tpl subwise.Transaction) date.Date {
	last := tpl.Date
	if tpl.ID == "" {
		return last
	}
	found := false
	for _, tx := range s.Transactions {
		if tx.ParentRecurringID != tpl.ID {
			continue
		}
		if !found || tx.Date.After(last) {
			last = tx.Date
			found = true
		}
	}
	return last
}
