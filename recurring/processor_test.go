package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

func newLedger(templates ...subwise.Transaction) *subwise.Ledger {
	return subwise.NewLedger(subwise.State{
		Accounts: []subwise.Account{
			{ID: "bank", Name: "Bank", Type: subwise.Bank, Balance: decimal.NewFromInt(1000), Currency: "EUR"},
			{ID: "save", Name: "Savings", Type: subwise.Savings, Balance: decimal.Zero, Currency: "EUR"},
		},
		Transactions: templates,
	})
}

func rent(start string, p date.Period) subwise.Transaction {
	return subwise.Transaction{
		ID:                  "rent",
		Type:                subwise.Expense,
		Amount:              decimal.NewFromInt(100),
		Category:            "Housing & Rent",
		Note:                "rent",
		Date:                date.MustParse(start),
		AccountID:           "bank",
		IsRecurring:         true,
		RecurrenceFrequency: p,
	}
}

func occurrences(s subwise.State, parent string) []string {
	var dates []string
	for _, tx := range s.Transactions {
		if tx.ParentRecurringID == parent {
			dates = append(dates, tx.Date.String())
		}
	}
	return dates
}

// One occurrence per template per call, whatever the number of missed periods.
func TestProcess_SingleStep(t *testing.T) {
	l := newLedger(rent("2024-01-01", date.Monthly))
	today := date.New(2024, 3, 15)

	testCases := []struct {
		want []string // occurrence dates after the call, newest first
	}{
		{[]string{"2024-02-01"}},
		{[]string{"2024-03-01", "2024-02-01"}},
		{[]string{"2024-03-01", "2024-02-01"}},
	}
	for i, tc := range testCases {
		Process(l, today)
		got := occurrences(l.State(), "rent")
		if len(got) != len(tc.want) {
			t.Fatalf("call %d: occurrences = %v, want %v", i+1, got, tc.want)
		}
		for j := range got {
			if got[j] != tc.want[j] {
				t.Errorf("call %d: occurrences = %v, want %v", i+1, got, tc.want)
			}
		}
	}

	bank, _ := subwise.AccountByID(l.State(), "bank")
	if !bank.Balance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("bank balance = %s, want 800", bank.Balance)
	}
}

func TestProcess_Occurrence(t *testing.T) {
	tpl := rent("2025-06-01", date.Weekly)
	tpl.Type = subwise.Transfer
	tpl.Category = subwise.TransferCategory
	tpl.ToAccountID = "save"
	l := newLedger(tpl)

	generated := Process(l, date.New(2025, 6, 8))
	if len(generated) != 1 {
		t.Fatalf("Process() = %v, want 1 occurrence", generated)
	}
	occ := generated[0]
	if occ.IsRecurring || occ.ParentRecurringID != "rent" || occ.Date != date.New(2025, 6, 8) ||
		occ.Type != subwise.Transfer || occ.ToAccountID != "save" || occ.Note != "rent" {
		t.Errorf("occurrence = %+v", occ)
	}
	save, _ := subwise.AccountByID(l.State(), "save")
	if !save.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("savings balance = %s, want 100", save.Balance)
	}
}

func TestProcess_NotDue(t *testing.T) {
	testCases := []struct {
		name  string
		tpl   subwise.Transaction
		today date.Date
	}{
		{"next date in the future", rent("2025-06-01", date.Monthly), date.New(2025, 6, 30)},
		{"yearly", rent("2025-02-28", date.Yearly), date.New(2026, 2, 27)},
		{"ended", func() subwise.Transaction {
			tpl := rent("2025-01-01", date.Daily)
			tpl.RecurrenceEndDate = date.New(2025, 1, 31)
			return tpl
		}(), date.New(2025, 2, 1)},
		{"not a template", func() subwise.Transaction {
			tpl := rent("2025-01-01", date.Daily)
			tpl.IsRecurring = false
			return tpl
		}(), date.New(2025, 2, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLedger(tc.tpl)
			if got := Process(l, tc.today); len(got) != 0 {
				t.Errorf("Process() = %v, want nothing", got)
			}
		})
	}
}

func TestProcess_EndDateIsInclusive(t *testing.T) {
	tpl := rent("2025-01-01", date.Daily)
	tpl.RecurrenceEndDate = date.New(2025, 1, 2)
	l := newLedger(tpl)
	if got := Process(l, date.New(2025, 1, 2)); len(got) != 1 {
		t.Errorf("Process() = %v, want 1 occurrence on the end date", got)
	}
}

func TestProcess_MonthOverflow(t *testing.T) {
	l := newLedger(rent("2025-01-31", date.Monthly))
	generated := Process(l, date.New(2025, 3, 31))
	if len(generated) != 1 || generated[0].Date != date.New(2025, 3, 3) {
		t.Errorf("Process() = %v, want one occurrence on 2025-03-03", generated)
	}
}

func TestProcess_LastOccurrenceIsTheLatest(t *testing.T) {
	tpl := rent("2025-01-01", date.Monthly)
	occ := func(id, day string) subwise.Transaction {
		return subwise.Transaction{ID: id, Type: subwise.Expense, Amount: decimal.NewFromInt(100), AccountID: "bank", Date: date.MustParse(day), ParentRecurringID: "rent"}
	}
	// stored out of order, as an import could leave them
	l := newLedger(occ("o1", "2025-03-01"), occ("o2", "2025-02-01"), tpl)

	generated := Process(l, date.New(2025, 4, 10))
	if len(generated) != 1 || generated[0].Date != date.New(2025, 4, 1) {
		t.Errorf("Process() = %v, want one occurrence on 2025-04-01", generated)
	}
}

func TestScheduler(t *testing.T) {
	if _, err := NewScheduler(newLedger(), "every now and then", SchedulerOptions{}); err == nil {
		t.Errorf("NewScheduler() accepted an invalid spec")
	}

	l := newLedger(rent("2024-01-01", date.Monthly))
	var runs [][]subwise.Transaction
	s, err := NewScheduler(l, "", SchedulerOptions{
		Today: func() date.Date { return date.New(2024, 1, 1).AddMonth(1) },
		OnRun: func(txs []subwise.Transaction) { runs = append(runs, txs) },
	})
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	s.Run()
	s.Run()
	if len(runs) != 2 || len(runs[0]) != 1 || len(runs[1]) != 0 {
		t.Errorf("runs = %v, want one occurrence then none", runs)
	}

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
