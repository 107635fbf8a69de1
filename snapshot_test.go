package subwise

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/subwise/date"
)

func fullState() State {
	created := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)
	return State{
		Accounts: []Account{
			{ID: "a", Name: "Bank", Type: Bank, Balance: d("1200.5"), Currency: "EUR", Color: "#7c3aed", CreatedAt: created},
			{ID: "b", Name: "Savings", Type: Savings, Balance: d("300"), Currency: "EUR", Color: "#10b981", CreatedAt: created},
		},
		Transactions: []Transaction{
			{ID: "t3", Type: Transfer, Amount: d("100"), Category: TransferCategory, Date: date.New(2025, 3, 5), AccountID: "a", ToAccountID: "b", CreatedAt: created},
			{ID: "t2", Type: Expense, Amount: d("9.99"), Category: "Subscriptions", Note: "music", Date: date.New(2025, 3, 2), AccountID: "a", CreatedAt: created, ParentRecurringID: "t1"},
			{ID: "t1", Type: Expense, Amount: d("9.99"), Category: "Subscriptions", Note: "music", Date: date.New(2025, 2, 2), AccountID: "a", CreatedAt: created, IsRecurring: true, RecurrenceFrequency: date.Monthly, RecurrenceEndDate: date.New(2025, 12, 31)},
		},
		Budgets: []Budget{
			{ID: "bu", Category: "Subscriptions", Limit: d("50"), Currency: "EUR", CreatedAt: created},
		},
		SavingsGoals: []SavingsGoal{
			{ID: "g", Name: "Trip", TargetAmount: d("2000"), CurrentAmount: d("250"), Currency: "EUR", Deadline: date.New(2025, 9, 1), AccountID: "b", Color: "#f59e0b", CreatedAt: created},
		},
		PrivacyMode: true,
	}
}

func encode(t *testing.T, s Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	return buf.String()
}

func TestSnapshot_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	first := encode(t, Export(fullState(), now))

	s, err := DecodeSnapshot(strings.NewReader(first))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	l := NewLedger(State{})
	l.Import(s)

	second := encode(t, Export(l.State(), now))
	if first != second {
		t.Errorf("round trip differs:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if !l.State().PrivacyMode {
		t.Errorf("privacy mode not restored")
	}
}

func TestSnapshot_Encoding(t *testing.T) {
	doc := encode(t, Export(fullState(), time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)))

	for _, want := range []string{
		`"version": "1.0"`,
		`"exportedAt": "2025-03-10T12:00:00Z"`,
		`"balance": 1200.5`,
		`"date": "2025-03-05"`,
		`"toAccountId": "b"`,
		`"recurrenceFrequency": "monthly"`,
		`"recurrenceEndDate": "2025-12-31"`,
		`"parentRecurringId": "t1"`,
		`"deadline": "2025-09-01"`,
		`"privacyMode": true`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %s:\n%s", want, doc)
		}
	}
	// only the template carries recurrence fields, and only transfers a destination
	if n := strings.Count(doc, `"isRecurring"`); n != 1 {
		t.Errorf("isRecurring written %d times, want 1", n)
	}
	if n := strings.Count(doc, `"toAccountId"`); n != 1 {
		t.Errorf("toAccountId written %d times, want 1", n)
	}
}

func TestSnapshot_EmptyCollections(t *testing.T) {
	doc := encode(t, Export(State{}, time.Time{}))
	for _, want := range []string{`"accounts": []`, `"transactions": []`, `"budgets": []`, `"savingsGoals": []`} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %s:\n%s", want, doc)
		}
	}
}

func TestDecodeSnapshot_LegacyDocument(t *testing.T) {
	// backups made before budgets, goals and privacy existed
	doc := `{
  "exportedAt": "2025-01-01T00:00:00.000Z",
  "version": "1.0",
  "accounts": [{"id": "acc-1", "name": "CIB Bank", "type": "bank", "balance": 45000, "currency": "EGP", "color": "#7c3aed", "createdAt": "2024-10-01T09:00:00.000Z"}],
  "transactions": [{"id": "tx-1", "type": "income", "amount": 15000, "category": "Salary", "note": "Monthly salary", "date": "2024-12-07", "accountId": "acc-1", "createdAt": "2024-12-07T09:00:00.000Z"}]
}`
	s, err := DecodeSnapshot(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(s.Accounts) != 1 || len(s.Transactions) != 1 || len(s.Budgets) != 0 || len(s.SavingsGoals) != 0 {
		t.Errorf("DecodeSnapshot() = %+v", s)
	}
	if s.PrivacyMode != nil {
		t.Errorf("PrivacyMode = %v, want nil", *s.PrivacyMode)
	}
	if got := s.Transactions[0].Date; got != date.New(2024, 12, 7) {
		t.Errorf("date = %v", got)
	}

	l := NewLedger(State{PrivacyMode: true})
	l.Import(s)
	if !l.State().PrivacyMode {
		t.Errorf("privacy mode lost when importing a document without it")
	}
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"not json", `hello`},
		{"not an object", `[1, 2]`},
		{"missing accounts", `{"transactions": []}`},
		{"missing transactions", `{"accounts": []}`},
		{"accounts not an array", `{"accounts": {}, "transactions": []}`},
		{"transactions null", `{"accounts": [], "transactions": null}`},
		{"untypeable record", `{"accounts": [{"id": "a", "balance": "lots"}], "transactions": []}`},
		{"bad date", `{"accounts": [], "transactions": [{"id": "t", "date": "tomorrow"}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSnapshot(strings.NewReader(tc.doc))
			if !errors.Is(err, ErrImportFormat) {
				t.Errorf("DecodeSnapshot() error = %v, want ErrImportFormat", err)
			}
		})
	}
}
