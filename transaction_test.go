package subwise

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/etnz/subwise/date"
)

func TestTransactionInput_Validate(t *testing.T) {
	recurring := expense("10", "a", "2025-06-01")
	recurring.IsRecurring = true
	recurring.RecurrenceFrequency = date.Weekly

	testCases := []struct {
		name    string
		modify  func(in *TransactionInput)
		base    TransactionInput
		wantErr bool
	}{
		{name: "valid expense", base: expense("10", "a", "2025-06-01")},
		{name: "valid income", base: income("10", "a", "2025-06-01")},
		{name: "valid transfer", base: transfer("10", "a", "b", "2025-06-01")},
		{name: "valid recurring", base: recurring},
		{name: "zero amount", base: expense("0", "a", "2025-06-01"), wantErr: true},
		{name: "negative amount", base: expense("-1", "a", "2025-06-01"), wantErr: true},
		{name: "no account", base: expense("1", "", "2025-06-01"), wantErr: true},
		{name: "no date", base: expense("1", "a", "2025-06-01"), modify: func(in *TransactionInput) { in.Date = date.Date{} }, wantErr: true},
		{name: "income category on expense", base: expense("1", "a", "2025-06-01"), modify: func(in *TransactionInput) { in.Category = "Salary" }, wantErr: true},
		{name: "transfer to itself", base: transfer("1", "a", "a", "2025-06-01"), wantErr: true},
		{name: "transfer without destination", base: transfer("1", "a", "", "2025-06-01"), wantErr: true},
		{name: "expense with destination", base: expense("1", "a", "2025-06-01"), modify: func(in *TransactionInput) { in.ToAccountID = "b" }, wantErr: true},
		{name: "unknown type", base: expense("1", "a", "2025-06-01"), modify: func(in *TransactionInput) { in.Type = "gift" }, wantErr: true},
		{name: "recurrence ends before start", base: recurring, modify: func(in *TransactionInput) { in.RecurrenceEndDate = date.New(2025, 5, 1) }, wantErr: true},
		{name: "end date without recurrence", base: expense("1", "a", "2025-06-01"), modify: func(in *TransactionInput) { in.RecurrenceEndDate = date.New(2025, 7, 1) }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.base
			if tc.modify != nil {
				tc.modify(&in)
			}
			err := in.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestNewAccount_Validate(t *testing.T) {
	testCases := []struct {
		in      NewAccount
		wantErr bool
	}{
		{NewAccount{Name: "Bank", Type: Bank, Currency: "EGP"}, false},
		{NewAccount{Name: "Bank", Type: Bank, Currency: "usd"}, false},
		{NewAccount{Name: " ", Type: Bank, Currency: "EUR"}, true},
		{NewAccount{Name: "Bank", Type: "piggy", Currency: "EUR"}, true},
		{NewAccount{Name: "Bank", Type: Bank, Currency: "XXXX"}, true},
	}
	for _, tc := range testCases {
		if err := tc.in.Validate(); (err != nil) != tc.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestTransaction_JSON(t *testing.T) {
	tx := Transaction{ID: "t", Type: Expense, Amount: d("3.5"), Category: "Other", Date: date.New(2025, 1, 2), AccountID: "a"}
	got, err := json.Marshal(tx)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"t","type":"expense","amount":3.5,"category":"Other","note":"","date":"2025-01-02","accountId":"a","createdAt":"0001-01-01T00:00:00Z"}`
	if string(got) != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	var back Transaction
	if err := json.Unmarshal([]byte(`{"id":"r","type":"income","amount":1,"date":"2025-1-31","accountId":"a","isRecurring":true,"recurrenceFrequency":"monthly"}`), &back); err != nil {
		t.Fatal(err)
	}
	if !back.IsRecurring || back.RecurrenceFrequency != date.Monthly || back.Date != date.New(2025, 1, 31) {
		t.Errorf("json.Unmarshal() = %+v", back)
	}

	if err := json.Unmarshal([]byte(`{"id":"r","recurrenceFrequency":"hourly"}`), &back); err == nil {
		t.Errorf("json.Unmarshal() accepted an unknown frequency")
	}
}

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{M(d("1234.5"), "USD"), "$1,234.50"},
		{M(d("-3"), "USD"), "-$3.00"},
		{M(d("10"), "XYZ"), "10.00 XYZ"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
