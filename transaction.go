package subwise

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType identifies the balance effect of a transaction.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense, Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction moves money into, out of, or between accounts.
//
// A transaction with IsRecurring set is a template: the recurring processor generates dated
// occurrences from it, each pointing back to it through ParentRecurringID.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      decimal.Decimal // always positive, the type gives the direction
	Category    string
	Note        string
	Date        date.Date
	AccountID   string // source account
	ToAccountID string // destination account, transfers only
	CreatedAt   time.Time

	IsRecurring         bool
	RecurrenceFrequency date.Period // meaningful iff IsRecurring
	RecurrenceEndDate   date.Date   // zero when unbounded
	ParentRecurringID   string      // set on generated occurrences only
}

// References reports whether the transaction touches the account id, as source or destination.
func (t Transaction) References(id string) bool {
	return t.AccountID == id || (t.ToAccountID != "" && t.ToAccountID == id)
}

// Input returns the editable fields of t, ready to be modified and passed to UpdateTransaction.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		Type:                t.Type,
		Amount:              t.Amount,
		Category:            t.Category,
		Note:                t.Note,
		Date:                t.Date,
		AccountID:           t.AccountID,
		ToAccountID:         t.ToAccountID,
		IsRecurring:         t.IsRecurring,
		RecurrenceFrequency: t.RecurrenceFrequency,
		RecurrenceEndDate:   t.RecurrenceEndDate,
		ParentRecurringID:   t.ParentRecurringID,
	}
}

// MarshalJSON writes the snapshot representation, omitting empty optional fields.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Append("amount", t.Amount)
	w.Append("category", t.Category)
	w.Append("note", t.Note)
	w.Optional("date", t.Date)
	w.Append("accountId", t.AccountID)
	w.Optional("toAccountId", t.ToAccountID)
	w.Append("createdAt", t.CreatedAt)
	w.Optional("isRecurring", t.IsRecurring)
	w.AppendIf(t.IsRecurring, "recurrenceFrequency", t.RecurrenceFrequency)
	w.Optional("recurrenceEndDate", t.RecurrenceEndDate)
	w.Optional("parentRecurringId", t.ParentRecurringID)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the snapshot representation. Missing fields keep their zero value.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	// Use a temporary type so that optional dates and frequencies can be absent or empty.
	var temp struct {
		ID                  string          `json:"id"`
		Type                TransactionType `json:"type"`
		Amount              decimal.Decimal `json:"amount"`
		Category            string          `json:"category"`
		Note                string          `json:"note"`
		Date                string          `json:"date"`
		AccountID           string          `json:"accountId"`
		ToAccountID         string          `json:"toAccountId"`
		CreatedAt           time.Time       `json:"createdAt"`
		IsRecurring         bool            `json:"isRecurring"`
		RecurrenceFrequency string          `json:"recurrenceFrequency"`
		RecurrenceEndDate   string          `json:"recurrenceEndDate"`
		ParentRecurringID   string          `json:"parentRecurringId"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	*t = Transaction{
		ID:                temp.ID,
		Type:              temp.Type,
		Amount:            temp.Amount,
		Category:          temp.Category,
		Note:              temp.Note,
		AccountID:         temp.AccountID,
		ToAccountID:       temp.ToAccountID,
		CreatedAt:         temp.CreatedAt,
		IsRecurring:       temp.IsRecurring,
		ParentRecurringID: temp.ParentRecurringID,
	}
	var err error
	if temp.Date != "" {
		if t.Date, err = parseDataDate(temp.Date); err != nil {
			return fmt.Errorf("transaction %q: %w", temp.ID, err)
		}
	}
	if temp.RecurrenceEndDate != "" {
		if t.RecurrenceEndDate, err = parseDataDate(temp.RecurrenceEndDate); err != nil {
			return fmt.Errorf("transaction %q: %w", temp.ID, err)
		}
	}
	if temp.RecurrenceFrequency != "" {
		if t.RecurrenceFrequency, err = date.ParsePeriod(temp.RecurrenceFrequency); err != nil {
			return fmt.Errorf("transaction %q: %w", temp.ID, err)
		}
	}
	return nil
}

// parseDataDate reads a date the strict way data files are read.
func parseDataDate(s string) (d date.Date, err error) {
	b, _ := json.Marshal(s)
	err = d.UnmarshalJSON(b)
	return d, err
}

// TransactionInput holds the fields supplied when creating or editing a transaction. The ledger
// allocates the id and creation time.
type TransactionInput struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Note        string
	Date        date.Date
	AccountID   string
	ToAccountID string

	IsRecurring         bool
	RecurrenceFrequency date.Period
	RecurrenceEndDate   date.Date
	ParentRecurringID   string
}

func (in TransactionInput) transaction(id string, createdAt time.Time) Transaction {
	return Transaction{
		ID:                  id,
		Type:                in.Type,
		Amount:              in.Amount,
		Category:            in.Category,
		Note:                in.Note,
		Date:                in.Date,
		AccountID:           in.AccountID,
		ToAccountID:         in.ToAccountID,
		CreatedAt:           createdAt,
		IsRecurring:         in.IsRecurring,
		RecurrenceFrequency: in.RecurrenceFrequency,
		RecurrenceEndDate:   in.RecurrenceEndDate,
		ParentRecurringID:   in.ParentRecurringID,
	}
}

// Validate checks user input before AddTransaction or UpdateTransaction. The ledger itself trusts
// its input.
func (in TransactionInput) Validate() error {
	const op = "transaction"
	if !in.Amount.IsPositive() {
		return invalid(op, "amount must be positive, got %s", in.Amount)
	}
	if in.AccountID == "" {
		return invalid(op, "account is required")
	}
	if in.Date.IsZero() {
		return invalid(op, "date is required")
	}
	switch in.Type {
	case Income:
		if !IsIncomeCategory(in.Category) {
			return invalid(op, "unknown income category %q", in.Category)
		}
	case Expense:
		if !IsExpenseCategory(in.Category) {
			return invalid(op, "unknown expense category %q", in.Category)
		}
	case Transfer:
		if in.ToAccountID == "" {
			return invalid(op, "transfer needs a destination account")
		}
		if in.ToAccountID == in.AccountID {
			return invalid(op, "transfer source and destination must differ")
		}
	default:
		return invalid(op, "unknown transaction type %q", in.Type)
	}
	if in.Type != Transfer && in.ToAccountID != "" {
		return invalid(op, "only transfers have a destination account")
	}
	if in.IsRecurring {
		if in.RecurrenceFrequency < date.Daily || in.RecurrenceFrequency > date.Yearly {
			return invalid(op, "unknown recurrence frequency %d", in.RecurrenceFrequency)
		}
		if !in.RecurrenceEndDate.IsZero() && in.RecurrenceEndDate.Before(in.Date) {
			return invalid(op, "recurrence ends on %s before it starts on %s", in.RecurrenceEndDate, in.Date)
		}
	} else if !in.RecurrenceEndDate.IsZero() {
		return invalid(op, "recurrence end date without recurrence")
	}
	return nil
}
