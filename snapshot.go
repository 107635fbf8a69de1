package subwise

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// SnapshotVersion is the format version written by Export.
const SnapshotVersion = "1.0"

// Snapshot is the serialized form of a ledger, used both for backups and for automatic
// persistence.
type Snapshot struct {
	ExportedAt   time.Time     `json:"exportedAt"`
	Version      string        `json:"version"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
	SavingsGoals []SavingsGoal `json:"savingsGoals"`
	PrivacyMode  *bool         `json:"privacyMode,omitempty"` // nil in documents that predate the flag
}

// Export captures s in a snapshot stamped with now.
func Export(s State, now time.Time) Snapshot {
	privacy := s.PrivacyMode
	return Snapshot{
		ExportedAt:   now,
		Version:      SnapshotVersion,
		Accounts:     nonNil(s.Accounts),
		Transactions: nonNil(s.Transactions),
		Budgets:      nonNil(s.Budgets),
		SavingsGoals: nonNil(s.SavingsGoals),
		PrivacyMode:  &privacy,
	}
}

// State returns the ledger content held by the snapshot.
func (s Snapshot) State() State {
	st := State{
		Accounts:     s.Accounts,
		Transactions: s.Transactions,
		Budgets:      s.Budgets,
		SavingsGoals: s.SavingsGoals,
	}
	if s.PrivacyMode != nil {
		st.PrivacyMode = *s.PrivacyMode
	}
	return st.Clone()
}

// nonNil makes sure empty collections are written as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// EncodeSnapshot writes s as indented JSON.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot document.
//
// The document must be a JSON object whose "accounts" and "transactions" members are arrays,
// otherwise an *ImportFormatError is returned. Missing "budgets" and "savingsGoals" are read as
// empty.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return Snapshot{}, &ImportFormatError{Reason: "not a JSON document", Err: err}
	}
	if _, ok := jobj.(map[string]any); !ok {
		return Snapshot{}, &ImportFormatError{Reason: "not a JSON object"}
	}
	for _, path := range []string{"$.accounts", "$.transactions"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			return Snapshot{}, &ImportFormatError{Reason: fmt.Sprintf("%s is missing", path)}
		}
		if _, ok := jval.([]any); !ok {
			return Snapshot{}, &ImportFormatError{Reason: fmt.Sprintf("%s is not an array", path)}
		}
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, &ImportFormatError{Reason: "unreadable record", Err: err}
	}
	return s, nil
}
