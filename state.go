package subwise

import "slices"

// State is the full content of a ledger: the four owned collections and the privacy flag.
//
// Cross references between records (AccountID, ToAccountID, ParentRecurringID) are plain
// identifiers: resolve them against the current State on every read.
type State struct {
	Accounts     []Account
	Transactions []Transaction // newest first
	Budgets      []Budget
	SavingsGoals []SavingsGoal
	PrivacyMode  bool
}

// Clone returns a copy of s that shares no slice with it.
func (s State) Clone() State {
	return State{
		Accounts:     slices.Clone(s.Accounts),
		Transactions: slices.Clone(s.Transactions),
		Budgets:      slices.Clone(s.Budgets),
		SavingsGoals: slices.Clone(s.SavingsGoals),
		PrivacyMode:  s.PrivacyMode,
	}
}

// IsEmpty reports whether all four collections are empty.
func (s State) IsEmpty() bool {
	return len(s.Accounts) == 0 && len(s.Transactions) == 0 && len(s.Budgets) == 0 && len(s.SavingsGoals) == 0
}
