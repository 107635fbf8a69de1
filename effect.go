package subwise

import "github.com/shopspring/decimal"

// Direction selects whether a balance effect is applied or undone.
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// Delta returns the signed change t applies to the balance of the account id.
//
// Income credits AccountID, expense debits it, and a transfer debits AccountID and credits
// ToAccountID. Accounts t does not reference get zero.
func (t Transaction) Delta(id string) decimal.Decimal {
	delta := decimal.Zero
	switch t.Type {
	case Income:
		if t.AccountID == id {
			delta = delta.Add(t.Amount)
		}
	case Expense:
		if t.AccountID == id {
			delta = delta.Sub(t.Amount)
		}
	case Transfer:
		if t.AccountID == id {
			delta = delta.Sub(t.Amount)
		}
		if t.ToAccountID == id {
			delta = delta.Add(t.Amount)
		}
	}
	return delta
}

// ApplyEffect returns a copy of accounts where the balance effect of tx has been applied in the
// given direction. The input slice is never modified, so a caller can compose
// ApplyEffect(ApplyEffect(accounts, old, Reverse), new, Forward) and commit the result at once.
func ApplyEffect(accounts []Account, tx Transaction, dir Direction) []Account {
	out := make([]Account, len(accounts))
	sign := decimal.NewFromInt(int64(dir))
	for i, acc := range accounts {
		if delta := tx.Delta(acc.ID); !delta.IsZero() {
			acc.Balance = acc.Balance.Add(delta.Mul(sign))
		}
		out[i] = acc
	}
	return out
}
