package subwise

import (
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Persister receives a copy of the ledger state after every command that changed it.
type Persister interface {
	Persist(State) error
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(State) error

func (f PersisterFunc) Persist(s State) error { return f(s) }

// Option configures a Ledger.
type Option func(*Ledger)

// WithPersister saves the state after each change. Failures are warnings, see LastPersistError.
func WithPersister(p Persister) Option { return func(l *Ledger) { l.persister = p } }

// WithLogger sets the logger used for command traces and persistence warnings.
func WithLogger(log zerolog.Logger) Option { return func(l *Ledger) { l.log = log } }

// WithClock sets the source of createdAt timestamps.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// WithIDs sets the identifier generator.
func WithIDs(newID func() string) Option { return func(l *Ledger) { l.newID = newID } }

// WithWarnings registers a handler called with a *PersistError whenever a save fails.
func WithWarnings(warn func(error)) Option { return func(l *Ledger) { l.warn = warn } }

// Ledger owns accounts, transactions, budgets and savings goals, and keeps account balances
// consistent with every transaction command.
//
// Commands are serialized; each one computes the next state on a working copy and commits it at
// once, so no reader ever observes a half-applied command. Commands referencing an unknown id are
// silent no-ops.
type Ledger struct {
	mu    sync.Mutex
	state State

	persister      Persister
	lastPersistErr error
	warn           func(error)
	log            zerolog.Logger
	now            func() time.Time
	newID          func() string
}

// NewLedger creates a ledger holding a copy of initial.
func NewLedger(initial State, opts ...Option) *Ledger {
	l := &Ledger{
		state: initial.Clone(),
		log:   zerolog.Nop(),
		now:   time.Now,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns a copy of the current state.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// LastPersistError returns the error of the latest save, or nil if it succeeded.
func (l *Ledger) LastPersistError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastPersistErr
}

// commit installs next and hands it to the persister. Must be called with l.mu held.
func (l *Ledger) commit(op string, next State) {
	l.state = next
	l.log.Debug().
		Str("op", op).
		Int("accounts", len(next.Accounts)).
		Int("transactions", len(next.Transactions)).
		Int("budgets", len(next.Budgets)).
		Int("goals", len(next.SavingsGoals)).
		Msg("ledger updated")

	if l.persister == nil {
		return
	}
	if err := l.persister.Persist(next.Clone()); err != nil {
		perr := &PersistError{Err: err}
		l.lastPersistErr = perr
		l.log.Warn().Err(err).Str("op", op).Msg("state not saved, keeping in-memory changes")
		if l.warn != nil {
			l.warn(perr)
		}
		return
	}
	l.lastPersistErr = nil
}

// working returns a copy of the current state that can be modified freely.
func (l *Ledger) working() State { return l.state.Clone() }

// AddAccount creates an account and returns it.
func (l *Ledger) AddAccount(in NewAccount) Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc := Account{
		ID:        l.newID(),
		Name:      in.Name,
		Type:      in.Type,
		Balance:   in.Balance,
		Currency:  in.Currency,
		Color:     in.Color,
		CreatedAt: l.now(),
	}
	next := l.working()
	next.Accounts = append(next.Accounts, acc)
	l.commit("add account", next)
	return acc
}

// UpdateAccount overwrites the fields set in u. Overwriting the balance bypasses the transaction
// history entirely.
func (l *Ledger) UpdateAccount(id string, u AccountUpdate) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.Accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return
	}
	next := l.working()
	next.Accounts[i] = u.apply(next.Accounts[i])
	l.commit("update account", next)
}

// DeleteAccount removes the account and every transaction referencing it as source or
// destination.
//
// Balance effects of the removed transactions are not reversed: the other side of a transfer
// keeps the money it received or sent.
func (l *Ledger) DeleteAccount(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.working()
	next.Accounts = slices.DeleteFunc(next.Accounts, func(a Account) bool { return a.ID == id })
	next.Transactions = slices.DeleteFunc(next.Transactions, func(t Transaction) bool { return t.References(id) })
	if len(next.Accounts) == len(l.state.Accounts) && len(next.Transactions) == len(l.state.Transactions) {
		return
	}
	l.commit("delete account", next)
}

// AddTransaction records a transaction, applies its balance effect and returns it.
func (l *Ledger) AddTransaction(in TransactionInput) Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := in.transaction(l.newID(), l.now())
	next := l.working()
	next.Accounts = ApplyEffect(next.Accounts, tx, Forward)
	next.Transactions = slices.Insert(next.Transactions, 0, tx)
	l.commit("add transaction", next)
	return tx
}

// UpdateTransaction replaces the editable fields of a transaction, keeping its id and creation
// time. The old balance effect is reversed and the new one applied as a single step.
func (l *Ledger) UpdateTransaction(id string, in TransactionInput) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return
	}
	old := l.state.Transactions[i]
	updated := in.transaction(old.ID, old.CreatedAt)

	next := l.working()
	next.Accounts = ApplyEffect(ApplyEffect(next.Accounts, old, Reverse), updated, Forward)
	next.Transactions[i] = updated
	l.commit("update transaction", next)
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (l *Ledger) DeleteTransaction(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return
	}
	next := l.working()
	next.Accounts = ApplyEffect(next.Accounts, next.Transactions[i], Reverse)
	next.Transactions = slices.Delete(next.Transactions, i, i+1)
	l.commit("delete transaction", next)
}

// AddBudget creates a budget. It fails if the category already has one.
func (l *Ledger) AddBudget(in NewBudget) (Budget, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := budgetByCategory(l.state, in.Category); exists {
		return Budget{}, invalid("add budget", "category %q already has a budget", in.Category)
	}
	b := Budget{
		ID:        l.newID(),
		Category:  in.Category,
		Limit:     in.Limit,
		Currency:  in.Currency,
		CreatedAt: l.now(),
	}
	next := l.working()
	next.Budgets = append(next.Budgets, b)
	l.commit("add budget", next)
	return b, nil
}

// UpdateBudget overwrites the fields set in u. Moving a budget to a category budgeted by another
// budget fails.
func (l *Ledger) UpdateBudget(id string, u BudgetUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.Budgets, func(b Budget) bool { return b.ID == id })
	if i < 0 {
		return nil
	}
	updated := u.apply(l.state.Budgets[i])
	if other, exists := budgetByCategory(l.state, updated.Category); exists && other.ID != id {
		return invalid("update budget", "category %q already has a budget", updated.Category)
	}
	next := l.working()
	next.Budgets[i] = updated
	l.commit("update budget", next)
	return nil
}

// DeleteBudget removes a budget.
func (l *Ledger) DeleteBudget(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.Budgets, func(b Budget) bool { return b.ID == id })
	if i < 0 {
		return
	}
	next := l.working()
	next.Budgets = slices.Delete(next.Budgets, i, i+1)
	l.commit("delete budget", next)
}

// AddSavingsGoal creates a savings goal and returns it.
func (l *Ledger) AddSavingsGoal(in NewSavingsGoal) SavingsGoal {
	l.mu.Lock()
	defer l.mu.Unlock()

	g := SavingsGoal{
		ID:            l.newID(),
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Currency:      in.Currency,
		Deadline:      in.Deadline,
		AccountID:     in.AccountID,
		Color:         in.Color,
		CreatedAt:     l.now(),
	}
	next := l.working()
	next.SavingsGoals = append(next.SavingsGoals, g)
	l.commit("add savings goal", next)
	return g
}

// ContributeSavingsGoal adds amount to the goal current amount. The amount may take the goal past
// its target. No account balance is touched, even when the goal is linked to an account.
func (l *Ledger) ContributeSavingsGoal(id string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("contribute", "amount must be positive, got %s", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.SavingsGoals, func(g SavingsGoal) bool { return g.ID == id })
	if i < 0 {
		return nil
	}
	next := l.working()
	next.SavingsGoals[i].CurrentAmount = next.SavingsGoals[i].CurrentAmount.Add(amount)
	l.commit("contribute", next)
	return nil
}

// UpdateSavingsGoal overwrites the fields set in u.
func (l *Ledger) UpdateSavingsGoal(id string, u SavingsGoalUpdate) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.SavingsGoals, func(g SavingsGoal) bool { return g.ID == id })
	if i < 0 {
		return
	}
	next := l.working()
	next.SavingsGoals[i] = u.apply(next.SavingsGoals[i])
	l.commit("update savings goal", next)
}

// DeleteSavingsGoal removes a savings goal.
func (l *Ledger) DeleteSavingsGoal(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.state.SavingsGoals, func(g SavingsGoal) bool { return g.ID == id })
	if i < 0 {
		return
	}
	next := l.working()
	next.SavingsGoals = slices.Delete(next.SavingsGoals, i, i+1)
	l.commit("delete savings goal", next)
}

// ImportData replaces the four collections wholesale. Nil budgets or goals mean empty. Records are
// taken as they are: balances are not recomputed and references are not checked.
func (l *Ledger) ImportData(accounts []Account, transactions []Transaction, budgets []Budget, goals []SavingsGoal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := State{
		Accounts:     slices.Clone(accounts),
		Transactions: slices.Clone(transactions),
		Budgets:      slices.Clone(budgets),
		SavingsGoals: slices.Clone(goals),
		PrivacyMode:  l.state.PrivacyMode,
	}
	l.commit("import", next)
}

// Import replaces the ledger content with a decoded snapshot, privacy mode included.
func (l *Ledger) Import(s Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := s.State()
	if s.PrivacyMode == nil {
		next.PrivacyMode = l.state.PrivacyMode
	}
	l.commit("import", next)
}

// ClearAll empties the four collections.
func (l *Ledger) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.commit("clear", State{PrivacyMode: l.state.PrivacyMode})
}

// TogglePrivacyMode flips the privacy flag and returns its new value.
func (l *Ledger) TogglePrivacyMode() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.working()
	next.PrivacyMode = !next.PrivacyMode
	l.commit("privacy", next)
	return next.PrivacyMode
}

// SetPrivacyMode sets the privacy flag.
func (l *Ledger) SetPrivacyMode(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.PrivacyMode == on {
		return
	}
	next := l.working()
	next.PrivacyMode = on
	l.commit("privacy", next)
}
