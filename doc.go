// Package subwise provides the types and the state engine of a local-first personal finance
// ledger: accounts holding money, transactions moving it, monthly budgets per expense category
// and savings goals.
//
// The core functionalities include:
//   - Ledger Engine: a Ledger owns the four collections and keeps account balances consistent
//     whenever a transaction is created, edited or deleted. Balances are maintained
//     incrementally and never recomputed from the history.
//   - Queries and Reports: pure functions over a State, such as net worth, monthly spending,
//     budget status and goal progress.
//   - Snapshots: the JSON document used both for backups and for automatic persistence.
//
// Recurring transactions are generated by package recurring, and persisted to key-value
// backends by package store. This package serves as the foundational logic for the `sw`
// command-line tool.
package subwise
