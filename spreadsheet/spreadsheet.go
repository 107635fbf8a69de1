// Package spreadsheet exports ledger data to CSV and Excel workbooks.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etnz/subwise"
	"github.com/xuri/excelize/v2"
)

// TransactionHeader is the header row of transaction exports.
var TransactionHeader = []string{"Date", "Type", "Category", "Amount", "Currency", "Account", "To Account", "Note", "Recurring"}

// transactionRow flattens tx, resolving account names and currency against s.
func transactionRow(s subwise.State, tx subwise.Transaction) []string {
	var from, to, cur string
	if acc, ok := subwise.AccountByID(s, tx.AccountID); ok {
		from, cur = acc.Name, acc.Currency
	}
	if acc, ok := subwise.AccountByID(s, tx.ToAccountID); ok {
		to = acc.Name
	}
	recurring := ""
	if tx.IsRecurring {
		recurring = tx.RecurrenceFrequency.String()
	}
	return []string{
		tx.Date.String(),
		string(tx.Type),
		tx.Category,
		tx.Amount.String(),
		cur,
		from,
		to,
		tx.Note,
		recurring,
	}
}

// WriteCSV writes txs, one row per transaction after a header row.
func WriteCSV(w io.Writer, s subwise.State, txs []subwise.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TransactionHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := cw.Write(transactionRow(s, tx)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const (
	sheetAccounts     = "Accounts"
	sheetTransactions = "Transactions"
	sheetBudgets      = "Budgets"
	sheetGoals        = "Savings Goals"
)

// WriteXLSX writes a workbook with one sheet per collection of s.
func WriteXLSX(w io.Writer, s subwise.State) error {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the accounts sheet
	if err := f.SetSheetName(f.GetSheetName(0), sheetAccounts); err != nil {
		return err
	}
	for _, name := range []string{sheetTransactions, sheetBudgets, sheetGoals} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	accounts := [][]any{{"Name", "Type", "Balance", "Currency"}}
	for _, a := range s.Accounts {
		accounts = append(accounts, []any{a.Name, a.Type.Label(), a.Balance.InexactFloat64(), a.Currency})
	}
	transactions := [][]any{toAny(TransactionHeader)}
	for _, tx := range s.Transactions {
		row := toAny(transactionRow(s, tx))
		row[3] = tx.Amount.InexactFloat64()
		transactions = append(transactions, row)
	}
	budgets := [][]any{{"Category", "Limit", "Currency"}}
	for _, b := range s.Budgets {
		budgets = append(budgets, []any{b.Category, b.Limit.InexactFloat64(), b.Currency})
	}
	goals := [][]any{{"Name", "Target", "Saved", "Currency", "Deadline"}}
	for _, g := range s.SavingsGoals {
		deadline := ""
		if !g.Deadline.IsZero() {
			deadline = g.Deadline.String()
		}
		goals = append(goals, []any{g.Name, g.TargetAmount.InexactFloat64(), g.CurrentAmount.InexactFloat64(), g.Currency, deadline})
	}

	for sheet, rows := range map[string][][]any{
		sheetAccounts:     accounts,
		sheetTransactions: transactions,
		sheetBudgets:      budgets,
		sheetGoals:        goals,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write sheet %q: %w", sheet, err)
		}
	}
	return f.SetColWidth(sheet, "A", "I", 18)
}

func toAny(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
