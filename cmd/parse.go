package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
)

// visited returns the names of the flags explicitly set on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

func parseAmount(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// parseOptionalDate parses s, the empty string being the zero date.
func parseOptionalDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// accountID resolves ref against the accounts of s, either by id or by case-insensitive name.
func accountID(s subwise.State, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if _, ok := subwise.AccountByID(s, ref); ok {
		return ref, nil
	}
	var found []string
	for _, a := range s.Accounts {
		if strings.EqualFold(a.Name, ref) {
			found = append(found, a.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no account %q", ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("account name %q is ambiguous, use its id", ref)
	}
}

// category matches c against the known categories of the transaction type, ignoring case.
func category(typ subwise.TransactionType, c string) string {
	var known []string
	switch typ {
	case subwise.Income:
		known = subwise.IncomeCategories
	case subwise.Expense:
		known = subwise.ExpenseCategories
	case subwise.Transfer:
		return subwise.TransferCategory
	}
	for _, k := range known {
		if strings.EqualFold(k, c) {
			return k
		}
	}
	return c
}
