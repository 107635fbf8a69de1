package subwise

import "slices"

// ExpenseCategories is the fixed set of categories for expenses and budgets.
var ExpenseCategories = []string{
	"Food & Dining",
	"Shopping",
	"Transportation",
	"Housing & Rent",
	"Utilities",
	"Healthcare",
	"Entertainment",
	"Education",
	"Travel",
	"Personal Care",
	"Insurance",
	"Subscriptions",
	"Sadaqah",
	"Other",
}

// IncomeCategories is the fixed set of categories for incomes.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Business",
	"Investment Returns",
	"Rental Income",
	"Gift",
	"Refund",
	"Other",
}

// TransferCategory is the category given to transfers by default. Transfer categories are free.
const TransferCategory = "Transfer"

func IsExpenseCategory(c string) bool { return slices.Contains(ExpenseCategories, c) }
func IsIncomeCategory(c string) bool  { return slices.Contains(IncomeCategories, c) }
