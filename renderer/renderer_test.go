package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/subwise"
	"github.com/etnz/subwise/date"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is the outline of a rendered markdown document.
type document struct {
	headings []string
	rows     int // table body rows, all tables together
	cells    []string
}

// parseDocument parses md as GitHub flavored markdown.
func parseDocument(t *testing.T, md string) document {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plain(n, source))
			return ast.WalkSkipChildren, nil
		case *east.TableRow:
			doc.rows++
		case *east.TableCell:
			if _, header := n.Parent().(*east.TableHeader); !header {
				doc.cells = append(doc.cells, plain(n, source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk markdown: %v", err)
	}
	return doc
}

// plain concatenates the text under n.
func plain(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.CodeSpan:
			for child := c.FirstChild(); child != nil; child = child.NextSibling() {
				if t, ok := child.(*ast.Text); ok {
					b.Write(t.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.ReplaceAll(b.String(), `\|`, "|")
}

func (d document) hasCell(v string) bool {
	for _, c := range d.cells {
		if c == v {
			return true
		}
	}
	return false
}

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func usdState() subwise.State {
	return subwise.State{
		Accounts: []subwise.Account{
			{ID: "a", Name: "Checking", Type: subwise.Bank, Balance: decimal.RequireFromString("1234.5"), Currency: "USD"},
			{ID: "b", Name: "Pocket | Cash", Type: subwise.Wallet, Balance: decimal.NewFromInt(20), Currency: "USD"},
		},
		Transactions: []subwise.Transaction{
			{ID: "t3", Type: subwise.Transfer, Amount: decimal.NewFromInt(50), Category: subwise.TransferCategory, Date: date.New(2025, 6, 12), AccountID: "a", ToAccountID: "b"},
			{ID: "t2", Type: subwise.Expense, Amount: decimal.NewFromInt(90), Category: "Food & Dining", Note: "groceries", Date: date.New(2025, 6, 10), AccountID: "a"},
			{ID: "t1", Type: subwise.Income, Amount: decimal.NewFromInt(1000), Category: "Salary", Date: date.New(2025, 6, 1), AccountID: "a", IsRecurring: true, RecurrenceFrequency: date.Monthly},
		},
		Budgets: []subwise.Budget{
			{ID: "food", Category: "Food & Dining", Limit: decimal.NewFromInt(100), Currency: "USD"},
			{ID: "fun", Category: "Entertainment", Limit: decimal.NewFromInt(200), Currency: "USD"},
		},
		SavingsGoals: []subwise.SavingsGoal{
			{ID: "g1", Name: "Trip", TargetAmount: decimal.NewFromInt(500), CurrentAmount: decimal.NewFromInt(125), Currency: "USD", Deadline: date.New(2025, 6, 25), AccountID: "b"},
			{ID: "g2", Name: "Laptop", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(100), Currency: "USD"},
		},
	}
}

func TestAccounts(t *testing.T) {
	doc := parseDocument(t, Accounts(usdState(), Options{}))

	if got, want := strings.Join(doc.headings, ","), "Accounts,Net Worth"; got != want {
		t.Errorf("headings = %q, want %q", got, want)
	}
	// two accounts and one currency
	if doc.rows != 3 {
		t.Errorf("rows = %d, want 3", doc.rows)
	}
	for _, want := range []string{"$1,234.50", "Pocket | Cash", "Bank Account", "$1,254.50", "a"} {
		if !doc.hasCell(want) {
			t.Errorf("missing cell %q in %q", want, doc.cells)
		}
	}
}

func TestAccounts_Privacy(t *testing.T) {
	md := Accounts(usdState(), Options{Privacy: true})
	if strings.Contains(md, "$") {
		t.Errorf("privacy mode leaks amounts:\n%s", md)
	}
	if got := strings.Count(md, Mask); got != 3 {
		t.Errorf("got %d masks, want 3:\n%s", got, md)
	}
}

func TestAccounts_Empty(t *testing.T) {
	md := Accounts(subwise.State{}, Options{})
	if !strings.Contains(md, "No account yet.") {
		t.Errorf("empty state not reported:\n%s", md)
	}
	if doc := parseDocument(t, md); doc.rows != 0 {
		t.Errorf("rows = %d, want 0", doc.rows)
	}
}

func TestTransactions(t *testing.T) {
	s := usdState()
	doc := parseDocument(t, Transactions(s, s.Transactions, Options{}))

	if doc.rows != 3 {
		t.Errorf("rows = %d, want 3", doc.rows)
	}
	for _, want := range []string{"-$90.00", "+$1,000.00", "$50.00", "Checking → Pocket | Cash", "every month", "2025-06-10"} {
		if !doc.hasCell(want) {
			t.Errorf("missing cell %q in %q", want, doc.cells)
		}
	}
	if !strings.Contains(Transactions(s, s.Transactions[:1], Options{}), "1 transaction\n") {
		t.Error("singular count not rendered")
	}
	if md := Transactions(s, nil, Options{}); !strings.Contains(md, "No transaction found.") {
		t.Errorf("empty list not reported:\n%s", md)
	}
}

func TestBudgets(t *testing.T) {
	md := Budgets(usdState(), date.New(2025, 6, 15), Options{})
	doc := parseDocument(t, md)

	if got, want := doc.headings[0], "Budgets for June 2025"; got != want {
		t.Errorf("heading = %q, want %q", got, want)
	}
	for _, want := range []string{"$90.00", "$10.00", "90%", "warning", "on track", "$0.00"} {
		if !doc.hasCell(want) {
			t.Errorf("missing cell %q in %q", want, doc.cells)
		}
	}
	if strings.Contains(md, "over budget") {
		t.Errorf("no budget is over its limit:\n%s", md)
	}

	// next month nothing is spent
	doc = parseDocument(t, Budgets(usdState(), date.New(2025, 7, 1), Options{}))
	if !doc.hasCell("0%") {
		t.Errorf("missing 0%% in %q", doc.cells)
	}
}

func TestGoals(t *testing.T) {
	md := Goals(usdState(), date.New(2025, 6, 15), Options{})
	doc := parseDocument(t, md)

	for _, want := range []string{"Trip", "25%", "2025-06-25 (10 days left)", "Pocket | Cash", "Laptop ✓", "100%"} {
		if !doc.hasCell(want) {
			t.Errorf("missing cell %q in %q", want, doc.cells)
		}
	}
	if !strings.Contains(md, "1 of 2 completed") {
		t.Errorf("completion not reported:\n%s", md)
	}

	doc = parseDocument(t, Goals(usdState(), date.New(2025, 7, 1), Options{}))
	if !doc.hasCell("2025-06-25 (overdue)") {
		t.Errorf("overdue deadline not reported in %q", doc.cells)
	}
}

func TestSummary(t *testing.T) {
	doc := parseDocument(t, Summary(usdState(), date.New(2025, 6, 15), Options{}))

	want := "Summary for June 2025,Cash Flow,Top Spending,Budgets to Watch,Net Worth"
	if got := strings.Join(doc.headings, ","); got != want {
		t.Errorf("headings = %q, want %q", got, want)
	}
	for _, want := range []string{"$1,000.00", "$90.00", "+$910.00", "91%", "90.00"} {
		if !doc.hasCell(want) {
			t.Errorf("missing cell %q in %q", want, doc.cells)
		}
	}
}

func TestSummary_NothingToWatch(t *testing.T) {
	s := usdState()
	s.Budgets = nil
	doc := parseDocument(t, Summary(s, date.New(2025, 6, 15), Options{Privacy: true}))

	want := "Summary for June 2025,Cash Flow,Top Spending,Net Worth"
	if got := strings.Join(doc.headings, ","); got != want {
		t.Errorf("headings = %q, want %q", got, want)
	}
	for _, c := range doc.cells {
		if strings.ContainsAny(c, "$") {
			t.Errorf("privacy mode leaks %q", c)
		}
	}
}

func TestDemoRenders(t *testing.T) {
	s := subwise.DemoState(now)
	today := date.Of(now)
	for name, md := range map[string]string{
		"accounts":     Accounts(s, Options{}),
		"transactions": Transactions(s, s.Transactions, Options{}),
		"budgets":      Budgets(s, today, Options{}),
		"goals":        Goals(s, today, Options{}),
		"networth":     NetWorth(s, Options{}),
		"summary":      Summary(s, today, Options{}),
	} {
		if strings.HasPrefix(md, "error") {
			t.Errorf("%s: %s", name, md)
		}
	}
}
