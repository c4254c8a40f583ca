package core

import "time"

// ChartSeries is a labeled numeric series handed to a chart renderer.
type ChartSeries struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// CategoryShare is a category total with its share of the view total.
type CategoryShare struct {
	Category Category `json:"category"`
	Amount   Money    `json:"amount"`
	Percent  float64  `json:"percent"`
}

// Summary is an immutable snapshot of every value derived from a ledger for
// one view.
type Summary struct {
	Version      uint64          `json:"version"`
	View         View            `json:"view"`
	Count        int             `json:"count"`
	Totals       Totals          `json:"totals"`
	IncomeShare  float64         `json:"income_share"`
	ExpenseShare float64         `json:"expense_share"`
	ByCategory   []CategoryShare `json:"by_category"`
	Overview     ChartSeries     `json:"overview_chart"`
	Categories   ChartSeries     `json:"category_chart"`
}

// Summarize derives the summary of l for the view.
func Summarize(l Ledger, v View, version uint64) Summary {
	totals := ComputeTotals(l)
	incomeShare, expenseShare := totals.Shares()

	s := Summary{
		Version:      version,
		View:         v,
		Count:        len(l),
		Totals:       totals,
		IncomeShare:  incomeShare,
		ExpenseShare: expenseShare,
		ByCategory:   []CategoryShare{},
		Overview: ChartSeries{
			Title:  "Income vs Expenses",
			Labels: []string{"Income", "Expenses"},
			Values: []float64{totals.Income.Units(), totals.Expense.Abs().Units()},
		},
		Categories: ChartSeries{
			Title:  categoryChartTitle(v),
			Labels: []string{},
			Values: []float64{},
		},
	}

	viewTotal := totals.Expense
	if v == ViewIncome {
		viewTotal = totals.Income
	}
	for _, ca := range ByCategory(l, v) {
		s.ByCategory = append(s.ByCategory, CategoryShare{
			Category: ca.Category,
			Amount:   ca.Amount,
			Percent:  Percent(ca.Amount, viewTotal),
		})
		s.Categories.Labels = append(s.Categories.Labels, ca.Category.String())
		s.Categories.Values = append(s.Categories.Values, ca.Amount.Units())
	}
	return s
}

func categoryChartTitle(v View) string {
	if v == ViewIncome {
		return "Income by Category"
	}
	return "Expenses by Category"
}

// Clone returns a deep copy so callers can never alter a shared snapshot.
func (s Summary) Clone() Summary {
	out := s
	out.ByCategory = append([]CategoryShare{}, s.ByCategory...)
	out.Overview = s.Overview.clone()
	out.Categories = s.Categories.clone()
	return out
}

func (c ChartSeries) clone() ChartSeries {
	return ChartSeries{
		Title:  c.Title,
		Labels: append([]string{}, c.Labels...),
		Values: append([]float64{}, c.Values...),
	}
}

// Event types published after a ledger mutation.
const (
	EventTransactionAdded   = "transaction.added"
	EventTransactionRemoved = "transaction.removed"
)

// LedgerEvent carries the derived values after a mutation to the rendering
// collaborator. It holds copies only.
type LedgerEvent struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transaction_id"`
	Expense       Summary   `json:"expense"`
	Income        Summary   `json:"income"`
	At            time.Time `json:"at"`
}
