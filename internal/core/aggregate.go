package core

import "strings"

const (
	ViewIncome  View = "income"
	ViewExpense View = "expense"
)

// View selects which transactions feed the category breakdown.
type View string

// ParseView accepts "income" or "expense" (and the legacy "receita" and
// "despesas"). Anything else selects the expense view.
func ParseView(s string) View {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "receita", "receitas":
		return ViewIncome
	default:
		return ViewExpense
	}
}

// Matches reports whether an amount belongs to the view.
func (v View) Matches(m Money) bool {
	if v == ViewIncome {
		return m.IsPositive()
	}
	return m.IsNegative()
}

func (v View) String() string {
	return string(v)
}

// Totals holds the income/expense split of a ledger. Income is >= 0,
// Expense is <= 0 and Balance is their algebraic sum.
type Totals struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// ComputeTotals sums positive and negative amounts separately.
func ComputeTotals(l Ledger) Totals {
	var t Totals
	for _, tx := range l {
		switch {
		case tx.Amount.IsPositive():
			t.Income = t.Income.Add(tx.Amount)
		case tx.Amount.IsNegative():
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Add(t.Expense)
	return t
}

// ByCategory sums the magnitude of the transactions matching v, grouped by
// category in order of first occurrence. Categories without transactions are
// absent.
func ByCategory(l Ledger, v View) []CategoryAmount {
	out := []CategoryAmount{}
	index := map[Category]int{}
	for _, tx := range l {
		if !v.Matches(tx.Amount) {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryAmount{Category: tx.Category})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount.Abs())
	}
	return out
}

// Percent returns |part| as a percentage of |whole|, or 0 when whole is zero.
func Percent(part, whole Money) float64 {
	w := whole.Abs().Cents
	if w == 0 {
		return 0
	}
	return float64(part.Abs().Cents) * 100 / float64(w)
}

// Shares returns the income and expense percentages of income + |expense|.
// Both are 0 for an empty ledger.
func (t Totals) Shares() (income, expense float64) {
	whole := t.Income.Add(t.Expense.Abs())
	return Percent(t.Income, whole), Percent(t.Expense, whole)
}
