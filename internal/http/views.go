package http

import (
	"html/template"
	"time"

	"finance/internal/core"
)

type categoryRow struct {
	Category core.Category
	Amount   string
	Percent  float64
	Width    int
}

type summaryView struct {
	View            core.View
	Title           string
	Count           int
	Income          string
	Expense         string
	Balance         string
	BalanceNegative bool
	IncomeWidth     int
	ExpenseWidth    int
	Rows            []categoryRow
}

type transactionRow struct {
	ID          string
	Description string
	Date        string
	Category    core.Category
	Amount      string
	Income      bool
}

type pageData struct {
	Today           string
	Categories      []core.Category
	DefaultCategory core.Category
	Summary         summaryView
	Transactions    []transactionRow
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"viewIs": func(v core.View, name string) bool { return string(v) == name },
	}
}

func (s *Server) summaryView(sum core.Summary) summaryView {
	out := summaryView{
		View:            sum.View,
		Title:           sum.Categories.Title,
		Count:           sum.Count,
		Income:          sum.Totals.Income.Format(s.currency),
		Expense:         sum.Totals.Expense.Abs().Format(s.currency),
		Balance:         sum.Totals.Balance.Format(s.currency),
		BalanceNegative: sum.Totals.Balance.IsNegative(),
		IncomeWidth:     progressWidth(sum.IncomeShare),
		ExpenseWidth:    progressWidth(sum.ExpenseShare),
		Rows:            make([]categoryRow, 0, len(sum.ByCategory)),
	}
	for _, share := range sum.ByCategory {
		out.Rows = append(out.Rows, categoryRow{
			Category: share.Category,
			Amount:   share.Amount.Format(s.currency),
			Percent:  share.Percent,
			Width:    progressWidth(share.Percent),
		})
	}
	return out
}

func (s *Server) transactionRows(l core.Ledger) []transactionRow {
	rows := make([]transactionRow, 0, len(l))
	for _, tx := range l {
		amount := tx.Amount.Abs().Format(s.currency)
		if tx.Amount.IsNegative() {
			amount = "-" + amount
		} else {
			amount = "+" + amount
		}
		rows = append(rows, transactionRow{
			ID:          tx.ID,
			Description: tx.Description,
			Date:        tx.Date,
			Category:    tx.Category,
			Amount:      amount,
			Income:      tx.Amount.IsPositive(),
		})
	}
	return rows
}

func today() string {
	return time.Now().Format("2006-01-02")
}
