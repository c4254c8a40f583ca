package core

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func randomLedger(r *rand.Rand, n int) Ledger {
	var l Ledger
	for i := 0; i < n; i++ {
		cents := int64(r.Intn(100000) + 1)
		if r.Intn(2) == 0 {
			cents = -cents
		}
		c := Categories[r.Intn(len(Categories))]
		l = l.Add(tx(string(rune('a'+i%26))+string(rune('0'+i/26)), cents, c))
	}
	return l
}

func TestTotalsProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		l := randomLedger(r, r.Intn(40))
		totals := ComputeTotals(l)
		if totals.Balance != totals.Income.Add(totals.Expense) {
			t.Fatalf("balance %d != %d + %d", totals.Balance.Cents, totals.Income.Cents, totals.Expense.Cents)
		}
		if totals.Income.Cents < 0 || totals.Expense.Cents > 0 {
			t.Fatalf("sign invariant broken: %+v", totals)
		}

		for _, v := range []View{ViewIncome, ViewExpense} {
			var sum Money
			for _, ca := range ByCategory(l, v) {
				if !ca.Amount.IsPositive() {
					t.Fatalf("non-positive magnitude for %s: %d", ca.Category, ca.Amount.Cents)
				}
				sum = sum.Add(ca.Amount)
			}
			want := totals.Expense.Abs()
			if v == ViewIncome {
				want = totals.Income
			}
			if sum != want {
				t.Fatalf("view %s: categories sum to %d, want %d", v, sum.Cents, want.Cents)
			}
		}
	}
}

func TestAggregationIsRepeatable(t *testing.T) {
	l := randomLedger(rand.New(rand.NewSource(7)), 25)
	if !reflect.DeepEqual(ComputeTotals(l), ComputeTotals(l)) {
		t.Fatal("totals differ between runs")
	}
	if !reflect.DeepEqual(ByCategory(l, ViewExpense), ByCategory(l, ViewExpense)) {
		t.Fatal("breakdown differs between runs")
	}
}

func TestEmptyLedger(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if got := ByCategory(nil, ViewExpense); got == nil || len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %#v", got)
	}
	inc, exp := totals.Shares()
	if inc != 0 || exp != 0 {
		t.Fatalf("expected 0%% shares, got %v %v", inc, exp)
	}
}

func TestByCategoryFirstOccurrenceOrder(t *testing.T) {
	l := Ledger{
		tx("5", -100, Food),
		tx("4", 900, Salary),
		tx("3", -200, Housing),
		tx("2", -300, Food),
		tx("1", -50, Transport),
	}
	want := []CategoryAmount{
		{Category: Food, Amount: Money{Cents: 400}},
		{Category: Housing, Amount: Money{Cents: 200}},
		{Category: Transport, Amount: Money{Cents: 50}},
	}
	if got := ByCategory(l, ViewExpense); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got := ByCategory(l, ViewIncome); !reflect.DeepEqual(got, []CategoryAmount{{Category: Salary, Amount: Money{Cents: 900}}}) {
		t.Fatalf("income view: %+v", got)
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        float64
	}{
		{25, 100, 25},
		{-25, 100, 25},
		{50, -200, 25},
		{10, 0, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Percent(Money{Cents: tc.part}, Money{Cents: tc.whole}); got != tc.want {
			t.Fatalf("Percent(%d, %d) = %v, want %v", tc.part, tc.whole, got, tc.want)
		}
	}

	inc, exp := Totals{Income: Money{Cents: 300}, Expense: Money{Cents: -100}}.Shares()
	if inc != 75 || exp != 25 {
		t.Fatalf("shares = %v/%v", inc, exp)
	}
}

func TestParseView(t *testing.T) {
	cases := map[string]View{
		"income":   ViewIncome,
		"receita":  ViewIncome,
		"expense":  ViewExpense,
		"despesas": ViewExpense,
		"":         ViewExpense,
		"bogus":    ViewExpense,
	}
	for in, want := range cases {
		if got := ParseView(in); got != want {
			t.Fatalf("ParseView(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSalaryRentScenario(t *testing.T) {
	var l Ledger

	salary, err := NewTransaction(Income, Fields{Description: "Salary", Amount: "1000", Date: "2024-01-01", Category: "Other"})
	if err != nil {
		t.Fatalf("add salary: %v", err)
	}
	l = l.Add(salary)
	totals := ComputeTotals(l)
	if totals.Income.Cents != 100000 || totals.Expense.Cents != 0 || totals.Balance.Cents != 100000 {
		t.Fatalf("after salary: %+v", totals)
	}

	rent, err := NewTransaction(Expense, Fields{Description: "Rent", Amount: "400", Date: "2024-01-02", Category: "Housing"})
	if err != nil {
		t.Fatalf("add rent: %v", err)
	}
	l = l.Add(rent)
	totals = ComputeTotals(l)
	if totals.Income.Cents != 100000 || totals.Expense.Cents != -40000 || totals.Balance.Cents != 60000 {
		t.Fatalf("after rent: %+v", totals)
	}
	want := []CategoryAmount{{Category: Housing, Amount: Money{Cents: 40000}}}
	if got := ByCategory(l, ViewExpense); !reflect.DeepEqual(got, want) {
		t.Fatalf("expense breakdown = %+v", got)
	}
}

func TestSummarize(t *testing.T) {
	l := Ledger{
		tx("3", -30000, Housing),
		tx("2", -10000, Food),
		tx("1", 100000, Salary),
	}
	s := Summarize(l, ViewExpense, 3)
	if s.Version != 3 || s.Count != 3 || s.View != ViewExpense {
		t.Fatalf("header wrong: %+v", s)
	}
	if s.Totals.Balance.Cents != 60000 {
		t.Fatalf("balance = %d", s.Totals.Balance.Cents)
	}
	if len(s.ByCategory) != 2 || s.ByCategory[0].Category != Housing || s.ByCategory[0].Percent != 75 {
		t.Fatalf("breakdown = %+v", s.ByCategory)
	}
	if !reflect.DeepEqual(s.Categories.Labels, []string{"Housing", "Food"}) {
		t.Fatalf("labels = %v", s.Categories.Labels)
	}
	if !reflect.DeepEqual(s.Overview.Values, []float64{1000, 400}) {
		t.Fatalf("overview = %v", s.Overview.Values)
	}

	c := s.Clone()
	c.ByCategory[0].Percent = 0
	c.Categories.Labels[0] = "x"
	if s.ByCategory[0].Percent != 75 || s.Categories.Labels[0] != "Housing" {
		t.Fatal("clone shares storage with the original")
	}

	empty := Summarize(nil, ViewIncome, 0)
	if empty.Count != 0 || len(empty.ByCategory) != 0 || empty.Categories.Title != "Income by Category" {
		t.Fatalf("empty summary = %+v", empty)
	}
}

func TestTotalsAtAmountLimit(t *testing.T) {
	limit := MaxAmountCents
	var l Ledger
	for i := 0; i < 1000; i++ {
		cents := limit
		if i%3 == 0 {
			cents = -limit
		}
		l = l.Add(tx(fmt.Sprintf("t%d", i), cents, Salary))
	}

	got := ComputeTotals(l)
	if got.Income.Cents != 666*limit || got.Expense.Cents != -334*limit {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Balance.Cents != got.Income.Cents+got.Expense.Cents {
		t.Fatalf("balance %d != income + expense", got.Balance.Cents)
	}

	byCat := ByCategory(l, ViewIncome)
	if len(byCat) != 1 || byCat[0].Amount.Cents != 666*limit {
		t.Fatalf("unexpected breakdown: %+v", byCat)
	}
}

func TestLargestAcceptedAmountsStaySigned(t *testing.T) {
	f := Fields{Description: "Bonus", Amount: "100000000000", Date: "2024-01-01", Category: "Salary"}
	var l Ledger
	for i := 0; i < 2; i++ {
		tr, err := NewTransaction(Income, f)
		if err != nil {
			t.Fatalf("NewTransaction: %v", err)
		}
		l = l.Add(tr)
	}
	if got := ComputeTotals(l); got.Income.Cents != 2*MaxAmountCents || got.Balance.Cents != got.Income.Cents {
		t.Fatalf("unexpected totals: %+v", got)
	}

	f.Amount = "92233720368547758.07"
	if _, err := NewTransaction(Income, f); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
