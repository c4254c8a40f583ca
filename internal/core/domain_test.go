package core

import (
	"errors"
	"testing"
)

func TestFieldsValidate(t *testing.T) {
	full := Fields{Description: "Rent", Amount: "400", Date: "2024-01-01", Category: "Housing"}
	if err := full.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		fields Fields
		want   string
	}{
		{"description first", Fields{Description: "", Amount: "10", Date: "2024-01-01", Category: "Food"}, FieldDescription},
		{"all empty reports description", Fields{}, FieldDescription},
		{"amount", Fields{Description: "x", Date: "2024-01-01", Category: "Food"}, FieldAmount},
		{"amount before date", Fields{Description: "x", Category: "Food"}, FieldAmount},
		{"date", Fields{Description: "x", Amount: "1", Category: "Food"}, FieldDate},
		{"category", Fields{Description: "x", Amount: "1", Date: "2024-01-01"}, FieldCategory},
		{"whitespace is missing", Fields{Description: "   ", Amount: "1", Date: "d", Category: "Food"}, FieldDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fields.Validate()
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tc.want {
				t.Fatalf("field = %q, want %q", missing.Field, tc.want)
			}
			if err.Error() != tc.want+" is required" {
				t.Fatalf("message = %q", err.Error())
			}
		})
	}
}

func TestValidateDoesNotJudgeZero(t *testing.T) {
	f := Fields{Description: "x", Amount: "0", Date: "2024-01-01", Category: "Food"}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate is presence-only, got %v", err)
	}
	if _, err := NewTransaction(Expense, f); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", Income, true},
		{"INCOME", Income, true},
		{"receita", Income, true},
		{"expense", Expense, true},
		{" despesa ", Expense, true},
		{"", "", false},
		{"transfer", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Food", Food, true},
		{"housing", Housing, true},
		{"", Other, true},
		{"Moradia", Housing, true},
		{"Alimentação", Food, true},
		{"Crypto", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrUnknownCategory) {
			t.Fatalf("%q expected ErrUnknownCategory, got %v", tc.in, err)
		}
	}
}

func TestNewTransaction(t *testing.T) {
	f := Fields{Description: " Rent ", Amount: "400", Date: "2024-01-01", Category: "Housing"}

	exp, err := NewTransaction(Expense, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Amount.Cents != -40000 || exp.Kind() != Expense {
		t.Fatalf("expense amount = %d kind = %s", exp.Amount.Cents, exp.Kind())
	}
	if exp.Description != "Rent" || exp.Category != Housing || exp.Date != "2024-01-01" {
		t.Fatalf("unexpected transaction: %+v", exp)
	}
	if exp.ID == "" {
		t.Fatal("expected an identifier")
	}

	// A negative entry for income still records a positive amount.
	f.Amount = "-400"
	inc, err := NewTransaction(Income, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inc.Amount.Cents != 40000 || inc.Kind() != Income {
		t.Fatalf("income amount = %d", inc.Amount.Cents)
	}

	if _, err := NewTransaction("transfer", f); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	f.Category = "Crypto"
	if _, err := NewTransaction(Expense, f); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestNewTransactionIDsAreUniqueAndOrdered(t *testing.T) {
	f := Fields{Description: "x", Amount: "1", Date: "2024-01-01", Category: "Other"}
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 1000; i++ {
		tx, err := NewTransaction(Income, f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate id %s after %d additions", tx.ID, i)
		}
		if tx.ID <= prev {
			t.Fatalf("id %s not after %s", tx.ID, prev)
		}
		seen[tx.ID] = true
		prev = tx.ID
	}
}
