package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Leisure   Category = "Leisure"
	Health    Category = "Health"
	Education Category = "Education"
	Housing   Category = "Housing"
	Salary    Category = "Salary"
	Other     Category = "Other"
)

// Field names in the order they are checked by Fields.Validate.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldCategory    = "category"
)

type (
	// Kind selects the direction of a new transaction.
	Kind string

	// Category is one of the fixed category labels.
	Category string

	// Transaction is a single signed monetary record. It is never mutated
	// after creation.
	Transaction struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		Amount      Money    `json:"amount"` // positive = income, negative = expense
		Date        string   `json:"date"`
		Category    Category `json:"category"`
	}

	// Fields are the raw user inputs for a new transaction.
	Fields struct {
		Description string
		Amount      string
		Date        string
		Category    string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyID         = errors.New("empty transaction id")
)

// Categories lists every accepted category in display order.
var Categories = []Category{Food, Transport, Leisure, Health, Education, Housing, Salary, Other}

// Labels used by the first version of the tracker, still accepted on input.
var categoryAliases = map[string]Category{
	"alimentação": Food,
	"transporte":  Transport,
	"lazer":       Leisure,
	"saúde":       Health,
	"educação":    Education,
	"moradia":     Housing,
	"salário":     Salary,
	"outros":      Other,
}

// MissingFieldError reports the first required input left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

// Validate returns a *MissingFieldError for the first empty field, checked in
// the order description, amount, date, category. It only checks presence.
func (f Fields) Validate() error {
	checks := []struct {
		name  string
		value string
	}{
		{FieldDescription, f.Description},
		{FieldAmount, f.Amount},
		{FieldDate, f.Date},
		{FieldCategory, f.Category},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return &MissingFieldError{Field: c.name}
		}
	}
	return nil
}

// ParseKind accepts "income" and "expense" as well as the legacy
// "receita" and "despesa".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "receita":
		return Income, nil
	case "expense", "despesa":
		return Expense, nil
	default:
		return "", ErrInvalidKind
	}
}

// Apply gives m the sign of the kind.
func (k Kind) Apply(m Money) Money {
	if k == Income {
		return m.Abs()
	}
	return m.Abs().Neg()
}

func (k Kind) String() string {
	return string(k)
}

// ParseCategory matches s case-insensitively against the known categories.
// An empty string yields Other.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Other, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	if c, ok := categoryAliases[strings.ToLower(s)]; ok {
		return c, nil
	}
	return "", ErrUnknownCategory
}

func (c Category) String() string {
	return string(c)
}

// NewTransaction validates the fields and builds a transaction of the given
// kind with a fresh time-ordered identifier.
func NewTransaction(kind Kind, f Fields) (Transaction, error) {
	if kind != Income && kind != Expense {
		return Transaction{}, ErrInvalidKind
	}
	if err := f.Validate(); err != nil {
		return Transaction{}, err
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Transaction{}, err
	}
	category, err := ParseCategory(f.Category)
	if err != nil {
		return Transaction{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:          id.String(),
		Description: strings.TrimSpace(f.Description),
		Amount:      kind.Apply(amount),
		Date:        strings.TrimSpace(f.Date),
		Category:    category,
	}, nil
}

// Kind reports the direction encoded in the amount sign.
func (t Transaction) Kind() Kind {
	if t.Amount.IsNegative() {
		return Expense
	}
	return Income
}
