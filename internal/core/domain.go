package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// IncomeCategory is the fixed category label carried by every income record.
const IncomeCategory = "Income"

const dateLayout = "2006-01-02"

// MaxDescriptionLen bounds descriptions accepted from the form, in runes.
const MaxDescriptionLen = 200

type (
	// Kind classifies a transaction as income or expense.
	Kind string

	// Date is a calendar date without time component, kept at UTC midnight.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          int64
		Date        Date
		Kind        Kind
		Category    string
		Amount      decimal.Decimal
		Description string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")

	ErrDescriptionTooLong = errors.New("description too long")
)

var expenseCategories = []string{"Food", "Travel", "Bills", "Savings", "Other"}

// ExpenseCategories returns the default closed set of expense categories.
func ExpenseCategories() []string {
	return append([]string(nil), expenseCategories...)
}

// Kinds returns every valid kind in display order.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense}
}

// ParseKind matches s case-insensitively against the known kinds.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO-8601 YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey renders the (year, month) bucket as YYYY-MM.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Normalize trims free-form text and pins the category of income records.
func (t Transaction) Normalize() Transaction {
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
	if t.Kind == KindIncome {
		t.Category = IncomeCategory
	}
	return t
}

// Validate is the submission guard applied before a transaction reaches the store.
// Stores accept whatever they are given.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}
