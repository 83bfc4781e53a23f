package main

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

// incomeShare is the rough fraction of generated records that are income.
const incomeShare = 5

// generate builds n plausible transactions dated within the year before now.
// Roughly one record in incomeShare is income; the rest are expenses spread
// over the default categories.
func generate(f *gofakeit.Faker, n int, now time.Time) []core.Transaction {
	end := core.DateOf(now).Time
	start := end.AddDate(-1, 0, 0)
	categories := core.ExpenseCategories()

	out := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		t := core.Transaction{
			Date: core.DateOf(f.DateRange(start, end)),
		}
		if f.Number(1, incomeShare) == 1 {
			t.Kind = core.KindIncome
			t.Amount = decimal.NewFromFloat(f.Price(1000, 5000)).Round(2)
			t.Description = f.Company()
		} else {
			t.Kind = core.KindExpense
			t.Category = f.RandomString(categories)
			t.Amount = decimal.NewFromFloat(f.Price(1, 500)).Round(2)
			t.Description = f.ProductName()
		}
		if !t.Amount.IsPositive() {
			t.Amount = decimal.NewFromInt(1)
		}
		out = append(out, t.Normalize())
	}
	return out
}
