package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals is the income/expense summary of a transaction set.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// MonthAmount is the expense total of one YYYY-MM bucket.
type MonthAmount struct {
	Month string
	Total decimal.Decimal
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name  string
	Total decimal.Decimal
}

// ComputeTotals sums income and expense amounts in list order.
func ComputeTotals(txs []Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Kind {
		case KindIncome:
			income = income.Add(t.Amount)
		case KindExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// MonthlyExpenses groups expenses by YYYY-MM, ascending by month.
func MonthlyExpenses(txs []Transaction) []MonthAmount {
	keys, sums := groupExpenses(txs, func(t Transaction) string { return t.Date.MonthKey() })
	out := make([]MonthAmount, len(keys))
	for i, k := range keys {
		out[i] = MonthAmount{Month: k, Total: sums[k]}
	}
	return out
}

// CategoryExpenses groups expenses by category, ascending by category name.
func CategoryExpenses(txs []Transaction) []CategoryAmount {
	keys, sums := groupExpenses(txs, func(t Transaction) string { return t.Category })
	out := make([]CategoryAmount, len(keys))
	for i, k := range keys {
		out[i] = CategoryAmount{Name: k, Total: sums[k]}
	}
	return out
}

func groupExpenses(txs []Transaction, key func(Transaction) string) ([]string, map[string]decimal.Decimal) {
	sums := map[string]decimal.Decimal{}
	var keys []string
	for _, t := range txs {
		if t.Kind != KindExpense {
			continue
		}
		k := key(t)
		cur, seen := sums[k]
		if !seen {
			keys = append(keys, k)
			cur = decimal.Zero
		}
		sums[k] = cur.Add(t.Amount)
	}
	sort.Strings(keys)
	return keys, sums
}
