package http

import (
	"time"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
	"expenses/internal/export"
	"expenses/internal/services"
)

type (
	dashboardView struct {
		Currency   string
		Today      string
		Kinds      []core.Kind
		Categories []string
		ExportName string

		Notice    string
		FormError string

		Empty           bool
		Count           int
		Income          string
		Expense         string
		Balance         string
		BalanceDelta    string
		BalanceNegative bool

		Monthly      []barView
		ByCategory   []barView
		Transactions []transactionView
	}

	barView struct {
		Label  string
		Amount string
		Width  int
	}

	transactionView struct {
		ID          int64
		Date        string
		Kind        string
		Income      bool
		Category    string
		Amount      string
		Description string
	}

	summaryResponse struct {
		Count      int            `json:"count"`
		Totals     totalsJSON     `json:"totals"`
		Monthly    []monthJSON    `json:"monthly_expenses"`
		Categories []categoryJSON `json:"category_expenses"`
	}

	totalsJSON struct {
		Income  string `json:"income"`
		Expense string `json:"expense"`
		Balance string `json:"balance"`
	}

	monthJSON struct {
		Month string `json:"month"`
		Total string `json:"total"`
	}

	categoryJSON struct {
		Category string `json:"category"`
		Total    string `json:"total"`
	}
)

var notices = map[string]string{
	"added":   "Transaction added!",
	"deleted": "Transaction deleted.",
}

func noticeFor(key string) string {
	return notices[key]
}

func buildDashboard(snap services.Snapshot, currency string, now time.Time) dashboardView {
	v := dashboardView{
		Currency:   currency,
		Today:      core.DateOf(now).String(),
		Kinds:      core.Kinds(),
		Categories: core.ExpenseCategories(),
		ExportName: export.Filename(now),
		Empty:      len(snap.Transactions) == 0,
		Count:      len(snap.Transactions),

		Income:          formatAmount(currency, snap.Totals.Income),
		Expense:         formatAmount(currency, snap.Totals.Expense),
		Balance:         formatAmount(currency, snap.Totals.Balance),
		BalanceDelta:    formatNumber(snap.Totals.Balance),
		BalanceNegative: snap.Totals.Balance.IsNegative(),
	}

	var maxMonth decimal.Decimal
	for _, m := range snap.Monthly {
		maxMonth = decimal.Max(maxMonth, m.Total)
	}
	for _, m := range snap.Monthly {
		v.Monthly = append(v.Monthly, barView{
			Label:  m.Month,
			Amount: formatAmount(currency, m.Total),
			Width:  barWidth(m.Total, maxMonth),
		})
	}

	var maxCategory decimal.Decimal
	for _, c := range snap.Categories {
		maxCategory = decimal.Max(maxCategory, c.Total)
	}
	for _, c := range snap.Categories {
		v.ByCategory = append(v.ByCategory, barView{
			Label:  c.Name,
			Amount: formatAmount(currency, c.Total),
			Width:  barWidth(c.Total, maxCategory),
		})
	}

	for _, t := range snap.Transactions {
		v.Transactions = append(v.Transactions, transactionView{
			ID:          t.ID,
			Date:        t.Date.String(),
			Kind:        t.Kind.String(),
			Income:      t.Kind == core.KindIncome,
			Category:    t.Category,
			Amount:      formatAmount(currency, t.Amount),
			Description: t.Description,
		})
	}
	return v
}

func buildSummary(snap services.Snapshot) summaryResponse {
	out := summaryResponse{
		Count: len(snap.Transactions),
		Totals: totalsJSON{
			Income:  snap.Totals.Income.StringFixed(2),
			Expense: snap.Totals.Expense.StringFixed(2),
			Balance: snap.Totals.Balance.StringFixed(2),
		},
		Monthly:    []monthJSON{},
		Categories: []categoryJSON{},
	}
	for _, m := range snap.Monthly {
		out.Monthly = append(out.Monthly, monthJSON{Month: m.Month, Total: m.Total.StringFixed(2)})
	}
	for _, c := range snap.Categories {
		out.Categories = append(out.Categories, categoryJSON{Category: c.Name, Total: c.Total.StringFixed(2)})
	}
	return out
}
