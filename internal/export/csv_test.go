package export

import (
	"strings"
	"testing"
	"time"

	"expenses/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: 2, Date: core.NewDate(2024, 1, 20), Kind: core.KindIncome, Category: core.IncomeCategory,
			Amount: decimal.RequireFromString("50000"), Description: "Salary"},
		{ID: 1, Date: core.NewDate(2024, 1, 15), Kind: core.KindExpense, Category: "Food",
			Amount: decimal.RequireFromString("250.5"), Description: "Lunch, with \"friends\"\nsecond line"},
		{ID: 7, Date: core.NewDate(2023, 12, 1), Kind: core.KindExpense, Category: "Other",
			Amount: decimal.RequireFromString("0.01")},
		{ID: 9, Date: core.NewDate(2023, 11, 30), Kind: core.KindExpense, Category: "Bills",
			Amount: decimal.RequireFromString("12.345"), Description: "metered"},
	}
}

func TestToCSVLayout(t *testing.T) {
	out, err := ToCSV(sample()[:1])
	require.NoError(t, err)
	assert.Equal(t, "id,date,type,category,amount,description\n2,2024-01-20,Income,Income,50000.00,Salary\n", out)
}

func TestToCSVEmptyHasHeaderOnly(t *testing.T) {
	out, err := ToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "id,date,type,category,amount,description\n", out)
}

func TestToCSVQuotesSpecialCharacters(t *testing.T) {
	out, err := ToCSV(sample()[1:2])
	require.NoError(t, err)
	assert.Contains(t, out, `"Lunch, with ""friends""`+"\nsecond line\"")
}

func TestRoundTrip(t *testing.T) {
	in := sample()
	out, err := ToCSV(in)
	require.NoError(t, err)

	back, err := ParseCSV(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, len(in))
	for i := range in {
		assert.Equal(t, in[i].Date.String(), back[i].Date.String())
		assert.Equal(t, in[i].Kind, back[i].Kind)
		assert.Equal(t, in[i].Category, back[i].Category)
		assert.True(t, in[i].Amount.Equal(back[i].Amount), "amount %s vs %s", in[i].Amount, back[i].Amount)
		assert.Equal(t, in[i].Description, back[i].Description)
	}
}

func TestRowKeepsExtraDecimals(t *testing.T) {
	tx := core.Transaction{ID: 1, Date: core.NewDate(2024, 1, 1), Kind: core.KindExpense, Category: "Food"}

	tx.Amount = decimal.RequireFromString("12.345")
	assert.Equal(t, "12.345", Row(tx)[4])
	tx.Amount = decimal.RequireFromString("12.3")
	assert.Equal(t, "12.30", Row(tx)[4])
	tx.Amount = decimal.NewFromInt(7)
	assert.Equal(t, "7.00", Row(tx)[4])
}

func TestParseCSVRejectsForeignHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("a,b,c,d,e,f\n"))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestParseCSVReportsLine(t *testing.T) {
	doc := "id,date,type,category,amount,description\n1,2024-01-01,Expense,Food,abc,x\n"
	_, err := ParseCSV(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "expenses_20261019.csv", Filename(now))
}
