package http

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"250", "₹250.00"},
		{"1000", "₹1,000.00"},
		{"49750", "₹49,750.00"},
		{"1234567.5", "₹1,234,567.50"},
		{"-1234.567", "₹-1,234.57"},
		{"999.999", "₹1,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount("₹", decimal.RequireFromString(tt.in)), tt.in)
	}
	assert.Equal(t, "12,345.60", formatNumber(decimal.RequireFromString("12345.6")))
}

func TestBarWidth(t *testing.T) {
	max := decimal.NewFromInt(1000)
	assert.Equal(t, 100, barWidth(max, max))
	assert.Equal(t, 25, barWidth(decimal.NewFromInt(250), max))
	assert.Equal(t, 2, barWidth(decimal.NewFromInt(1), max))
	assert.Equal(t, 0, barWidth(decimal.Zero, max))
	assert.Equal(t, 0, barWidth(decimal.NewFromInt(5), decimal.Zero))
}
