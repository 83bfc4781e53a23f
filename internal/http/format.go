package http

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatAmount renders d with thousands separators and two decimals,
// prefixed by symbol: 1234567.5 -> "₹1,234,567.50", -20 -> "₹-20.00".
func formatAmount(symbol string, d decimal.Decimal) string {
	return symbol + groupThousands(d.StringFixed(2))
}

// formatNumber is formatAmount without the symbol.
func formatNumber(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(2))
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// barWidth scales value against max to a whole percentage. Non-zero values
// never drop below 2% so they stay visible.
func barWidth(value, max decimal.Decimal) int {
	if !max.IsPositive() || !value.IsPositive() {
		return 0
	}
	width := int(value.Mul(decimal.NewFromInt(100)).Div(max).Round(0).IntPart())
	if width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}
