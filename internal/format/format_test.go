package format

import (
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// digitsOnly убирает разделители разрядов и символ валюты.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, s)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		digits string
	}{
		{name: "zero", amount: decimal.Zero, digits: "0"},
		{name: "small", amount: decimal.NewFromInt(950), digits: "950"},
		{name: "grouped", amount: decimal.NewFromInt(1234567), digits: "1234567"},
		{name: "rounds up", amount: decimal.RequireFromString("1234.5"), digits: "1235"},
		{name: "rounds down", amount: decimal.RequireFromString("99.49"), digits: "99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(tt.amount)

			assert.True(t, strings.HasSuffix(got, CurrencySymbol), got)
			assert.NotContains(t, got, ",")
			assert.NotContains(t, got, ".")
			assert.Equal(t, tt.digits, digitsOnly(got))
		})
	}
}

func TestPrice_ZeroValueEqualsZero(t *testing.T) {
	var absent decimal.Decimal

	assert.Equal(t, Price(decimal.Zero), Price(absent))
}

func TestDate(t *testing.T) {
	assert.Equal(t, Placeholder, Date(""))
	assert.Equal(t, Placeholder, Date("   "))
	assert.Equal(t, Placeholder, Date("не дата"))

	assert.Equal(t, "05.03.2025", Date("2025-03-05T10:20:30.123456"))
	assert.Equal(t, "05.03.2025", Date("2025-03-05T10:20:30Z"))
	assert.Equal(t, "05.03.2025", Date("2025-03-05T10:20:30+03:00"))
	assert.Equal(t, "05.03.2025", Date("2025-03-05"))
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, Placeholder, DateTime(time.Time{}))
	assert.Equal(t, "05.03.2025 10:20", DateTime(time.Date(2025, 3, 5, 10, 20, 0, 0, time.UTC)))
}

func TestStatus(t *testing.T) {
	known := map[string]string{
		"draft":         "Черновик",
		"confirmed":     "Подтверждён",
		"in_production": "В производстве",
		"completed":     "Выполнен",
		"cancelled":     "Отменён",
	}

	for code, label := range known {
		assert.Equal(t, label, Status(code), code)
	}

	assert.Equal(t, "archived", Status("archived"))
	assert.Equal(t, "", Status(""))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "bg-warning", StatusClass("in_production"))
	assert.Equal(t, "bg-light text-dark", StatusClass("archived"))
}
