package formatter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"545", "₹545.00"},
		{"1008.9", "₹1008.90"},
		{"-30", "₹-30.00"},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.in)
		if got := Currency(d); got != tt.want {
			t.Errorf("Currency(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCurrencyWhole(t *testing.T) {
	if got := CurrencyWhole(545); got != "₹545.00" {
		t.Errorf("CurrencyWhole(545) = %s", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	if got := Date(d); got != "05/03/2024" {
		t.Errorf("Date = %s, want 05/03/2024", got)
	}
}
