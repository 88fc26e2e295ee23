package formatter

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Currency formats a decimal amount as rupees with two decimal places
func Currency(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// CurrencyWhole formats whole currency units as rupees
func CurrencyWhole(amount int64) string {
	return fmt.Sprintf("₹%d.00", amount)
}

// Date formats a date as DD/MM/YYYY
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}
