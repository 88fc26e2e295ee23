package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tusharj/bizbill-api/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_Scenarios(t *testing.T) {
	cases := []struct {
		name             string
		items            []LineItem
		billDiscount     string
		billDiscountType enum.DiscountType
		taxPercent       string
		otherCharges     string

		subtotal         string
		productDiscounts string
		billDiscountAmt  string
		taxAmount        string
		grandTotal       int64
	}{
		{
			name:             "plain cart no adjustments",
			items:            []LineItem{{Qty: 2, UnitPrice: dec("100"), Discount: dec("0")}},
			billDiscount:     "0",
			billDiscountType: enum.DiscountTypeAmount,
			taxPercent:       "0",
			otherCharges:     "0",
			subtotal:         "200",
			productDiscounts: "0",
			billDiscountAmt:  "0",
			taxAmount:        "0",
			grandTotal:       200,
		},
		{
			name:             "item discount then percentage bill discount then tax",
			items:            []LineItem{{Qty: 1, UnitPrice: dec("1000"), Discount: dec("10")}},
			billDiscount:     "5",
			billDiscountType: enum.DiscountTypePercentage,
			taxPercent:       "18",
			otherCharges:     "0",
			subtotal:         "1000",
			productDiscounts: "100",
			billDiscountAmt:  "45",
			taxAmount:        "153.9",
			grandTotal:       1009, // round(1008.9)
		},
		{
			name:             "flat bill discount plus other charges",
			items:            []LineItem{{Qty: 3, UnitPrice: dec("50"), Discount: dec("0")}},
			billDiscount:     "20",
			billDiscountType: enum.DiscountTypeAmount,
			taxPercent:       "0",
			otherCharges:     "10",
			subtotal:         "150",
			productDiscounts: "0",
			billDiscountAmt:  "20",
			taxAmount:        "0",
			grandTotal:       140,
		},
		{
			name:             "empty cart still carries other charges",
			items:            nil,
			billDiscount:     "0",
			billDiscountType: enum.DiscountTypeAmount,
			taxPercent:       "0",
			otherCharges:     "25",
			subtotal:         "0",
			productDiscounts: "0",
			billDiscountAmt:  "0",
			taxAmount:        "0",
			grandTotal:       25,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.items, dec(tc.billDiscount), tc.billDiscountType, dec(tc.taxPercent), dec(tc.otherCharges))

			if !got.Subtotal.Equal(dec(tc.subtotal)) {
				t.Fatalf("subtotal: expected %s, got %s", tc.subtotal, got.Subtotal)
			}
			if !got.TotalProductDiscounts.Equal(dec(tc.productDiscounts)) {
				t.Fatalf("product discounts: expected %s, got %s", tc.productDiscounts, got.TotalProductDiscounts)
			}
			if !got.BillDiscount.Equal(dec(tc.billDiscountAmt)) {
				t.Fatalf("bill discount: expected %s, got %s", tc.billDiscountAmt, got.BillDiscount)
			}
			if !got.TaxAmount.Equal(dec(tc.taxAmount)) {
				t.Fatalf("tax: expected %s, got %s", tc.taxAmount, got.TaxAmount)
			}
			if got.GrandTotal != tc.grandTotal {
				t.Fatalf("grand total: expected %d, got %d", tc.grandTotal, got.GrandTotal)
			}
		})
	}
}

func TestCalculate_SubtotalIndependentOfAdjustments(t *testing.T) {
	items := []LineItem{
		{Qty: 2, UnitPrice: dec("99.50"), Discount: dec("5")},
		{Qty: 1, UnitPrice: dec("249"), Discount: dec("12.5")},
		{Qty: 4, UnitPrice: dec("10"), Discount: dec("0")},
	}

	base := Calculate(items, dec("0"), enum.DiscountTypeAmount, dec("0"), dec("0"))
	adjusted := Calculate(items, dec("15"), enum.DiscountTypePercentage, dec("18"), dec("30"))

	if !base.Subtotal.Equal(adjusted.Subtotal) {
		t.Fatalf("subtotal must not depend on bill discount/tax/charges: %s vs %s", base.Subtotal, adjusted.Subtotal)
	}
	if !base.TotalProductDiscounts.Equal(adjusted.TotalProductDiscounts) {
		t.Fatalf("product discounts must not depend on bill discount/tax/charges: %s vs %s",
			base.TotalProductDiscounts, adjusted.TotalProductDiscounts)
	}
	if !base.Subtotal.Equal(dec("488")) {
		t.Fatalf("expected subtotal 488, got %s", base.Subtotal)
	}
}

func TestCalculate_TaxAppliesToPostDiscountBase(t *testing.T) {
	items := []LineItem{{Qty: 1, UnitPrice: dec("200"), Discount: dec("0")}}

	got := Calculate(items, dec("100"), enum.DiscountTypeAmount, dec("10"), dec("0"))

	// Tax on 100, not on the 200 subtotal.
	if !got.TaxAmount.Equal(dec("10")) {
		t.Fatalf("expected tax 10 on post-discount base, got %s", got.TaxAmount)
	}
	if got.GrandTotal != 110 {
		t.Fatalf("expected grand total 110, got %d", got.GrandTotal)
	}
}

func TestCalculate_AmountDiscountIsNotClamped(t *testing.T) {
	items := []LineItem{{Qty: 1, UnitPrice: dec("50"), Discount: dec("0")}}

	// A flat discount larger than the subtotal drives the total negative;
	// the engine passes it through untouched.
	got := Calculate(items, dec("80"), enum.DiscountTypeAmount, dec("0"), dec("0"))

	if !got.BillDiscount.Equal(dec("80")) {
		t.Fatalf("expected discount kept as-is, got %s", got.BillDiscount)
	}
	if got.GrandTotal != -30 {
		t.Fatalf("expected grand total -30, got %d", got.GrandTotal)
	}
}

func TestCalculate_RoundsHalfAwayFromZero(t *testing.T) {
	items := []LineItem{{Qty: 1, UnitPrice: dec("100.50"), Discount: dec("0")}}

	got := Calculate(items, dec("0"), enum.DiscountTypeAmount, dec("0"), dec("0"))
	if got.GrandTotal != 101 {
		t.Fatalf("expected 100.50 to round to 101, got %d", got.GrandTotal)
	}

	got = Calculate(nil, dec("0.5"), enum.DiscountTypeAmount, dec("0"), dec("0"))
	if got.GrandTotal != -1 {
		t.Fatalf("expected -0.5 to round to -1, got %d", got.GrandTotal)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	items := []LineItem{
		{Qty: 7, UnitPrice: dec("13.37"), Discount: dec("3")},
		{Qty: 2, UnitPrice: dec("1.01"), Discount: dec("50")},
	}

	first := Calculate(items, dec("2.5"), enum.DiscountTypePercentage, dec("18"), dec("9.99"))
	second := Calculate(items, dec("2.5"), enum.DiscountTypePercentage, dec("18"), dec("9.99"))

	if !first.Subtotal.Equal(second.Subtotal) ||
		!first.TotalProductDiscounts.Equal(second.TotalProductDiscounts) ||
		!first.BillDiscount.Equal(second.BillDiscount) ||
		!first.TaxAmount.Equal(second.TaxAmount) ||
		first.GrandTotal != second.GrandTotal {
		t.Fatalf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
}
