package billing

import (
	"github.com/shopspring/decimal"

	"github.com/tusharj/bizbill-api/internal/domain/enum"
)

// LineItem is one product line of an in-progress bill.
type LineItem struct {
	Qty       int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // line-level discount, percent 0-100
}

// Calculation is the itemized monetary breakdown of a bill. All fields
// except GrandTotal are unrounded; GrandTotal is whole currency units.
type Calculation struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	TotalProductDiscounts decimal.Decimal `json:"total_product_discounts"`
	BillDiscount          decimal.Decimal `json:"bill_discount"` // resolved to a currency amount
	TaxAmount             decimal.Decimal `json:"tax_amount"`
	GrandTotal            int64           `json:"grand_total"`
}

var hundred = decimal.NewFromInt(100)

// Calculate turns a cart plus discount/tax/charge parameters into a bill
// breakdown. It is pure and total: no validation, no clamping, no errors.
// Out-of-range inputs (negative qty, discount above 100, an amount-type
// bill discount larger than the subtotal) pass through arithmetically;
// rejecting them is the caller's concern. Changing any of this changes
// totals on invoices that have already been issued.
//
// The sequence is fixed: line totals and line discounts, then the
// bill-level discount against the post-item-discount base, then tax on
// the post-discount base, then other charges, then rounding.
func Calculate(items []LineItem, billDiscount decimal.Decimal, billDiscountType enum.DiscountType, taxPercent, otherCharges decimal.Decimal) Calculation {
	subtotal := decimal.Zero
	totalProductDiscounts := decimal.Zero

	for _, item := range items {
		itemTotal := decimal.NewFromInt(int64(item.Qty)).Mul(item.UnitPrice)
		itemDiscount := item.Discount.Mul(itemTotal).Div(hundred)
		subtotal = subtotal.Add(itemTotal)
		totalProductDiscounts = totalProductDiscounts.Add(itemDiscount)
	}

	afterProductDiscounts := subtotal.Sub(totalProductDiscounts)

	var billDiscountAmount decimal.Decimal
	if billDiscountType == enum.DiscountTypePercentage {
		billDiscountAmount = billDiscount.Mul(afterProductDiscounts).Div(hundred)
	} else {
		billDiscountAmount = billDiscount
	}

	afterBillDiscount := afterProductDiscounts.Sub(billDiscountAmount)

	taxAmount := taxPercent.Mul(afterBillDiscount).Div(hundred)

	// Round half away from zero to the nearest whole currency unit. This
	// rounding rule is part of the invoice contract and must never change.
	grandTotalRaw := afterBillDiscount.Add(taxAmount).Add(otherCharges)
	grandTotal := grandTotalRaw.Round(0).IntPart()

	return Calculation{
		Subtotal:              subtotal,
		TotalProductDiscounts: totalProductDiscounts,
		BillDiscount:          billDiscountAmount,
		TaxAmount:             taxAmount,
		GrandTotal:            grandTotal,
	}
}
