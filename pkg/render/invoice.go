package render

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/domain/entity"
	"github.com/tusharj/bizbill-api/pkg/formatter"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money":    formatter.Currency,
	"moneyInt": formatter.CurrencyWhole,
	"date":     formatter.Date,
	"lineTotal": func(item entity.InvoiceItem) string {
		qty := decimal.NewFromInt(int64(item.Qty))
		total := qty.Mul(item.UnitPrice)
		discounted := total.Sub(item.Discount.Mul(total).Div(decimal.NewFromInt(100)))
		return formatter.Currency(discounted)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Invoice.InvoiceNumber}}</title>
<style>
body { font-family: sans-serif; margin: 24px; color: #222; }
h1 { font-size: 20px; margin-bottom: 0; }
.muted { color: #666; font-size: 13px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: left; font-size: 14px; }
th { background: #f5f5f5; }
td.num, th.num { text-align: right; }
.totals { margin-top: 16px; width: 320px; margin-left: auto; }
.totals td { border: none; padding: 3px 8px; }
.grand td { font-weight: bold; border-top: 2px solid #222; }
.due { color: #b00020; }
</style>
</head>
<body>
{{if .Shop}}
<h1>{{.Shop.Name}}</h1>
<div class="muted">
{{if .Shop.Address}}{{.Shop.Address}}<br>{{end}}
{{if .Shop.MobileNo}}Ph: {{.Shop.MobileNo}}{{end}}
{{if .Shop.GSTIN}} | GSTIN: {{.Shop.GSTIN}}{{end}}
</div>
{{end}}

<h2>Invoice {{.Invoice.InvoiceNumber}}</h2>
<div class="muted">Date: {{date .Invoice.InvoiceDate}}</div>

<p>
<strong>{{.Invoice.CustomerName}}</strong><br>
{{if .Invoice.CustomerPhone}}{{.Invoice.CustomerPhone}}<br>{{end}}
{{if .Invoice.CustomerAddress}}{{.Invoice.CustomerAddress}}{{end}}
</p>

<table>
<tr><th>Item</th><th class="num">Qty</th><th class="num">Rate</th><th class="num">Disc %</th><th class="num">Amount</th></tr>
{{range .Invoice.Items}}
<tr>
<td>{{.Name}}</td>
<td class="num">{{.Qty}}</td>
<td class="num">{{money .UnitPrice}}</td>
<td class="num">{{.Discount}}</td>
<td class="num">{{lineTotal .}}</td>
</tr>
{{end}}
</table>

<table class="totals">
<tr><td>Subtotal</td><td class="num">{{money .Invoice.Subtotal}}</td></tr>
{{if not .Invoice.TotalProductDiscounts.IsZero}}<tr><td>Item discounts</td><td class="num">-{{money .Invoice.TotalProductDiscounts}}</td></tr>{{end}}
{{if not .Invoice.BillDiscountAmount.IsZero}}<tr><td>Bill discount</td><td class="num">-{{money .Invoice.BillDiscountAmount}}</td></tr>{{end}}
{{if not .Invoice.TaxAmount.IsZero}}<tr><td>Tax ({{.Invoice.TaxPercent}}%)</td><td class="num">{{money .Invoice.TaxAmount}}</td></tr>{{end}}
{{if not .Invoice.OtherCharges.IsZero}}<tr><td>{{if .Invoice.OtherChargesLabel}}{{.Invoice.OtherChargesLabel}}{{else}}Other charges{{end}}</td><td class="num">{{money .Invoice.OtherCharges}}</td></tr>{{end}}
<tr class="grand"><td>Grand Total</td><td class="num">{{moneyInt .Invoice.GrandTotal}}</td></tr>
<tr><td>Paid</td><td class="num">{{money .Invoice.PaidAmount}}</td></tr>
{{if not .Invoice.DueAmount.IsZero}}<tr class="due"><td>Due</td><td class="num">{{money .Invoice.DueAmount}}</td></tr>{{end}}
</table>
</body>
</html>
`))

type invoiceView struct {
	Invoice *entity.Invoice
	Shop    *entity.Shop
}

// Invoice renders the printable HTML view of an invoice. Shop may be nil
// when no profile has been saved.
func Invoice(invoice *entity.Invoice, shop *entity.Shop) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, invoiceView{Invoice: invoice, Shop: shop}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
