package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/application/service"
	"github.com/tusharj/bizbill-api/internal/domain/enum"
	"github.com/tusharj/bizbill-api/internal/presentation/http/dto/response"
	"github.com/tusharj/bizbill-api/pkg/pagination"
	"github.com/tusharj/bizbill-api/pkg/render"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	shopService    *service.ShopService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, shopService *service.ShopService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, shopService: shopService}
}

type invoiceItemRequest struct {
	ProductID *uuid.UUID      `json:"product_id"`
	Name      string          `json:"name" binding:"required"`
	Qty       int             `json:"qty" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

type invoiceRequest struct {
	CustomerName    string     `json:"customer_name" binding:"required"`
	CustomerPhone   *string    `json:"customer_phone"`
	CustomerAddress *string    `json:"customer_address"`
	InvoiceDate     *time.Time `json:"invoice_date"`

	Items             []invoiceItemRequest `json:"items" binding:"required"`
	BillDiscount      decimal.Decimal      `json:"bill_discount"`
	BillDiscountType  string               `json:"bill_discount_type"`
	TaxPercent        decimal.Decimal      `json:"tax_percent"`
	OtherCharges      decimal.Decimal      `json:"other_charges"`
	OtherChargesLabel *string              `json:"other_charges_label"`

	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentMode *string         `json:"payment_mode"`
}

func (r *invoiceRequest) toInput() *service.InvoiceInput {
	items := make([]service.InvoiceItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = service.InvoiceItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
	}
	return &service.InvoiceInput{
		CustomerName:      r.CustomerName,
		CustomerPhone:     r.CustomerPhone,
		CustomerAddress:   r.CustomerAddress,
		InvoiceDate:       r.InvoiceDate,
		Items:             items,
		BillDiscount:      r.BillDiscount,
		BillDiscountType:  enum.DiscountType(r.BillDiscountType),
		TaxPercent:        r.TaxPercent,
		OtherCharges:      r.OtherCharges,
		OtherChargesLabel: r.OtherChargesLabel,
		PaidAmount:        r.PaidAmount,
		PaymentMode:       r.PaymentMode,
	}
}

// List handles listing invoices, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles replacing an invoice's contents. The invoice number is
// preserved.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Render handles producing the printable HTML view of an invoice
func (h *InvoiceHandler) Render(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The shop profile is optional on the printout
	shop, _ := h.shopService.GetShop(c.Request.Context())

	html, err := render.Invoice(invoice, shop)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
