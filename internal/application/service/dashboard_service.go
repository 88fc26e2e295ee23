package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tusharj/bizbill-api/internal/domain/repository"
	"github.com/tusharj/bizbill-api/pkg/pagination"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *DashboardService {
	return &DashboardService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalProducts  int64           `json:"total_products"`
	TotalInvoices  int64           `json:"total_invoices"`
	TotalRevenue   int64           `json:"total_revenue"`
	TotalDue       decimal.Decimal `json:"total_due"`
	UnpaidInvoices int64           `json:"unpaid_invoices"`
	TodayRevenue   int64           `json:"today_revenue"`
	MonthRevenue   int64           `json:"month_revenue"`

	DailySalesData []DailySalesPoint `json:"daily_sales_data"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	// Counts come from the list queries; one row per page is enough
	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1

	_, customerCount, err := s.customerRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	_, productCount, err := s.productRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = productCount

	totals, err := s.invoiceRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalInvoices = totals.Count
	stats.TotalRevenue = totals.Revenue
	stats.TotalDue = totals.Due
	stats.UnpaidInvoices = totals.Unpaid

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats.TodayRevenue, err = s.invoiceRepo.RevenueBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	stats.MonthRevenue, err = s.invoiceRepo.RevenueBetween(ctx, startOfMonth, startOfMonth.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	// Last 7 days, oldest first
	for i := 6; i >= 0; i-- {
		day := startOfDay.AddDate(0, 0, -i)
		revenue, err := s.invoiceRepo.RevenueBetween(ctx, day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		stats.DailySalesData = append(stats.DailySalesData, DailySalesPoint{
			Date:    day.Format("2006-01-02"),
			Revenue: revenue,
		})
	}

	return stats, nil
}
