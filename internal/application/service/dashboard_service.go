package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	saleRepo          repository.SaleRepository
	itemRepo          repository.ItemRepository
	userRepo          repository.UserRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	lowStockThreshold int,
) *DashboardService {
	return &DashboardService{
		saleRepo:          saleRepo,
		itemRepo:          itemRepo,
		userRepo:          userRepo,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalRevenue     decimal.Decimal      `json:"total_revenue"`
	TodayRevenue     decimal.Decimal      `json:"today_revenue"`
	TotalSales       int64                `json:"total_sales"`
	TodaySales       int64                `json:"today_sales"`
	AverageSale      decimal.Decimal      `json:"average_sale"`
	ItemsSold        int                  `json:"items_sold"`
	TotalItems       int64                `json:"total_items"`
	TotalStock       int                  `json:"total_stock"`
	InventoryValue   decimal.Decimal      `json:"inventory_value"`
	LowStockCount    int                  `json:"low_stock_count"`
	TotalUsers       int64                `json:"total_users"`
	PaymentBreakdown []PaymentPoint       `json:"payment_breakdown"`
	CategorySales    []CategorySalesPoint `json:"category_sales"`
	DailySales       []DailySalesPoint    `json:"daily_sales"`
}

// PaymentPoint represents sales settled with one payment type
type PaymentPoint struct {
	PaymentType string          `json:"payment_type"`
	Count       int             `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}

// CategorySalesPoint represents sales by category
type CategorySalesPoint struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalRevenue:   decimal.Zero,
		TodayRevenue:   decimal.Zero,
		AverageSale:    decimal.Zero,
		InventoryValue: decimal.Zero,
	}

	sales, total, err := s.saleRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalSales = total

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	payments := map[enum.PaymentType]*PaymentPoint{}
	for _, pt := range []enum.PaymentType{enum.PaymentTypeCard, enum.PaymentTypeCash} {
		payments[pt] = &PaymentPoint{PaymentType: pt.String(), Amount: decimal.Zero}
	}
	categories := map[string]decimal.Decimal{}
	daily := map[string]decimal.Decimal{}

	for _, sale := range sales {
		stats.TotalRevenue = stats.TotalRevenue.Add(sale.Total)
		stats.ItemsSold += sale.ItemCount
		if !sale.CreatedAt.Before(startOfDay) {
			stats.TodayRevenue = stats.TodayRevenue.Add(sale.Total)
			stats.TodaySales++
		}

		if p, ok := payments[sale.PaymentType]; ok {
			p.Count++
			p.Amount = p.Amount.Add(sale.Total)
		}

		for _, l := range sale.Lines {
			category := l.Category
			if category == "" {
				category = "Uncategorized"
			}
			categories[category] = categories[category].Add(l.Subtotal)
		}

		day := sale.CreatedAt.In(now.Location()).Format("2006-01-02")
		daily[day] = daily[day].Add(sale.Total)
	}

	if total > 0 {
		stats.AverageSale = stats.TotalRevenue.Div(decimal.NewFromInt(total)).Round(2)
	}

	stats.PaymentBreakdown = []PaymentPoint{*payments[enum.PaymentTypeCard], *payments[enum.PaymentTypeCash]}

	stats.CategorySales = make([]CategorySalesPoint, 0, len(categories))
	for c, amount := range categories {
		stats.CategorySales = append(stats.CategorySales, CategorySalesPoint{Category: c, Amount: amount})
	}
	sort.Slice(stats.CategorySales, func(i, j int) bool {
		a, b := stats.CategorySales[i], stats.CategorySales[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})

	// Last 7 days, oldest first
	stats.DailySales = make([]DailySalesPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := startOfDay.AddDate(0, 0, -i)
		stats.DailySales = append(stats.DailySales, DailySalesPoint{
			Date:    date.Format("Jan 02"),
			Revenue: daily[date.Format("2006-01-02")],
		})
	}

	items, itemCount, err := s.itemRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalItems = itemCount
	for _, item := range items {
		stats.TotalStock += item.Stock
		stats.InventoryValue = stats.InventoryValue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Stock))))
		if item.Stock <= s.lowStockThreshold {
			stats.LowStockCount++
		}
	}

	_, userCount, err := s.userRepo.List(ctx, nil, "")
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = userCount

	return stats, nil
}
