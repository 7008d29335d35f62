package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/internal/domain/enum"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSales(t *testing.T, env *testEnv, now time.Time) {
	t.Helper()
	ctx := context.Background()

	sales := []*entity.Sale{
		{
			ID: "s1", PaymentType: enum.PaymentTypeCard, CreatedAt: now.Add(-48 * time.Hour),
			ItemCount: 2, Total: d("79.98"),
			Lines: []entity.SaleLine{{ProductID: "oil-1", Category: "Oil", Quantity: 2, UnitPrice: d("39.99"), Subtotal: d("79.98")}},
		},
		{
			ID: "s2", PaymentType: enum.PaymentTypeCash, CreatedAt: now.Add(-time.Hour),
			ItemCount: 3, Total: d("60.97"),
			Lines: []entity.SaleLine{
				{ProductID: "part-1", Category: "Parts", Quantity: 1, UnitPrice: d("45.99"), Subtotal: d("45.99")},
				{ProductID: "add-1", Category: "", Quantity: 1, UnitPrice: d("14.98"), Subtotal: d("14.98")},
			},
		},
	}
	for _, s := range sales {
		require.NoError(t, env.sales.Create(ctx, s))
	}
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	seedSales(t, env, now)

	svc := NewDashboardService(env.sales, env.items, env.users, 40)
	svc.now = func() time.Time { return now }

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalSales)
	assert.True(t, d("140.95").Equal(stats.TotalRevenue))
	assert.Equal(t, int64(1), stats.TodaySales)
	assert.True(t, d("60.97").Equal(stats.TodayRevenue))
	assert.True(t, d("70.48").Equal(stats.AverageSale), "got %s", stats.AverageSale)
	assert.Equal(t, 5, stats.ItemsSold)

	assert.Equal(t, int64(6), stats.TotalItems)
	assert.Equal(t, 465, stats.TotalStock)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, int64(3), stats.TotalUsers)

	require.Len(t, stats.PaymentBreakdown, 2)
	assert.Equal(t, "card", stats.PaymentBreakdown[0].PaymentType)
	assert.Equal(t, 1, stats.PaymentBreakdown[0].Count)

	require.Len(t, stats.CategorySales, 3)
	assert.Equal(t, "Oil", stats.CategorySales[0].Category)
	assert.Equal(t, "Uncategorized", stats.CategorySales[2].Category)

	require.Len(t, stats.DailySales, 7)
	assert.Equal(t, "Mar 10", stats.DailySales[6].Date)
	assert.True(t, d("60.97").Equal(stats.DailySales[6].Revenue))
	assert.True(t, d("79.98").Equal(stats.DailySales[4].Revenue))
}

func TestReportGenerate(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	seedSales(t, env, now)

	dashboard := NewDashboardService(env.sales, env.items, env.users, 40)
	dashboard.now = func() time.Time { return now }
	svc := NewReportService(dashboard, &SummaryGenerator{StoreName: "LubePOS"})

	var chunks []string
	err := svc.Generate(context.Background(), " Sales ", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, chunks, 5)
	report := strings.Join(chunks, "")
	assert.True(t, strings.HasPrefix(report, "# Sales Report: LubePOS"))
	assert.Contains(t, report, "## Executive Summary")
	assert.Contains(t, report, "2 sales brought in 140.95")
	assert.Contains(t, report, "## Recommendations")
	assert.Contains(t, report, "Restock the 1 low-stock items")
}

func TestReportGenerateStopsOnEmitError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(NewDashboardService(env.sales, env.items, env.users, 10), &SummaryGenerator{})

	calls := 0
	boom := errors.New("client went away")
	err := svc.Generate(context.Background(), "inventory", func(string) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestReportRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReportService(NewDashboardService(env.sales, env.items, env.users, 10), &SummaryGenerator{})

	err := svc.Generate(context.Background(), "weather", func(string) error { return nil })

	assert.ErrorIs(t, err, apperror.ErrUnprocessable)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"Generate a detailed financial report for a small business. Include an executive summary, key metrics, trend analysis, and recommendations. The report should be informative and actionable.",
		BuildPrompt("financial"),
	)
}
