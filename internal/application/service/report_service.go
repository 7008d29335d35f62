package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/lubepos-api/pkg/apperror"
)

// ReportTypes lists the report kinds that can be generated
var ReportTypes = []string{"sales", "inventory", "customer", "financial"}

// ReportGenerator turns a prompt into report text, delivered in chunks through emit.
// Generation stops at the first emit error.
type ReportGenerator interface {
	Generate(ctx context.Context, req ReportRequest, emit func(chunk string) error) error
}

// ReportRequest is what a generator receives
type ReportRequest struct {
	ReportType string
	Prompt     string
	Stats      *DashboardStats
}

// ReportService builds report prompts and streams generated reports
type ReportService struct {
	dashboard *DashboardService
	generator ReportGenerator
}

// NewReportService creates a new report service
func NewReportService(dashboard *DashboardService, generator ReportGenerator) *ReportService {
	return &ReportService{dashboard: dashboard, generator: generator}
}

// BuildPrompt returns the instruction text for a report type
func BuildPrompt(reportType string) string {
	return fmt.Sprintf("Generate a detailed %s report for a small business. Include an executive summary, key metrics, trend analysis, and recommendations. The report should be informative and actionable.", reportType)
}

// ValidateReportType normalizes a report type and rejects unknown ones
func ValidateReportType(reportType string) (string, error) {
	rt := strings.ToLower(strings.TrimSpace(reportType))
	for _, known := range ReportTypes {
		if rt == known {
			return rt, nil
		}
	}
	return "", apperror.NewFieldError("report_type", "Report type must be one of "+strings.Join(ReportTypes, ", "))
}

// Generate streams a report of the given type through emit
func (s *ReportService) Generate(ctx context.Context, reportType string, emit func(chunk string) error) error {
	rt, err := ValidateReportType(reportType)
	if err != nil {
		return err
	}

	stats, err := s.dashboard.GetDashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("load report metrics: %w", err)
	}

	return s.generator.Generate(ctx, ReportRequest{
		ReportType: rt,
		Prompt:     BuildPrompt(rt),
		Stats:      stats,
	}, emit)
}

// SummaryGenerator writes the report from the live dashboard metrics, one
// section per chunk.
type SummaryGenerator struct {
	StoreName string
}

// Generate implements ReportGenerator
func (g *SummaryGenerator) Generate(ctx context.Context, req ReportRequest, emit func(chunk string) error) error {
	st := req.Stats
	title := strings.ToUpper(req.ReportType[:1]) + req.ReportType[1:]

	sections := []string{
		fmt.Sprintf("# %s Report: %s\n\n", title, g.StoreName),
		fmt.Sprintf("## Executive Summary\n\n%d sales brought in %s in total, %s of it today. The average sale was %s.\n\n",
			st.TotalSales, st.TotalRevenue.StringFixed(2), st.TodayRevenue.StringFixed(2), st.AverageSale.StringFixed(2)),
		g.keyMetrics(st),
		g.trends(st),
		g.recommendations(st),
	}

	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(section); err != nil {
			return err
		}
	}
	return nil
}

func (g *SummaryGenerator) keyMetrics(st *DashboardStats) string {
	var b strings.Builder
	b.WriteString("## Key Metrics\n\n")
	fmt.Fprintf(&b, "- Units sold: %d\n", st.ItemsSold)
	fmt.Fprintf(&b, "- Items in inventory: %d (%d units, valued at %s)\n", st.TotalItems, st.TotalStock, st.InventoryValue.StringFixed(2))
	fmt.Fprintf(&b, "- Items low on stock: %d\n", st.LowStockCount)
	for _, p := range st.PaymentBreakdown {
		fmt.Fprintf(&b, "- %s payments: %d (%s)\n", p.PaymentType, p.Count, p.Amount.StringFixed(2))
	}
	b.WriteString("\n")
	return b.String()
}

func (g *SummaryGenerator) trends(st *DashboardStats) string {
	var b strings.Builder
	b.WriteString("## Trend Analysis\n\n")
	for _, d := range st.DailySales {
		fmt.Fprintf(&b, "- %s: %s\n", d.Date, d.Revenue.StringFixed(2))
	}
	if len(st.CategorySales) > 0 {
		top := st.CategorySales[0]
		fmt.Fprintf(&b, "\n%s is the strongest category with %s in sales.\n", top.Category, top.Amount.StringFixed(2))
	}
	b.WriteString("\n")
	return b.String()
}

func (g *SummaryGenerator) recommendations(st *DashboardStats) string {
	var recs []string
	if st.LowStockCount > 0 {
		recs = append(recs, fmt.Sprintf("Restock the %d low-stock items before they run out.", st.LowStockCount))
	}
	if st.TotalSales == 0 {
		recs = append(recs, "No sales have been recorded yet; check that the till is in use.")
	} else if len(st.CategorySales) > 1 {
		weakest := st.CategorySales[len(st.CategorySales)-1]
		recs = append(recs, fmt.Sprintf("Promote %s, the weakest selling category.", weakest.Category))
	}
	if len(recs) == 0 {
		recs = append(recs, "Keep current stock levels and pricing.")
	}

	var b strings.Builder
	b.WriteString("## Recommendations\n\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}
