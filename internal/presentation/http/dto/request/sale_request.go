package request

// SaleFilterRequest represents sale list query parameters.
// Dates use the YYYY-MM-DD layout and are inclusive.
type SaleFilterRequest struct {
	PaymentType string `form:"payment_type"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}
