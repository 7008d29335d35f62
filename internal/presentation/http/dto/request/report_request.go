package request

// GenerateReportRequest asks for a streamed business report
type GenerateReportRequest struct {
	ReportType string `json:"report_type" binding:"required"`
}
