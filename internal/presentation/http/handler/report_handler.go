package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/application/service"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// ReportHandler streams generated business reports as server-sent events
type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// Types lists the report types that can be generated
func (h *ReportHandler) Types(c *gin.Context) {
	response.OK(c, "Report types retrieved successfully", service.ReportTypes)
}

// Generate streams a report. Each chunk is a "chunk" event, followed by a
// final "done" event, or an "error" event if generation fails midway.
func (h *ReportHandler) Generate(c *gin.Context) {
	var req request.GenerateReportRequest
	if !bindJSON(c, &req) {
		return
	}

	reportType, err := service.ValidateReportType(req.ReportType)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	err = h.reportService.Generate(ctx, reportType, func(chunk string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		h.logger.Warn("report generation failed",
			zap.String("report_type", reportType),
			zap.Error(err),
		)
		if ctx.Err() == nil {
			c.SSEvent("error", "Report generation failed")
			c.Writer.Flush()
		}
		return
	}

	c.SSEvent("done", reportType)
	c.Writer.Flush()
}
