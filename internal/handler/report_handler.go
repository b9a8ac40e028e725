package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasunw/lottery-sales-api/internal/dto"
	"github.com/kasunw/lottery-sales-api/internal/service"
	appErrors "github.com/kasunw/lottery-sales-api/pkg/errors"
	"github.com/kasunw/lottery-sales-api/pkg/response"
)

// ReportHandler exposes the reporting and export endpoints.
type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
	metrics *service.MetricsService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService, exports *service.ExportService, metrics *service.MetricsService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, metrics: metrics}
}

func summaryQuery(c *gin.Context) dto.SummaryQuery {
	return dto.SummaryQuery{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		District:  c.Query("district"),
		City:      c.Query("city"),
	}
}

// Summary godoc
// @Summary Sales summary report
// @Description Aggregated totals per brand and location over the filtered submissions
// @Tags Reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Param district query string false "District substring filter"
// @Param city query string false "City substring filter"
// @Success 200 {object} response.Envelope
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), claims, summaryQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary, nil)
}

// Dashboard godoc
// @Summary Dashboard statistics
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dashboard, err := h.reports.Dashboard(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard, nil)
}

// Export godoc
// @Summary Export the sales report
// @Description Streams the filtered report as a CSV or spreadsheet download
// @Tags Reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or excel" default(csv)
// @Param startDate query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param endDate query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Param district query string false "District substring filter"
// @Param city query string false "City substring filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", service.FormatCSV)
	q := dto.ExportQuery{SummaryQuery: summaryQuery(c), Format: format}
	file, err := h.exports.Export(c.Request.Context(), claims, q)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.ObserveExport(format)
	response.Attachment(c, file.ContentType, file.Filename, file.Payload)
}
