package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vatledger/internal/domain"
	"vatledger/internal/service"
)

const dateLayout = "2006-01-02"

// ReportHandler handles VAT report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseReportFilters extracts the report scope from query params.
func parseReportFilters(c *gin.Context) (*domain.ReportFilters, error) {
	filters := &domain.ReportFilters{}

	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' date: must be YYYY-MM-DD")
		}
		filters.From = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' date: must be YYYY-MM-DD")
		}
		filters.To = &t
	}

	if src := strings.TrimSpace(c.Query("source")); src != "" && src != "all" {
		source := domain.OrderSource(src)
		if !domain.ValidOrderSources[source] {
			return nil, fmt.Errorf("invalid 'source': must be one of all, online, in_restaurant")
		}
		filters.Source = source
	}

	if topStr := c.Query("top"); topStr != "" {
		top, err := strconv.Atoi(topStr)
		if err != nil || top < 1 || top > 100 {
			return nil, fmt.Errorf("invalid 'top': must be an integer between 1 and 100")
		}
		filters.TopN = top
	}

	return filters, nil
}

// VATReport handles GET /api/v1/reports/vat
// @Summary      VAT report
// @Description  Net, VAT and gross totals for the selected days and channel, with best sellers by quantity and revenue
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day (YYYY-MM-DD), tenant time zone"
// @Param        to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param        source query string false "Order source" Enums(all, online, in_restaurant)
// @Param        top query int false "Length of each best-seller list" default(20)
// @Success      200 {object} APIResponse{data=domain.VATReport}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/vat [get]
func (h *ReportHandler) VATReport(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	report, err := h.reportService.VATReport(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles GET /api/v1/reports/vat/export
// @Summary      Download VAT report
// @Description  Per-order VAT rows followed by a summary block, as CSV (default) or XLSX
// @Tags         reports
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param        source query string false "Order source" Enums(all, online, in_restaurant)
// @Param        format query string false "File format" Enums(csv, xlsx) default(csv)
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/vat/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Render into memory first so a failure can still be reported as JSON.
	var buf bytes.Buffer
	var filename, contentType string
	switch format := strings.ToLower(c.DefaultQuery("format", "csv")); format {
	case "csv":
		contentType = service.ContentTypeCSV
		filename, err = h.reportService.ExportCSV(c.Request.Context(), tenantID, filters, &buf)
	case "xlsx":
		contentType = service.ContentTypeXLSX
		filename, err = h.reportService.ExportXLSX(c.Request.Context(), tenantID, filters, &buf)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'format': must be csv or xlsx")
		return
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Archive handles POST /api/v1/reports/vat/archive
// @Summary      Archive VAT report
// @Description  Stores the CSV report in object storage and returns a time-limited download link
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param        source query string false "Order source" Enums(all, online, in_restaurant)
// @Success      201 {object} APIResponse{data=domain.ReportArchive}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/vat/archive [post]
func (h *ReportHandler) Archive(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	archive, err := h.reportService.Archive(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, archive)
}
