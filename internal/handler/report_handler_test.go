package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/domain"
	"vatledger/internal/handler"
	"vatledger/internal/service"
	"vatledger/mocks"
)

func newReportRequest(method, target string, tenantID uuid.UUID) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, http.NoBody)
	setAuthContext(c, tenantID, uuid.New(), "manager")
	return w, c
}

func TestReportHandler_VATReport_Success(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	report := &domain.VATReport{
		Source: "online",
		Summary: domain.VATSummary{
			OrderCount: 2,
			TotalGross: decimal.RequireFromString("18.00"),
			TotalVAT:   decimal.RequireFromString("2.00"),
			TotalNet:   decimal.RequireFromString("16.00"),
		},
	}
	svc.On("VATReport", mock.Anything, tenantID, mock.MatchedBy(func(f *domain.ReportFilters) bool {
		return f.From != nil && f.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To != nil && f.To.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)) &&
			f.Source == domain.OrderSourceOnline &&
			f.TopN == 5
	})).Return(report, nil)

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat?from=2026-03-01&to=2026-03-31&source=online&top=5", tenantID)
	h.VATReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), `"order_count":2`)
	svc.AssertExpectations(t)
}

func TestReportHandler_VATReport_SourceAllMeansNoFilter(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	svc.On("VATReport", mock.Anything, tenantID, mock.MatchedBy(func(f *domain.ReportFilters) bool {
		return f.Source == "" && f.From == nil && f.To == nil
	})).Return(&domain.VATReport{}, nil)

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat?source=all", tenantID)
	h.VATReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportHandler_VATReport_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad from", "from=03/01/2026&to=2026-03-31"},
		{"bad to", "from=2026-03-01&to=tomorrow"},
		{"bad source", "source=drive_thru"},
		{"bad top", "top=zero"},
		{"top out of range", "top=500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockReportService)
			h := handler.NewReportHandler(svc)

			w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat?"+tt.query, uuid.New())
			h.VATReport(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
			svc.AssertNotCalled(t, "VATReport", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReportHandler_VATReport_InvalidRange(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	svc.On("VATReport", mock.Anything, tenantID, mock.Anything).Return(nil, domain.ErrInvalidDateRange)

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat?from=2026-03-31&to=2026-03-01", tenantID)
	h.VATReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", decodeResponse(t, w).Error.Code)
}

func TestReportHandler_VATReport_MissingAuth(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/reports/vat", http.NoBody)

	h.VATReport(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	body := "\xEF\xBB\xBFOrder ID,Date,Net,VAT,Gross\n"
	svc.On("ExportCSV", mock.Anything, tenantID, mock.Anything, mock.Anything).
		Return("vat_report_all_2026-03-01.csv", nil, body)

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat/export?from=2026-03-01&to=2026-03-31", tenantID)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="vat_report_all_2026-03-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
}

func TestReportHandler_Export_XLSX(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	svc.On("ExportXLSX", mock.Anything, tenantID, mock.Anything, mock.Anything).
		Return("vat_report_online_2026-03-01.xlsx", nil, "PK")

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat/export?format=xlsx&source=online", tenantID)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vat_report_online_2026-03-01.xlsx")
	svc.AssertNotCalled(t, "ExportCSV", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_Export_UnknownFormat(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat/export?format=pdf", uuid.New())
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Export_ServiceError(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	svc.On("ExportCSV", mock.Anything, tenantID, mock.Anything, mock.Anything).
		Return("", errors.New("db down"))

	w, c := newReportRequest(http.MethodGet, "/api/v1/reports/vat/export", tenantID)
	h.Export(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "INTERNAL_ERROR", decodeResponse(t, w).Error.Code)
}

func TestReportHandler_Archive(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	archive := &domain.ReportArchive{
		Key:         "reports/" + tenantID.String() + "/20260401T090000Z/vat_report_all_2026-03-01.csv",
		Filename:    "vat_report_all_2026-03-01.csv",
		DownloadURL: "https://example.test/signed",
	}
	svc.On("Archive", mock.Anything, tenantID, mock.Anything).Return(archive, nil)

	w, c := newReportRequest(http.MethodPost, "/api/v1/reports/vat/archive?from=2026-03-01&to=2026-03-31", tenantID)
	h.Archive(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "https://example.test/signed")
}

func TestReportHandler_Archive_UploadFailed(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	tenantID := uuid.New()

	svc.On("Archive", mock.Anything, tenantID, mock.Anything).Return(nil, domain.ErrUploadFailed)

	w, c := newReportRequest(http.MethodPost, "/api/v1/reports/vat/archive", tenantID)
	h.Archive(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "UPLOAD_FAILED", decodeResponse(t, w).Error.Code)
}
