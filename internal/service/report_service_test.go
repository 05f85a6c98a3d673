package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vatledger/internal/domain"
	"vatledger/internal/port"
	"vatledger/internal/service"
	"vatledger/mocks"
)

type reportFixture struct {
	orders   *mocks.MockOrderRepo
	settings *mocks.MockTenantSettingsService
	storage  *mocks.MockObjectStorage
	svc      service.ReportService
	tenantID uuid.UUID
}

func newReportFixture(t *testing.T, opts service.ReportOptions) *reportFixture {
	t.Helper()
	f := &reportFixture{
		orders:   new(mocks.MockOrderRepo),
		settings: new(mocks.MockTenantSettingsService),
		storage:  new(mocks.MockObjectStorage),
		tenantID: uuid.New(),
	}
	f.svc = service.NewReportService(f.orders, f.settings, f.storage, opts)
	return f
}

func marchOrders() []domain.Order {
	return []domain.Order{
		trustedOrder("12.00", "2.00", domain.OrderSourceOnline, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			line("Samosa", 3, "12.00", nil)),
		trustedOrder("6.00", "0", domain.OrderSourceInRestaurant, time.Date(2026, 3, 11, 19, 30, 0, 0, time.UTC),
			line("Mango Lassi", 2, "6.00", nil)),
	}
}

func sameInstant(want time.Time) interface{} {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

func TestReportService_VATReport_Success(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	// March 2026 in London: GMT until the 29th, BST after, so the range ends at 23:00 UTC.
	f.orders.On("ListForReport", mock.Anything, f.tenantID,
		sameInstant(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		sameInstant(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)),
	).Return(marchOrders(), nil)

	report, err := f.svc.VATReport(context.Background(), f.tenantID, &domain.ReportFilters{
		From: day(2026, 3, 1),
		To:   day(2026, 3, 31),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.OrderCount)
	assert.Equal(t, "18.00", report.Summary.TotalGross.StringFixed(2))
	assert.Equal(t, "2.00", report.Summary.TotalVAT.StringFixed(2))
	assert.Equal(t, "16.00", report.Summary.TotalNet.StringFixed(2))
	assert.Equal(t, "all", report.Source)
	assert.Equal(t, "2026-03-31", report.To.Format("2006-01-02"))
	f.orders.AssertExpectations(t)
}

func TestReportService_VATReport_SourceFilter(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)

	report, err := f.svc.VATReport(context.Background(), f.tenantID, &domain.ReportFilters{
		From:   day(2026, 3, 1),
		To:     day(2026, 3, 31),
		Source: domain.OrderSourceInRestaurant,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.OrderCount)
	assert.Equal(t, "6.00", report.Summary.TotalGross.StringFixed(2))
	assert.True(t, report.Summary.TotalVAT.IsZero())
	assert.Equal(t, "in_restaurant", report.Source)
}

func TestReportService_VATReport_AllDates(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, time.Time{}, time.Time{}).Return(marchOrders(), nil)

	report, err := f.svc.VATReport(context.Background(), f.tenantID, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Summary.OrderCount)
	assert.True(t, report.From.IsZero())
}

func TestReportService_VATReport_TopNFromOptions(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{TopN: 1})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)

	report, err := f.svc.VATReport(context.Background(), f.tenantID, &domain.ReportFilters{})

	require.NoError(t, err)
	require.Len(t, report.TopByQuantity, 1)
	assert.Equal(t, "Samosa", report.TopByQuantity[0].Name)

	report, err = f.svc.VATReport(context.Background(), f.tenantID, &domain.ReportFilters{TopN: 5})
	require.NoError(t, err)
	assert.Len(t, report.TopByQuantity, 2)
}

func TestReportService_VATReport_InvalidFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters *domain.ReportFilters
		wantErr error
	}{
		{"unknown source", &domain.ReportFilters{Source: "drive_thru"}, domain.ErrInvalidOrderSource},
		{"from without to", &domain.ReportFilters{From: day(2026, 3, 1)}, domain.ErrInvalidDateRange},
		{"to without from", &domain.ReportFilters{To: day(2026, 3, 1)}, domain.ErrInvalidDateRange},
		{"to before from", &domain.ReportFilters{From: day(2026, 3, 2), To: day(2026, 3, 1)}, domain.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReportFixture(t, service.ReportOptions{})
			f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil).Maybe()

			report, err := f.svc.VATReport(context.Background(), f.tenantID, tt.filters)

			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.wantErr)
			f.orders.AssertNotCalled(t, "ListForReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReportService_VATReport_RepoError(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	report, err := f.svc.VATReport(context.Background(), f.tenantID, nil)

	assert.Nil(t, report)
	assert.ErrorContains(t, err, "connection refused")
}

func TestReportService_ExportCSV(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{CSVBOM: true})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)

	var buf bytes.Buffer
	filename, err := f.svc.ExportCSV(context.Background(), f.tenantID, &domain.ReportFilters{
		From: day(2026, 3, 1),
		To:   day(2026, 3, 31),
	}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "vat_report_all_2026-03-01.csv", filename)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
	body := buf.String()
	assert.Contains(t, body, "Order ID,Date,Net,VAT,Gross,Source")
	assert.Contains(t, body, "£10.00,£2.00,£12.00")
	assert.Contains(t, body, "SUMMARY")
	assert.Contains(t, body, "Total VAT,£2.00")
}

func TestReportService_ExportCSV_WithoutBOMAndSourceInFilename(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)

	var buf bytes.Buffer
	filename, err := f.svc.ExportCSV(context.Background(), f.tenantID, &domain.ReportFilters{
		From:   day(2026, 3, 1),
		To:     day(2026, 3, 31),
		Source: domain.OrderSourceOnline,
	}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "vat_report_online_2026-03-01.csv", filename)
	assert.True(t, strings.HasPrefix(buf.String(), "Order ID"))
}

func TestReportService_ExportXLSX(t *testing.T) {
	f := newReportFixture(t, service.ReportOptions{})
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)

	var buf bytes.Buffer
	filename, err := f.svc.ExportXLSX(context.Background(), f.tenantID, &domain.ReportFilters{
		From: day(2026, 3, 1),
		To:   day(2026, 3, 31),
	}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "vat_report_all_2026-03-01.xlsx", filename)
	// XLSX is a zip container.
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}

func archiveOptions() service.ReportOptions {
	return service.ReportOptions{Bucket: "vat-archive", ArchivePrefix: "reports", PresignExpiry: 900}
}

func TestReportService_Archive_Success(t *testing.T) {
	f := newReportFixture(t, archiveOptions())
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)

	var uploadedKey string
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "vat-archive" &&
			strings.HasPrefix(in.Key, "reports/"+f.tenantID.String()+"/") &&
			strings.HasSuffix(in.Key, "/vat_report_all_2026-03-01.csv") &&
			in.ContentType == service.ContentTypeCSV &&
			in.Filename == "vat_report_all_2026-03-01.csv"
	})).Run(func(args mock.Arguments) {
		uploadedKey = args.Get(1).(port.UploadInput).Key
	}).Return(&port.UploadOutput{ETag: "abc"}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "vat-archive", mock.AnythingOfType("string"), int64(900)).
		Return("https://example.test/signed", nil)

	archive, err := f.svc.Archive(context.Background(), f.tenantID, &domain.ReportFilters{
		From: day(2026, 3, 1),
		To:   day(2026, 3, 31),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://example.test/signed", archive.DownloadURL)
	assert.Equal(t, uploadedKey, archive.Key)
	assert.Equal(t, "vat_report_all_2026-03-01.csv", archive.Filename)
	assert.Equal(t, 2, archive.OrderCount)
	assert.Equal(t, 900*time.Second, archive.ExpiresAt.Sub(archive.GeneratedAt))
	f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Archive_UploadFails(t *testing.T) {
	f := newReportFixture(t, archiveOptions())
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	archive, err := f.svc.Archive(context.Background(), f.tenantID, nil)

	assert.Nil(t, archive)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestReportService_Archive_PresignFailsRemovesObject(t *testing.T) {
	f := newReportFixture(t, archiveOptions())
	f.settings.On("Get", mock.Anything, f.tenantID).Return(londonSettings(f.tenantID), nil)
	f.orders.On("ListForReport", mock.Anything, f.tenantID, mock.Anything, mock.Anything).Return(marchOrders(), nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "vat-archive", mock.Anything, int64(900)).
		Return("", errors.New("signing failed"))
	f.storage.On("Delete", mock.Anything, "vat-archive", mock.Anything).Return(nil)

	archive, err := f.svc.Archive(context.Background(), f.tenantID, nil)

	assert.Nil(t, archive)
	assert.ErrorContains(t, err, "signing failed")
	f.storage.AssertExpectations(t)
}

func TestReportService_Archive_NoStorage(t *testing.T) {
	svc := service.NewReportService(new(mocks.MockOrderRepo), new(mocks.MockTenantSettingsService), nil, archiveOptions())

	archive, err := svc.Archive(context.Background(), uuid.New(), nil)

	assert.Nil(t, archive)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}
