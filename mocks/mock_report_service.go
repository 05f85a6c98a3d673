package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vatledger/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) VATReport(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.VATReport, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATReport), args.Error(1)
}

// ExportCSV writes the string passed as the third Return value, if any, to w.
func (m *MockReportService) ExportCSV(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, w io.Writer) (string, error) {
	args := m.Called(ctx, tenantID, filters, w)
	if len(args) > 2 {
		_, _ = io.WriteString(w, args.String(2))
	}
	return args.String(0), args.Error(1)
}

// ExportXLSX writes the string passed as the third Return value, if any, to w.
func (m *MockReportService) ExportXLSX(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, w io.Writer) (string, error) {
	args := m.Called(ctx, tenantID, filters, w)
	if len(args) > 2 {
		_, _ = io.WriteString(w, args.String(2))
	}
	return args.String(0), args.Error(1)
}

func (m *MockReportService) Archive(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.ReportArchive, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportArchive), args.Error(1)
}
