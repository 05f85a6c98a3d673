package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"vatledger/internal/csvexport"
	"vatledger/internal/domain"
	"vatledger/internal/port"
	"vatledger/internal/vat"
	"vatledger/internal/xlsxexport"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportOptions configures report rendering and archiving.
type ReportOptions struct {
	TopN          int
	CSVBOM        bool
	Bucket        string
	ArchivePrefix string
	PresignExpiry int64
}

// ReportService builds VAT reports and renders them for download or archive.
type ReportService interface {
	VATReport(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.VATReport, error)
	ExportCSV(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, w io.Writer) (string, error)
	ExportXLSX(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, w io.Writer) (string, error)
	Archive(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.ReportArchive, error)
}

type reportService struct {
	orders   port.OrderRepository
	settings TenantSettingsService
	storage  port.ObjectStorage
	opts     ReportOptions
	now      func() time.Time
}

// NewReportService creates a new ReportService. storage may be nil when archiving is disabled.
func NewReportService(
	orders port.OrderRepository,
	settings TenantSettingsService,
	storage port.ObjectStorage,
	opts ReportOptions,
) ReportService {
	if opts.TopN <= 0 {
		opts.TopN = vat.DefaultTopN
	}
	return &reportService{
		orders:   orders,
		settings: settings,
		storage:  storage,
		opts:     opts,
		now:      time.Now,
	}
}

// rendered is a computed report plus the tenant settings it should be displayed with.
type rendered struct {
	report   *domain.VATReport
	settings *domain.TenantSettings
	start    time.Time
}

func (s *reportService) build(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*rendered, error) {
	if filters == nil {
		filters = &domain.ReportFilters{}
	}
	if filters.Source != "" && !domain.ValidOrderSources[filters.Source] {
		return nil, domain.ErrInvalidOrderSource
	}
	if (filters.From == nil) != (filters.To == nil) {
		return nil, fmt.Errorf("%w: both 'from' and 'to' are required", domain.ErrInvalidDateRange)
	}

	settings, err := s.settings.Get(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("reportService.build settings: %w", err)
	}
	loc := settings.Location()

	f := vat.ReportFilter{Source: filters.Source, TopN: filters.TopN}
	if f.TopN <= 0 {
		f.TopN = s.opts.TopN
	}
	var from, to time.Time
	start := s.now().In(loc)
	if filters.From != nil {
		r, err := vat.NewDateRange(*filters.From, *filters.To, loc)
		if err != nil {
			return nil, err
		}
		f.Range = &r
		from, to, start = r.Start, r.End, r.Start
	}

	orders, err := s.orders.ListForReport(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reportService.build orders: %w", err)
	}

	report := vat.BuildReport(orders, f)
	if report.UnresolvedOrders > 0 {
		log.Printf("reportService.build: tenant %s has %d orders whose VAT could not be derived",
			tenantID, report.UnresolvedOrders)
	}
	return &rendered{report: report, settings: settings, start: start}, nil
}

func (s *reportService) VATReport(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.VATReport, error) {
	r, err := s.build(ctx, tenantID, filters)
	if err != nil {
		return nil, err
	}
	return r.report, nil
}

func (s *reportService) ExportCSV(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, w io.Writer) (string, error) {
	r, err := s.build(ctx, tenantID, filters)
	if err != nil {
		return "", err
	}
	if err := s.writeCSV(w, r); err != nil {
		return "", fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	return csvexport.BuildFilename(r.report.Source, r.start, "csv"), nil
}

func (s *reportService) writeCSV(w io.Writer, r *rendered) error {
	if s.opts.CSVBOM {
		if _, err := w.Write(csvexport.BOM); err != nil {
			return err
		}
	}
	cw := csvexport.NewWriter(w, r.settings.CurrencySymbol, r.settings.Location())
	if err := cw.WriteReport(r.report); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) ExportXLSX(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, w io.Writer) (string, error) {
	r, err := s.build(ctx, tenantID, filters)
	if err != nil {
		return "", err
	}
	if err := xlsxexport.Write(w, r.report, r.settings.CurrencySymbol, r.settings.Location()); err != nil {
		return "", fmt.Errorf("reportService.ExportXLSX: %w", err)
	}
	return csvexport.BuildFilename(r.report.Source, r.start, "xlsx"), nil
}

// Archive renders the CSV export, stores it in object storage and returns a presigned
// download link. An object whose link cannot be signed is removed again.
func (s *reportService) Archive(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.ReportArchive, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: no object storage configured", domain.ErrUploadFailed)
	}
	r, err := s.build(ctx, tenantID, filters)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.writeCSV(&buf, r); err != nil {
		return nil, fmt.Errorf("reportService.Archive render: %w", err)
	}

	generatedAt := s.now().UTC()
	filename := csvexport.BuildFilename(r.report.Source, r.start, "csv")
	key := fmt.Sprintf("%s/%s/%s/%s", s.opts.ArchivePrefix, tenantID, generatedAt.Format("20060102T150405Z"), filename)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.opts.Bucket,
		Key:         key,
		Body:        &buf,
		ContentType: ContentTypeCSV,
		Filename:    filename,
	}); err != nil {
		log.Printf("reportService.Archive: upload %s failed: %v", key, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.opts.Bucket, key, s.opts.PresignExpiry)
	if err != nil {
		if delErr := s.storage.Delete(ctx, s.opts.Bucket, key); delErr != nil {
			log.Printf("reportService.Archive: cleanup of %s failed: %v", key, delErr)
		}
		return nil, fmt.Errorf("reportService.Archive presign: %w", err)
	}

	return &domain.ReportArchive{
		Bucket:      s.opts.Bucket,
		Key:         key,
		Filename:    filename,
		DownloadURL: url,
		ExpiresAt:   generatedAt.Add(time.Duration(s.opts.PresignExpiry) * time.Second),
		OrderCount:  r.report.Summary.OrderCount,
		GeneratedAt: generatedAt,
	}, nil
}
