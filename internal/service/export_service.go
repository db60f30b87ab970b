package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pettag/internal/domain"
	"pettag/internal/export"
	"pettag/internal/port"
)

// ExportService archives reports to object storage.
type ExportService interface {
	ExportRevenue(ctx context.Context, format string) (*domain.ExportResult, error)
	ExportExpiring(ctx context.Context, daysAhead int, format string) (*domain.ExportResult, error)
}

type exportService struct {
	analytics     AnalyticsService
	subs          SubscriptionService
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
	log           *zap.Logger
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	analytics AnalyticsService,
	subs SubscriptionService,
	storage port.ObjectStorage,
	bucket string,
	presignExpirySeconds int64,
	log *zap.Logger,
) ExportService {
	return &exportService{
		analytics:     analytics,
		subs:          subs,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpirySeconds,
		log:           log,
	}
}

func (s *exportService) ExportRevenue(ctx context.Context, format string) (*domain.ExportResult, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	report, err := s.analytics.RevenueAnalytics(ctx)
	if err != nil {
		return nil, err
	}
	return s.archive(ctx, "revenue", f, export.RevenueTable(*report), len(report.RevenueByMonth))
}

func (s *exportService) ExportExpiring(ctx context.Context, daysAhead int, format string) (*domain.ExportResult, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	subs, err := s.subs.Expiring(ctx, daysAhead)
	if err != nil {
		return nil, err
	}
	return s.archive(ctx, "expiring", f, export.ExpiringTable(subs), len(subs))
}

// archive renders the table and stores it under reports/<kind>/<date>/<uuid>.<ext>.
func (s *exportService) archive(ctx context.Context, kind string, f export.Format, table export.Table, rows int) (*domain.ExportResult, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, f, table); err != nil {
		return nil, fmt.Errorf("rendering %s report: %w", kind, err)
	}

	key := fmt.Sprintf("reports/%s/%s/%s.%s", kind, time.Now().UTC().Format("2006-01-02"), uuid.New().String(), f)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: f.ContentType(),
		Size:        int64(buf.Len()),
	})
	if err != nil {
		s.log.Error("report upload failed", zap.String("kind", kind), zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("uploading %s report: %w", kind, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		s.log.Error("report presign failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("presigning %s report: %w", kind, err)
	}

	s.log.Info("report exported", zap.String("kind", kind), zap.String("key", key), zap.Int("rows", rows))
	return &domain.ExportResult{
		Key:          key,
		Location:     out.Location,
		DownloadURL:  url,
		ContentType:  f.ContentType(),
		RowsExported: rows,
	}, nil
}
