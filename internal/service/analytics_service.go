package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pettag/internal/analytics"
	"pettag/internal/domain"
	"pettag/internal/port"
)

// AnalyticsService provides the dashboard, scan and revenue reports.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	ScanAnalytics(ctx context.Context, days int) (*domain.ScanAnalytics, error)
	RevenueAnalytics(ctx context.Context) (*domain.RevenueAnalytics, error)
}

type analyticsService struct {
	users port.UserRepository
	pets  port.PetRepository
	subs  port.SubscriptionRepository
	scans port.ScanRepository
	log   *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService implementation.
func NewAnalyticsService(
	users port.UserRepository,
	pets port.PetRepository,
	subs port.SubscriptionRepository,
	scans port.ScanRepository,
	log *zap.Logger,
) AnalyticsService {
	return &analyticsService{users: users, pets: pets, subs: subs, scans: scans, log: log}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	var counts domain.DashboardCounts
	var err error

	if counts.ActiveUsers, err = s.users.Count(ctx, port.UserFilter{IsActive: ptr(true)}); err != nil {
		logFailure(s.log, "analyticsService.Dashboard users", 0, err)
		return nil, err
	}
	if counts.ActivePets, err = s.pets.Count(ctx, port.PetFilter{IsActive: ptr(true)}); err != nil {
		logFailure(s.log, "analyticsService.Dashboard pets", 0, err)
		return nil, err
	}
	active := port.SubscriptionFilter{Status: ptr(domain.SubscriptionStatusActive)}
	if counts.ActiveSubscriptions, err = s.subs.Count(ctx, active); err != nil {
		logFailure(s.log, "analyticsService.Dashboard subscriptions", 0, err)
		return nil, err
	}
	if counts.TotalScans, err = s.scans.Count(ctx, port.ScanFilter{}); err != nil {
		logFailure(s.log, "analyticsService.Dashboard scans", 0, err)
		return nil, err
	}

	rows, err := s.subs.List(ctx, active, port.NewestFirst(0, 0))
	if err != nil {
		logFailure(s.log, "analyticsService.Dashboard revenue", 0, err)
		return nil, err
	}

	summary := analytics.DashboardSummary(counts, plainSubscriptions(rows))
	return &summary, nil
}

// ScanAnalytics reports on the scans of the trailing days.
func (s *analyticsService) ScanAnalytics(ctx context.Context, days int) (*domain.ScanAnalytics, error) {
	if days <= 0 {
		return nil, domain.NewValidation("days", "must be positive")
	}

	since := analytics.ScanWindowStart(time.Now(), days)
	opts := port.ListOptions{OrderBy: port.OrderByScannedAt}
	scans, err := s.scans.List(ctx, port.ScanFilter{ScannedSince: &since}, opts)
	if err != nil {
		logFailure(s.log, "analyticsService.ScanAnalytics", 0, err)
		return nil, err
	}

	report := analytics.ScanAnalytics(scans, days)
	return &report, nil
}

func (s *analyticsService) RevenueAnalytics(ctx context.Context) (*domain.RevenueAnalytics, error) {
	rows, err := s.subs.List(ctx, port.SubscriptionFilter{}, port.NewestFirst(0, 0))
	if err != nil {
		logFailure(s.log, "analyticsService.RevenueAnalytics", 0, err)
		return nil, err
	}

	report := analytics.RevenueAnalytics(plainSubscriptions(rows))
	return &report, nil
}

func plainSubscriptions(rows []domain.SubscriptionWithUser) []domain.Subscription {
	out := make([]domain.Subscription, len(rows))
	for i := range rows {
		out[i] = rows[i].Subscription
	}
	return out
}
