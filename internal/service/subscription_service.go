package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pettag/internal/analytics"
	"pettag/internal/domain"
	"pettag/internal/port"
)

// CreateSubscriptionInput is the DTO for creating a subscription.
type CreateSubscriptionInput struct {
	PlanType         domain.PlanType `json:"plan_type"`
	Amount           float64         `json:"amount"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	PaymentMethod    *string         `json:"payment_method"`
	PaymentReference *string         `json:"payment_reference"`
}

// UpdateSubscriptionInput is the DTO for renewing or amending a subscription.
type UpdateSubscriptionInput struct {
	Status           *domain.SubscriptionStatus `json:"status"`
	StartDate        *time.Time                 `json:"start_date"`
	EndDate          *time.Time                 `json:"end_date"`
	Amount           *float64                   `json:"amount"`
	PaymentMethod    *string                    `json:"payment_method"`
	PaymentReference *string                    `json:"payment_reference"`
}

// SubscriptionService defines the subscription billing contract.
type SubscriptionService interface {
	Create(ctx context.Context, userID int64, input CreateSubscriptionInput) (*domain.Subscription, error)
	Get(ctx context.Context, subscriptionID int64) (*domain.SubscriptionWithUser, error)
	UpdateStatus(ctx context.Context, subscriptionID int64, status domain.SubscriptionStatus) (*domain.SubscriptionWithUser, error)
	Update(ctx context.Context, subscriptionID int64, input UpdateSubscriptionInput) (*domain.SubscriptionWithUser, error)
	List(ctx context.Context) ([]domain.SubscriptionWithUser, error)
	Expiring(ctx context.Context, daysAhead int) ([]domain.SubscriptionWithUser, error)
}

type subscriptionService struct {
	subs port.SubscriptionRepository
	log  *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService implementation.
func NewSubscriptionService(subs port.SubscriptionRepository, log *zap.Logger) SubscriptionService {
	return &subscriptionService{subs: subs, log: log}
}

// Create starts an active subscription billed in INR.
func (s *subscriptionService) Create(ctx context.Context, userID int64, input CreateSubscriptionInput) (*domain.Subscription, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	if !domain.ValidPlanTypes[input.PlanType] {
		return nil, domain.NewValidation("plan_type", "must be annual or monthly")
	}
	if input.Amount <= 0 {
		return nil, domain.NewValidation("amount", "must be positive")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, domain.NewValidation("dates", "start_date and end_date are required")
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		UserID:           userID,
		PlanType:         input.PlanType,
		Status:           domain.SubscriptionStatusActive,
		Amount:           input.Amount,
		Currency:         domain.CurrencyINR,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		logFailure(s.log, "subscriptionService.Create", userID, err)
		return nil, err
	}

	s.log.Info("subscription created",
		zap.Int64("id", sub.ID),
		zap.Int64("user_id", userID),
		zap.String("plan_type", string(sub.PlanType)),
	)
	return sub, nil
}

func (s *subscriptionService) Get(ctx context.Context, subscriptionID int64) (*domain.SubscriptionWithUser, error) {
	if err := validateID("subscription_id", subscriptionID); err != nil {
		return nil, err
	}
	sub, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		logFailure(s.log, "subscriptionService.Get", subscriptionID, err)
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) UpdateStatus(ctx context.Context, subscriptionID int64, status domain.SubscriptionStatus) (*domain.SubscriptionWithUser, error) {
	return s.Update(ctx, subscriptionID, UpdateSubscriptionInput{Status: &status})
}

func (s *subscriptionService) Update(ctx context.Context, subscriptionID int64, input UpdateSubscriptionInput) (*domain.SubscriptionWithUser, error) {
	if err := validateID("subscription_id", subscriptionID); err != nil {
		return nil, err
	}
	if input.Status != nil && !domain.ValidSubscriptionStatuses[*input.Status] {
		return nil, domain.NewValidation("status", "is not a known subscription status")
	}
	if input.Amount != nil && *input.Amount <= 0 {
		return nil, domain.NewValidation("amount", "must be positive")
	}
	if input.StartDate != nil && input.EndDate != nil {
		if err := validateDateRange(*input.StartDate, *input.EndDate); err != nil {
			return nil, err
		}
	}

	patch := domain.SubscriptionPatch{
		Status:           input.Status,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Amount:           input.Amount,
		PaymentMethod:    input.PaymentMethod,
		PaymentReference: input.PaymentReference,
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidation("input", "has no fields to update")
	}
	if (input.StartDate == nil) != (input.EndDate == nil) {
		if err := s.checkAgainstStored(ctx, subscriptionID, input.StartDate, input.EndDate); err != nil {
			return nil, err
		}
	}

	sub, err := s.subs.Update(ctx, subscriptionID, patch)
	if err != nil {
		logFailure(s.log, "subscriptionService.Update", subscriptionID, err)
		return nil, err
	}
	return sub, nil
}

// List returns every subscription, newest first, with its owner.
func (s *subscriptionService) List(ctx context.Context) ([]domain.SubscriptionWithUser, error) {
	subs, err := s.subs.List(ctx, port.SubscriptionFilter{}, port.NewestFirst(0, 0))
	if err != nil {
		logFailure(s.log, "subscriptionService.List", 0, err)
		return nil, err
	}
	return subs, nil
}

// Expiring returns active subscriptions ending within daysAhead days, the
// soonest first. A negative horizon returns nothing without a query.
func (s *subscriptionService) Expiring(ctx context.Context, daysAhead int) ([]domain.SubscriptionWithUser, error) {
	if daysAhead < 0 {
		return []domain.SubscriptionWithUser{}, nil
	}

	now := time.Now()
	filter := port.SubscriptionFilter{
		Status:            ptr(domain.SubscriptionStatusActive),
		EndDateOnOrBefore: ptr(analytics.ExpiryCutoff(now, daysAhead)),
	}
	opts := port.ListOptions{OrderBy: port.OrderByEndDate, Ascending: true}

	subs, err := s.subs.List(ctx, filter, opts)
	if err != nil {
		logFailure(s.log, "subscriptionService.Expiring", 0, err)
		return nil, err
	}
	return analytics.ExpiringSubscriptions(subs, now, daysAhead), nil
}

// checkAgainstStored validates a one-sided date change against the stored
// counterpart date.
func (s *subscriptionService) checkAgainstStored(ctx context.Context, subscriptionID int64, start, end *time.Time) error {
	current, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		logFailure(s.log, "subscriptionService.Update", subscriptionID, err)
		return err
	}
	if start == nil {
		start = &current.StartDate
	}
	if end == nil {
		end = &current.EndDate
	}
	return validateDateRange(*start, *end)
}

// validateDateRange compares calendar dates in UTC.
func validateDateRange(start, end time.Time) error {
	y1, m1, d1 := start.UTC().Date()
	y2, m2, d2 := end.UTC().Date()
	if time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC).Before(time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)) {
		return domain.NewValidation("end_date", "must not be before start_date")
	}
	return nil
}
