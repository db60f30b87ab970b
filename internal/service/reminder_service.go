package service

import (
	"context"

	"go.uber.org/zap"

	"pettag/internal/domain"
	"pettag/internal/port"
)

// ReminderService emails owners whose subscriptions are about to lapse.
type ReminderService interface {
	SendExpiryReminders(ctx context.Context, daysAhead int) (*domain.ReminderResult, error)
}

type reminderService struct {
	subs   SubscriptionService
	sender port.EmailSender
	log    *zap.Logger
}

// NewReminderService creates a new ReminderService implementation.
func NewReminderService(subs SubscriptionService, sender port.EmailSender, log *zap.Logger) ReminderService {
	return &reminderService{subs: subs, sender: sender, log: log}
}

// SendExpiryReminders sends one renewal reminder per expiring subscription.
// Owners whose account is inactive are skipped. A failed delivery is logged
// and counted; only a failure to load the subscriptions aborts the run.
func (s *reminderService) SendExpiryReminders(ctx context.Context, daysAhead int) (*domain.ReminderResult, error) {
	subs, err := s.subs.Expiring(ctx, daysAhead)
	if err != nil {
		return nil, err
	}

	result := &domain.ReminderResult{Considered: len(subs)}
	for i := range subs {
		sub := &subs[i]
		if !sub.Owner.IsActive || sub.Owner.Email == "" {
			result.Skipped++
			continue
		}

		reminder := port.RenewalReminder{
			SubscriptionID: sub.ID,
			PlanType:       string(sub.PlanType),
			EndDate:        sub.EndDate,
			Amount:         sub.Amount,
			Currency:       sub.Currency,
		}
		if err := s.sender.SendRenewalReminder(ctx, sub.Owner.Email, sub.Owner.Name, reminder); err != nil {
			s.log.Warn("renewal reminder failed",
				zap.Int64("subscription_id", sub.ID),
				zap.Int64("user_id", sub.Owner.ID),
				zap.Error(err),
			)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, sub.ID)
			continue
		}
		result.Sent++
	}

	s.log.Info("renewal reminders processed",
		zap.Int("considered", result.Considered),
		zap.Int("sent", result.Sent),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
