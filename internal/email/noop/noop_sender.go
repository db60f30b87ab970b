package noop

import (
	"context"

	"go.uber.org/zap"

	"pettag/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates an EmailSender that only logs what it would send.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendRenewalReminder(_ context.Context, toEmail, toName string, reminder port.RenewalReminder) error {
	s.log.Info("noop email: renewal reminder",
		zap.String("to", toEmail),
		zap.String("name", toName),
		zap.Int64("subscription_id", reminder.SubscriptionID),
		zap.Time("end_date", reminder.EndDate),
	)
	return nil
}
