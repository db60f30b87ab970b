package port

import (
	"context"
	"time"
)

// RenewalReminder carries what a renewal email needs to say.
type RenewalReminder struct {
	SubscriptionID int64
	PlanType       string
	EndDate        time.Time
	Amount         float64
	Currency       string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendRenewalReminder(ctx context.Context, toEmail, toName string, reminder RenewalReminder) error
}
