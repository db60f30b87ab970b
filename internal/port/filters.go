package port

import (
	"time"

	"pettag/internal/domain"
)

// Order columns accepted by the repositories.
const (
	OrderByCreatedAt = "created_at"
	OrderByScannedAt = "scanned_at"
	OrderByEndDate   = "end_date"
)

// ListOptions controls ordering and pagination. A zero Limit means no limit.
type ListOptions struct {
	OrderBy   string
	Ascending bool
	Limit     int
	Offset    int
}

// NewestFirst orders by creation time, newest first.
func NewestFirst(limit, offset int) ListOptions {
	return ListOptions{OrderBy: OrderByCreatedAt, Limit: limit, Offset: offset}
}

// UserFilter selects users. Search matches name, email or phone as a
// case-insensitive substring.
type UserFilter struct {
	IsActive *bool
	Search   string
}

// PetFilter selects pets.
type PetFilter struct {
	IsActive *bool
	UserID   *int64
}

// SubscriptionFilter selects subscriptions. EndDateOnOrBefore compares the
// date component only.
type SubscriptionFilter struct {
	Status            *domain.SubscriptionStatus
	UserID            *int64
	EndDateOnOrBefore *time.Time
}

// ScanFilter selects QR scans.
type ScanFilter struct {
	ScannedSince *time.Time
	PetID        *int64
}

// TicketFilter selects support tickets.
type TicketFilter struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	UserID   *int64
}
