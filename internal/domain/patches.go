package domain

import "time"

// UserPatch enumerates the user columns the admin layer may change.
// Nil fields are left untouched.
type UserPatch struct {
	IsActive        *bool
	EmailVerified   *bool
	EmailVerifiedAt *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.IsActive == nil && p.EmailVerified == nil && p.EmailVerifiedAt == nil
}

// PetPatch enumerates the pet columns the admin layer may change.
type PetPatch struct {
	Name          *string
	Username      *string
	Type          *PetType
	Breed         *string
	Age           *string
	Color         *string
	Description   *string
	PhotoURL      *string
	ShowPhone     *bool
	ShowWhatsApp  *bool
	ShowInstagram *bool
	ShowAddress   *bool
	IsActive      *bool
	IsLost        *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PetPatch) IsEmpty() bool {
	return p.Name == nil && p.Username == nil && p.Type == nil && p.Breed == nil &&
		p.Age == nil && p.Color == nil && p.Description == nil && p.PhotoURL == nil &&
		p.ShowPhone == nil && p.ShowWhatsApp == nil && p.ShowInstagram == nil &&
		p.ShowAddress == nil && p.IsActive == nil && p.IsLost == nil
}

// SubscriptionPatch enumerates the subscription columns the admin layer may change.
type SubscriptionPatch struct {
	Status           *SubscriptionStatus
	StartDate        *time.Time
	EndDate          *time.Time
	Amount           *float64
	PaymentMethod    *string
	PaymentReference *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SubscriptionPatch) IsEmpty() bool {
	return p.Status == nil && p.StartDate == nil && p.EndDate == nil &&
		p.Amount == nil && p.PaymentMethod == nil && p.PaymentReference == nil
}

// TicketPatch enumerates the ticket columns the admin layer may change.
// ResolvedAt and ClearResolvedAt are derived from Status by the service, never
// supplied by callers. ClearResolvedAt wins over ResolvedAt.
type TicketPatch struct {
	Status          *TicketStatus
	AdminID         *int64
	Priority        *TicketPriority
	ResolvedAt      *time.Time
	ClearResolvedAt bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TicketPatch) IsEmpty() bool {
	return p.Status == nil && p.AdminID == nil && p.Priority == nil && p.ResolvedAt == nil && !p.ClearResolvedAt
}
