package port

import (
	"context"

	"pettag/internal/domain"
)

// Every repository returns a *domain.NotFoundError when a single-row lookup
// matches nothing and a *domain.RepositoryError for any backend failure.

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter UserFilter, opts ListOptions) ([]domain.UserWithSubscriptions, error)
	Count(ctx context.Context, filter UserFilter) (int, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
}

// PetRepository defines the contract for pet persistence.
type PetRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PetWithOwner, error)
	List(ctx context.Context, filter PetFilter, opts ListOptions) ([]domain.PetWithOwner, error)
	Count(ctx context.Context, filter PetFilter) (int, error)
	Update(ctx context.Context, id int64, patch domain.PetPatch) (*domain.PetWithOwner, error)
}

// SubscriptionRepository defines the contract for subscription persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id int64) (*domain.SubscriptionWithUser, error)
	List(ctx context.Context, filter SubscriptionFilter, opts ListOptions) ([]domain.SubscriptionWithUser, error)
	Count(ctx context.Context, filter SubscriptionFilter) (int, error)
	Update(ctx context.Context, id int64, patch domain.SubscriptionPatch) (*domain.SubscriptionWithUser, error)
}

// ScanRepository provides read access to QR scan events.
type ScanRepository interface {
	List(ctx context.Context, filter ScanFilter, opts ListOptions) ([]domain.ScanWithPet, error)
	Count(ctx context.Context, filter ScanFilter) (int, error)
}

// TicketRepository defines the contract for support ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, id int64) (*domain.TicketWithRefs, error)
	List(ctx context.Context, filter TicketFilter, opts ListOptions) ([]domain.TicketWithRefs, error)
	Count(ctx context.Context, filter TicketFilter) (int, error)
	Update(ctx context.Context, id int64, patch domain.TicketPatch) (*domain.SupportTicket, error)
}
