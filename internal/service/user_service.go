package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/port"
)

// UserService defines the user management contract of the admin console.
type UserService interface {
	List(ctx context.Context, limit, offset int) ([]domain.UserWithSubscriptions, error)
	Search(ctx context.Context, query string) ([]domain.UserWithSubscriptions, error)
	UpdateStatus(ctx context.Context, userID int64, active bool) (*domain.User, error)
	Activate(ctx context.Context, userID int64) (*domain.User, error)
	Deactivate(ctx context.Context, userID int64) (*domain.User, error)
	GetDetails(ctx context.Context, userID int64) (*domain.UserDetails, error)
	ListWithSubscriptions(ctx context.Context) ([]domain.UserWithSubscriptions, error)
}

type userService struct {
	users  port.UserRepository
	pets   port.PetRepository
	subs   port.SubscriptionRepository
	limits config.AdminConfig
	log    *zap.Logger
}

// NewUserService creates a new UserService implementation.
func NewUserService(
	users port.UserRepository,
	pets port.PetRepository,
	subs port.SubscriptionRepository,
	limits config.AdminConfig,
	log *zap.Logger,
) UserService {
	return &userService{users: users, pets: pets, subs: subs, limits: limits, log: log}
}

// List returns a page of active users, newest first.
func (s *userService) List(ctx context.Context, limit, offset int) ([]domain.UserWithSubscriptions, error) {
	opts, err := pageOptions(s.limits, limit, offset)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, port.UserFilter{IsActive: ptr(true)}, opts)
	if err != nil {
		logFailure(s.log, "userService.List", 0, err)
		return nil, err
	}
	return users, nil
}

// Search matches active users by name, email or phone.
func (s *userService) Search(ctx context.Context, query string) ([]domain.UserWithSubscriptions, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidation("query", "must not be blank")
	}
	filter := port.UserFilter{IsActive: ptr(true), Search: query}
	users, err := s.users.List(ctx, filter, port.NewestFirst(s.limits.SearchLimit, 0))
	if err != nil {
		logFailure(s.log, "userService.Search", 0, err)
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateStatus(ctx context.Context, userID int64, active bool) (*domain.User, error) {
	return s.update(ctx, "userService.UpdateStatus", userID, domain.UserPatch{IsActive: ptr(active)})
}

// Activate enables the account and marks its email verified in one update.
func (s *userService) Activate(ctx context.Context, userID int64) (*domain.User, error) {
	patch := domain.UserPatch{
		IsActive:        ptr(true),
		EmailVerified:   ptr(true),
		EmailVerifiedAt: ptr(time.Now().UTC()),
	}
	return s.update(ctx, "userService.Activate", userID, patch)
}

func (s *userService) Deactivate(ctx context.Context, userID int64) (*domain.User, error) {
	return s.update(ctx, "userService.Deactivate", userID, domain.UserPatch{IsActive: ptr(false)})
}

func (s *userService) update(ctx context.Context, op string, userID int64, patch domain.UserPatch) (*domain.User, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	user, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		logFailure(s.log, op, userID, err)
		return nil, err
	}
	s.log.Info("user updated", zap.String("op", op), zap.Int64("id", userID), zap.Bool("is_active", user.IsActive))
	return user, nil
}

// GetDetails loads the user, their active pets and every subscription.
// The three reads are independent; any failure fails the whole call.
func (s *userService) GetDetails(ctx context.Context, userID int64) (*domain.UserDetails, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logFailure(s.log, "userService.GetDetails", userID, err)
		return nil, err
	}

	pets, err := s.pets.List(ctx, port.PetFilter{UserID: ptr(userID), IsActive: ptr(true)}, port.NewestFirst(0, 0))
	if err != nil {
		logFailure(s.log, "userService.GetDetails pets", userID, err)
		return nil, err
	}

	subs, err := s.subs.List(ctx, port.SubscriptionFilter{UserID: ptr(userID)}, port.NewestFirst(0, 0))
	if err != nil {
		logFailure(s.log, "userService.GetDetails subscriptions", userID, err)
		return nil, err
	}

	details := &domain.UserDetails{
		User:          *user,
		Pets:          make([]domain.Pet, 0, len(pets)),
		Subscriptions: make([]domain.Subscription, 0, len(subs)),
	}
	for i := range pets {
		details.Pets = append(details.Pets, pets[i].Pet)
	}
	for i := range subs {
		details.Subscriptions = append(details.Subscriptions, subs[i].Subscription)
	}
	return details, nil
}

// ListWithSubscriptions returns every user, active or not, newest first.
func (s *userService) ListWithSubscriptions(ctx context.Context) ([]domain.UserWithSubscriptions, error) {
	users, err := s.users.List(ctx, port.UserFilter{}, port.NewestFirst(0, 0))
	if err != nil {
		logFailure(s.log, "userService.ListWithSubscriptions", 0, err)
		return nil, err
	}
	return users, nil
}
