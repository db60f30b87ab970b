package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pettag/internal/domain"
	"pettag/internal/port"
)

// MockSubscriptionRepo is a mock implementation of port.SubscriptionRepository.
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepo) GetByID(ctx context.Context, id int64) (*domain.SubscriptionWithUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionWithUser), args.Error(1)
}

func (m *MockSubscriptionRepo) List(ctx context.Context, filter port.SubscriptionFilter, opts port.ListOptions) ([]domain.SubscriptionWithUser, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubscriptionWithUser), args.Error(1)
}

func (m *MockSubscriptionRepo) Count(ctx context.Context, filter port.SubscriptionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSubscriptionRepo) Update(ctx context.Context, id int64, patch domain.SubscriptionPatch) (*domain.SubscriptionWithUser, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionWithUser), args.Error(1)
}
