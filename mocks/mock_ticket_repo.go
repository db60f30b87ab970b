package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pettag/internal/domain"
	"pettag/internal/port"
)

// MockTicketRepo is a mock implementation of port.TicketRepository.
type MockTicketRepo struct {
	mock.Mock
}

func (m *MockTicketRepo) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepo) GetByID(ctx context.Context, id int64) (*domain.TicketWithRefs, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketWithRefs), args.Error(1)
}

func (m *MockTicketRepo) List(ctx context.Context, filter port.TicketFilter, opts port.ListOptions) ([]domain.TicketWithRefs, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketWithRefs), args.Error(1)
}

func (m *MockTicketRepo) Count(ctx context.Context, filter port.TicketFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepo) Update(ctx context.Context, id int64, patch domain.TicketPatch) (*domain.SupportTicket, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}
