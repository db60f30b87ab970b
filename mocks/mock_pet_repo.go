package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pettag/internal/domain"
	"pettag/internal/port"
)

// MockPetRepo is a mock implementation of port.PetRepository.
type MockPetRepo struct {
	mock.Mock
}

func (m *MockPetRepo) GetByID(ctx context.Context, id int64) (*domain.PetWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PetWithOwner), args.Error(1)
}

func (m *MockPetRepo) List(ctx context.Context, filter port.PetFilter, opts port.ListOptions) ([]domain.PetWithOwner, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PetWithOwner), args.Error(1)
}

func (m *MockPetRepo) Count(ctx context.Context, filter port.PetFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockPetRepo) Update(ctx context.Context, id int64, patch domain.PetPatch) (*domain.PetWithOwner, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PetWithOwner), args.Error(1)
}
