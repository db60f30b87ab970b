package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pettag/internal/domain"
	"pettag/internal/port"
)

// MockScanRepo is a mock implementation of port.ScanRepository.
type MockScanRepo struct {
	mock.Mock
}

func (m *MockScanRepo) List(ctx context.Context, filter port.ScanFilter, opts port.ListOptions) ([]domain.ScanWithPet, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScanWithPet), args.Error(1)
}

func (m *MockScanRepo) Count(ctx context.Context, filter port.ScanFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
