package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pettag/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRenewalReminder(ctx context.Context, toEmail, toName string, reminder port.RenewalReminder) error {
	args := m.Called(ctx, toEmail, toName, reminder)
	return args.Error(0)
}
