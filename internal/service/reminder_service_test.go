package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pettag/internal/domain"
	"pettag/internal/port"
	"pettag/internal/service"
	"pettag/mocks"
)

func expiringSub(id int64, owner domain.OwnerContact, end time.Time) domain.SubscriptionWithUser {
	return domain.SubscriptionWithUser{
		Subscription: domain.Subscription{
			ID:       id,
			PlanType: domain.PlanAnnual,
			Status:   domain.SubscriptionStatusActive,
			Amount:   499,
			Currency: domain.CurrencyINR,
			EndDate:  end,
		},
		Owner: owner,
	}
}

func TestReminderService_SendExpiryReminders(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)
	repo := new(mocks.MockSubscriptionRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewReminderService(service.NewSubscriptionService(repo, log), sender, log)

	end := time.Now().UTC().AddDate(0, 0, 2)
	asha := domain.OwnerContact{ID: 1, Name: "Asha", Email: "asha@example.com", IsActive: true}
	ravi := domain.OwnerContact{ID: 2, Name: "Ravi", Email: "ravi@example.com", IsActive: true}
	gone := domain.OwnerContact{ID: 3, Name: "Gone", Email: "gone@example.com", IsActive: false}

	repo.On("List", mock.Anything, mock.Anything, mock.Anything).Return([]domain.SubscriptionWithUser{
		expiringSub(10, asha, end),
		expiringSub(11, ravi, end),
		expiringSub(12, gone, end),
	}, nil)
	sender.On("SendRenewalReminder", mock.Anything, "asha@example.com", "Asha", port.RenewalReminder{
		SubscriptionID: 10, PlanType: "annual", EndDate: end, Amount: 499, Currency: domain.CurrencyINR,
	}).Return(nil)
	sender.On("SendRenewalReminder", mock.Anything, "ravi@example.com", "Ravi", mock.Anything).
		Return(errors.New("ses throttled"))

	result, err := svc.SendExpiryReminders(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, &domain.ReminderResult{
		Considered: 3,
		Sent:       1,
		Skipped:    1,
		Failed:     1,
		FailedIDs:  []int64{11},
	}, result)
	sender.AssertNotCalled(t, "SendRenewalReminder", mock.Anything, "gone@example.com", mock.Anything, mock.Anything)

	warnings := logs.FilterMessage("renewal reminder failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, int64(11), warnings[0].ContextMap()["subscription_id"])
}

func TestReminderService_RepositoryFailureAborts(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewReminderService(service.NewSubscriptionService(repo, zap.NewNop()), sender, zap.NewNop())

	repo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewRepositoryError("subscriptionRepo.List", domain.EntitySubscription, errors.New("down")))

	result, err := svc.SendExpiryReminders(context.Background(), 7)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRepository)
	sender.AssertNotCalled(t, "SendRenewalReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_NothingExpiring(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewReminderService(service.NewSubscriptionService(repo, zap.NewNop()), sender, zap.NewNop())

	result, err := svc.SendExpiryReminders(context.Background(), -1)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Considered)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
