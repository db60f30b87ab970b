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

	"pettag/internal/domain"
	"pettag/internal/port"
	"pettag/internal/service"
	"pettag/mocks"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubscriptionService_Create(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subscription) bool {
		return s.UserID == 5 &&
			s.Status == domain.SubscriptionStatusActive &&
			s.Currency == domain.CurrencyINR &&
			s.PlanType == domain.PlanAnnual &&
			s.Amount == 999
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Subscription).ID = 77
	}).Return(nil)

	sub, err := svc.Create(context.Background(), 5, service.CreateSubscriptionInput{
		PlanType:  domain.PlanAnnual,
		Amount:    999,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 12, 31),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), sub.ID)
	assert.Equal(t, domain.SubscriptionStatusActive, sub.Status)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Create_SameDayRangeAllowed(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), 5, service.CreateSubscriptionInput{
		PlanType:  domain.PlanMonthly,
		Amount:    99,
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 3, 1),
	})

	assert.NoError(t, err)
}

func TestSubscriptionService_Create_Validation(t *testing.T) {
	valid := service.CreateSubscriptionInput{
		PlanType:  domain.PlanMonthly,
		Amount:    99,
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 4, 1),
	}
	cases := []struct {
		name   string
		userID int64
		mutate func(in *service.CreateSubscriptionInput)
		field  string
	}{
		{"bad user", 0, func(in *service.CreateSubscriptionInput) {}, "user_id"},
		{"unknown plan", 5, func(in *service.CreateSubscriptionInput) { in.PlanType = "weekly" }, "plan_type"},
		{"zero amount", 5, func(in *service.CreateSubscriptionInput) { in.Amount = 0 }, "amount"},
		{"negative amount", 5, func(in *service.CreateSubscriptionInput) { in.Amount = -10 }, "amount"},
		{"missing end", 5, func(in *service.CreateSubscriptionInput) { in.EndDate = time.Time{} }, "dates"},
		{"end before start", 5, func(in *service.CreateSubscriptionInput) { in.EndDate = date(2024, 2, 28) }, "end_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockSubscriptionRepo)
			svc := service.NewSubscriptionService(repo, zap.NewNop())
			in := valid
			tc.mutate(&in)

			sub, err := svc.Create(context.Background(), tc.userID, in)

			assert.Nil(t, sub)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubscriptionService_UpdateStatus(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())
	status := domain.SubscriptionStatusCancelled

	repo.On("Update", mock.Anything, int64(12), domain.SubscriptionPatch{Status: &status}).
		Return(&domain.SubscriptionWithUser{Subscription: domain.Subscription{ID: 12, Status: status}}, nil)

	sub, err := svc.UpdateStatus(context.Background(), 12, status)

	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionStatusCancelled, sub.Status)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_UpdateStatus_UnknownStatus(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), 12, domain.SubscriptionStatus("paused"))

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionService_Update_Renewal(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())
	end := date(2025, 12, 31)
	amount := 1099.0

	repo.On("GetByID", mock.Anything, int64(12)).Return(&domain.SubscriptionWithUser{Subscription: domain.Subscription{
		ID: 12, StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 31),
	}}, nil)
	repo.On("Update", mock.Anything, int64(12), domain.SubscriptionPatch{
		EndDate:          &end,
		Amount:           &amount,
		PaymentReference: strPtr("pay_123"),
	}).Return(&domain.SubscriptionWithUser{Subscription: domain.Subscription{ID: 12, EndDate: end}}, nil)

	sub, err := svc.Update(context.Background(), 12, service.UpdateSubscriptionInput{
		EndDate:          &end,
		Amount:           &amount,
		PaymentReference: strPtr("pay_123"),
	})

	require.NoError(t, err)
	assert.Equal(t, end, sub.EndDate)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Update_Validation(t *testing.T) {
	start := date(2024, 6, 1)
	end := date(2024, 5, 1)
	zero := 0.0
	cases := []struct {
		name  string
		input service.UpdateSubscriptionInput
	}{
		{"reversed dates", service.UpdateSubscriptionInput{StartDate: &start, EndDate: &end}},
		{"zero amount", service.UpdateSubscriptionInput{Amount: &zero}},
		{"empty", service.UpdateSubscriptionInput{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockSubscriptionRepo)
			svc := service.NewSubscriptionService(repo, zap.NewNop())

			_, err := svc.Update(context.Background(), 12, tc.input)

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubscriptionService_Update_OneSidedDateCheckedAgainstStoredRow(t *testing.T) {
	stored := &domain.SubscriptionWithUser{Subscription: domain.Subscription{
		ID: 12, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 30),
	}}
	early := date(2024, 5, 15)
	late := date(2024, 7, 15)
	cases := []struct {
		name  string
		input service.UpdateSubscriptionInput
	}{
		{"end before stored start", service.UpdateSubscriptionInput{EndDate: &early}},
		{"start after stored end", service.UpdateSubscriptionInput{StartDate: &late}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockSubscriptionRepo)
			svc := service.NewSubscriptionService(repo, zap.NewNop())
			repo.On("GetByID", mock.Anything, int64(12)).Return(stored, nil)

			_, err := svc.Update(context.Background(), 12, tc.input)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "end_date", vErr.Field)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubscriptionService_Update_OneSidedDateMissingRow(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())
	end := date(2025, 1, 1)
	repo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, domain.NewNotFound(domain.EntitySubscription, 99))

	_, err := svc.Update(context.Background(), 99, service.UpdateSubscriptionInput{EndDate: &end})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionService_List(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())

	repo.On("List", mock.Anything, port.SubscriptionFilter{}, port.NewestFirst(0, 0)).
		Return([]domain.SubscriptionWithUser{{Subscription: domain.Subscription{ID: 1}}}, nil)

	subs, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, subs, 1)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Expiring(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())
	today := time.Now().UTC()

	soon := domain.SubscriptionWithUser{Subscription: domain.Subscription{
		ID: 1, Status: domain.SubscriptionStatusActive, EndDate: today.AddDate(0, 0, 3),
	}}
	sooner := domain.SubscriptionWithUser{Subscription: domain.Subscription{
		ID: 2, Status: domain.SubscriptionStatusActive, EndDate: today.AddDate(0, 0, 1),
	}}

	repo.On("List", mock.Anything, mock.MatchedBy(func(f port.SubscriptionFilter) bool {
		return f.Status != nil && *f.Status == domain.SubscriptionStatusActive &&
			f.EndDateOnOrBefore != nil && f.UserID == nil
	}), port.ListOptions{OrderBy: port.OrderByEndDate, Ascending: true}).
		Return([]domain.SubscriptionWithUser{soon, sooner}, nil)

	subs, err := svc.Expiring(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, int64(2), subs[0].ID)
	assert.Equal(t, int64(1), subs[1].ID)
}

func TestSubscriptionService_Expiring_NegativeHorizon(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())

	subs, err := svc.Expiring(context.Background(), -1)

	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionService_Expiring_RepositoryError(t *testing.T) {
	repo := new(mocks.MockSubscriptionRepo)
	svc := service.NewSubscriptionService(repo, zap.NewNop())

	repo.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewRepositoryError("subscriptionRepo.List", domain.EntitySubscription, context.DeadlineExceeded))

	_, err := svc.Expiring(context.Background(), 30)

	assert.ErrorIs(t, err, domain.ErrRepository)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
