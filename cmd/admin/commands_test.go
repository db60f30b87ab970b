package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/logger"
	"pettag/internal/port"
	"pettag/internal/service"
	"pettag/mocks"
)

type testApp struct {
	*app
	users   *mocks.MockUserRepo
	pets    *mocks.MockPetRepo
	subs    *mocks.MockSubscriptionRepo
	tickets *mocks.MockTicketRepo
	buf     *bytes.Buffer
}

func newTestApp() *testApp {
	log := zap.NewNop()
	limits := config.DefaultAdmin()
	t := &testApp{
		users:   new(mocks.MockUserRepo),
		pets:    new(mocks.MockPetRepo),
		subs:    new(mocks.MockSubscriptionRepo),
		tickets: new(mocks.MockTicketRepo),
		buf:     new(bytes.Buffer),
	}
	subSvc := service.NewSubscriptionService(t.subs, log)
	t.app = &app{
		users:   service.NewUserService(t.users, t.pets, t.subs, limits, log),
		pets:    service.NewPetService(t.pets, limits, log),
		subs:    subSvc,
		tickets: service.NewTicketService(t.tickets, limits, log),
		limits:  limits,
		out:     t.buf,
	}
	return t
}

func TestDispatch_UnknownCommand(t *testing.T) {
	a := newTestApp()

	err := a.dispatch(context.Background(), []string{"frobnicate"})

	assert.ErrorIs(t, err, errUsage)
}

func TestDispatch_UsersDefaultsPage(t *testing.T) {
	a := newTestApp()
	a.users.On("List", mock.Anything, mock.Anything, port.NewestFirst(50, 0)).
		Return([]domain.UserWithSubscriptions{{User: domain.User{ID: 1, Name: "Asha"}}}, nil)

	require.NoError(t, a.dispatch(context.Background(), []string{"users"}))

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(a.buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Asha", out[0]["name"])
}

func TestDispatch_SearchJoinsArguments(t *testing.T) {
	a := newTestApp()
	a.users.On("List", mock.Anything, mock.MatchedBy(func(f port.UserFilter) bool {
		return f.Search == "asha k"
	}), mock.Anything).Return([]domain.UserWithSubscriptions{}, nil)

	require.NoError(t, a.dispatch(context.Background(), []string{"search", "asha", "k"}))
	a.users.AssertExpectations(t)
}

func TestDispatch_BadIDIsValidationError(t *testing.T) {
	a := newTestApp()

	err := a.dispatch(context.Background(), []string{"user", "abc"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDispatch_MissingIDIsUsageError(t *testing.T) {
	a := newTestApp()

	err := a.dispatch(context.Background(), []string{"activate"})

	assert.ErrorIs(t, err, errUsage)
}

func TestDispatch_ResolveStampsResolvedAt(t *testing.T) {
	a := newTestApp()
	a.tickets.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(p domain.TicketPatch) bool {
		return p.Status != nil && *p.Status == domain.TicketStatusResolved && p.ResolvedAt != nil
	})).Return(&domain.SupportTicket{ID: 5, Status: domain.TicketStatusResolved}, nil)

	require.NoError(t, a.dispatch(context.Background(), []string{"resolve", "5"}))
	assert.Contains(t, a.buf.String(), `"status": "resolved"`)
}

func TestDispatch_PetUpdateRejectsUnknownFields(t *testing.T) {
	a := newTestApp()

	err := a.dispatch(context.Background(), []string{"pet-update", "3", `{"owner_id": 9}`})

	assert.ErrorIs(t, err, domain.ErrValidation)
	a.pets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_PetUpdate(t *testing.T) {
	a := newTestApp()
	lost := true
	a.pets.On("Update", mock.Anything, int64(3), domain.PetPatch{IsLost: &lost}).
		Return(&domain.PetWithOwner{Pet: domain.Pet{ID: 3, IsLost: true}}, nil)

	require.NoError(t, a.dispatch(context.Background(), []string{"pet-update", "3", `{"is_lost": true}`}))
	a.pets.AssertExpectations(t)
}

func TestDispatch_Subscribe(t *testing.T) {
	a := newTestApp()
	a.subs.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subscription) bool {
		return s.UserID == 4 && s.PlanType == domain.PlanMonthly && s.Amount == 99 &&
			s.StartDate.Format("2006-01-02") == "2024-03-01"
	})).Return(nil)

	err := a.dispatch(context.Background(), []string{"subscribe", "4", "monthly", "99", "2024-03-01", "2024-04-01"})

	require.NoError(t, err)
	a.subs.AssertExpectations(t)
}

func TestDispatch_SubscribeBadDate(t *testing.T) {
	a := newTestApp()

	err := a.dispatch(context.Background(), []string{"subscribe", "4", "monthly", "99", "01/03/2024", "2024-04-01"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDispatch_ExpiringNegativeDays(t *testing.T) {
	a := newTestApp()

	require.NoError(t, a.dispatch(context.Background(), []string{"expiring", "-5"}))
	assert.Equal(t, "[]\n", a.buf.String())
}

func TestReport_ExitCodes(t *testing.T) {
	assert.Equal(t, 2, report(domain.NewValidation("limit", "bad")))
	assert.Equal(t, 3, report(domain.NewNotFound(domain.EntityUser, 1)))
	assert.Equal(t, 1, report(domain.NewRepositoryError("op", domain.EntityUser, assert.AnError)))
}

func TestUsage_ListsCommands(t *testing.T) {
	var buf bytes.Buffer
	usage(&buf)

	assert.Contains(t, buf.String(), "export <revenue|expiring> <csv|xlsx> [days]")
	assert.Contains(t, buf.String(), "resolve <ticket-id>")
}

func TestDispatch_StdoutCarriesOnlyTheResult(t *testing.T) {
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	stdout, stderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	t.Cleanup(func() { os.Stdout, os.Stderr = stdout, stderr })

	zl, err := logger.New(config.LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	users := new(mocks.MockUserRepo)
	users.On("Update", mock.Anything, int64(7), mock.Anything).
		Return(&domain.User{ID: 7, IsActive: true, EmailVerified: true}, nil)
	limits := config.DefaultAdmin()
	a := &app{
		users:  service.NewUserService(users, new(mocks.MockPetRepo), new(mocks.MockSubscriptionRepo), limits, zl),
		limits: limits,
		out:    os.Stdout,
	}

	require.NoError(t, a.dispatch(context.Background(), []string{"activate", "7"}))
	_ = zl.Sync()
	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())

	gotOut, err := io.ReadAll(outR)
	require.NoError(t, err)
	gotErr, err := io.ReadAll(errR)
	require.NoError(t, err)

	var user map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(gotOut))
	require.NoError(t, dec.Decode(&user))
	assert.Equal(t, float64(7), user["id"])
	assert.False(t, dec.More())
	assert.Contains(t, string(gotErr), "user updated")
}
