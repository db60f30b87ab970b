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

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/port"
	"pettag/internal/service"
	"pettag/mocks"
)

func newTicketService() (*mocks.MockTicketRepo, service.TicketService) {
	repo := new(mocks.MockTicketRepo)
	return repo, service.NewTicketService(repo, config.DefaultAdmin(), zap.NewNop())
}

func TestTicketService_List(t *testing.T) {
	repo, svc := newTicketService()

	repo.On("List", mock.Anything, port.TicketFilter{}, port.NewestFirst(50, 0)).
		Return([]domain.TicketWithRefs{{SupportTicket: domain.SupportTicket{ID: 3}, UserName: strPtr("Asha")}}, nil)

	tickets, err := svc.List(context.Background(), 50, 0)

	require.NoError(t, err)
	assert.Equal(t, "Asha", *tickets[0].UserName)
	repo.AssertExpectations(t)
}

func TestTicketService_Create_Defaults(t *testing.T) {
	repo, svc := newTicketService()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(tk *domain.SupportTicket) bool {
		return tk.Status == domain.TicketStatusOpen &&
			tk.Priority == domain.TicketPriorityMedium &&
			tk.Subject == "Tag not scanning" &&
			tk.ResolvedAt == nil
	})).Return(nil)

	ticket, err := svc.Create(context.Background(), service.CreateTicketInput{
		UserID:      int64Ptr(4),
		Subject:     " Tag not scanning ",
		Description: "The QR code shows an error page",
		Category:    domain.TicketCategoryTechnical,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	repo.AssertExpectations(t)
}

func TestTicketService_Create_Validation(t *testing.T) {
	badPriority := domain.TicketPriority("critical")
	cases := []struct {
		name  string
		input service.CreateTicketInput
		field string
	}{
		{"no subject", service.CreateTicketInput{Description: "d", Category: domain.TicketCategoryOther}, "subject"},
		{"no description", service.CreateTicketInput{Subject: "s", Category: domain.TicketCategoryOther}, "description"},
		{"bad category", service.CreateTicketInput{Subject: "s", Description: "d", Category: "spam"}, "category"},
		{"bad priority", service.CreateTicketInput{Subject: "s", Description: "d", Category: domain.TicketCategoryBilling, Priority: &badPriority}, "priority"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, svc := newTicketService()

			_, err := svc.Create(context.Background(), tc.input)

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTicketService_Update_TerminalStatusStampsResolvedAt(t *testing.T) {
	for _, status := range []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed} {
		t.Run(string(status), func(t *testing.T) {
			repo, svc := newTicketService()
			st := status
			before := time.Now().UTC()

			repo.On("Update", mock.Anything, int64(9), mock.MatchedBy(func(p domain.TicketPatch) bool {
				return p.Status != nil && *p.Status == st &&
					p.ResolvedAt != nil && !p.ResolvedAt.Before(before)
			})).Return(&domain.SupportTicket{ID: 9, Status: st}, nil).Once()

			ticket, err := svc.Update(context.Background(), 9, service.UpdateTicketInput{Status: &st})

			require.NoError(t, err)
			assert.Equal(t, st, ticket.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestTicketService_Update_NonTerminalClearsResolvedAt(t *testing.T) {
	repo, svc := newTicketService()
	status := domain.TicketStatusInProgress
	priority := domain.TicketPriorityHigh

	repo.On("Update", mock.Anything, int64(9), domain.TicketPatch{
		Status:          &status,
		Priority:        &priority,
		AdminID:         int64Ptr(2),
		ClearResolvedAt: true,
	}).Return(&domain.SupportTicket{ID: 9, Status: status}, nil)

	_, err := svc.Update(context.Background(), 9, service.UpdateTicketInput{
		Status:   &status,
		Priority: &priority,
		AdminID:  int64Ptr(2),
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTicketService_Update_ReopenClearsResolvedAt(t *testing.T) {
	repo, svc := newTicketService()
	open := domain.TicketStatusOpen

	repo.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(p domain.TicketPatch) bool {
		return p.Status != nil && *p.Status == open && p.ClearResolvedAt && p.ResolvedAt == nil
	})).Return(&domain.SupportTicket{ID: 4, Status: open}, nil)

	ticket, err := svc.Update(context.Background(), 4, service.UpdateTicketInput{Status: &open})

	require.NoError(t, err)
	assert.Nil(t, ticket.ResolvedAt)
	repo.AssertExpectations(t)
}

func TestTicketService_Update_PriorityOnlyKeepsResolvedAt(t *testing.T) {
	repo, svc := newTicketService()
	urgent := domain.TicketPriorityUrgent

	repo.On("Update", mock.Anything, int64(4), domain.TicketPatch{Priority: &urgent}).
		Return(&domain.SupportTicket{ID: 4, Priority: urgent}, nil)

	_, err := svc.Update(context.Background(), 4, service.UpdateTicketInput{Priority: &urgent})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTicketService_Update_Validation(t *testing.T) {
	badStatus := domain.TicketStatus("reopened")
	cases := []struct {
		name  string
		input service.UpdateTicketInput
	}{
		{"unknown status", service.UpdateTicketInput{Status: &badStatus}},
		{"bad admin", service.UpdateTicketInput{AdminID: int64Ptr(0)}},
		{"empty", service.UpdateTicketInput{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, svc := newTicketService()

			_, err := svc.Update(context.Background(), 9, tc.input)

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTicketService_Get_NotFound(t *testing.T) {
	repo, svc := newTicketService()

	repo.On("GetByID", mock.Anything, int64(1)).Return(nil, domain.NewNotFound(domain.EntitySupportTicket, 1))

	_, err := svc.Get(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
