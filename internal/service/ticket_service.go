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

// CreateTicketInput is the DTO for opening a support ticket.
type CreateTicketInput struct {
	UserID       *int64                 `json:"user_id"`
	PetID        *int64                 `json:"pet_id"`
	Subject      string                 `json:"subject"`
	Description  string                 `json:"description"`
	Category     domain.TicketCategory  `json:"category"`
	Priority     *domain.TicketPriority `json:"priority"`
	ContactEmail *string                `json:"contact_email"`
	ContactPhone *string                `json:"contact_phone"`
}

// UpdateTicketInput is the DTO for triaging a ticket.
type UpdateTicketInput struct {
	Status   *domain.TicketStatus   `json:"status"`
	Priority *domain.TicketPriority `json:"priority"`
	AdminID  *int64                 `json:"admin_id"`
}

// TicketService defines the support ticket contract.
type TicketService interface {
	List(ctx context.Context, limit, offset int) ([]domain.TicketWithRefs, error)
	Get(ctx context.Context, ticketID int64) (*domain.TicketWithRefs, error)
	Create(ctx context.Context, input CreateTicketInput) (*domain.SupportTicket, error)
	Update(ctx context.Context, ticketID int64, input UpdateTicketInput) (*domain.SupportTicket, error)
}

type ticketService struct {
	tickets port.TicketRepository
	limits  config.AdminConfig
	log     *zap.Logger
}

// NewTicketService creates a new TicketService implementation.
func NewTicketService(tickets port.TicketRepository, limits config.AdminConfig, log *zap.Logger) TicketService {
	return &ticketService{tickets: tickets, limits: limits, log: log}
}

func (s *ticketService) List(ctx context.Context, limit, offset int) ([]domain.TicketWithRefs, error) {
	opts, err := pageOptions(s.limits, limit, offset)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.List(ctx, port.TicketFilter{}, opts)
	if err != nil {
		logFailure(s.log, "ticketService.List", 0, err)
		return nil, err
	}
	return tickets, nil
}

func (s *ticketService) Get(ctx context.Context, ticketID int64) (*domain.TicketWithRefs, error) {
	if err := validateID("ticket_id", ticketID); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		logFailure(s.log, "ticketService.Get", ticketID, err)
		return nil, err
	}
	return ticket, nil
}

// Create opens a ticket. Priority defaults to medium.
func (s *ticketService) Create(ctx context.Context, input CreateTicketInput) (*domain.SupportTicket, error) {
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" {
		return nil, domain.NewValidation("subject", "is required")
	}
	if description == "" {
		return nil, domain.NewValidation("description", "is required")
	}
	if !domain.ValidTicketCategories[input.Category] {
		return nil, domain.NewValidation("category", "is not a known ticket category")
	}
	priority := domain.TicketPriorityMedium
	if input.Priority != nil {
		if !domain.ValidTicketPriorities[*input.Priority] {
			return nil, domain.NewValidation("priority", "is not a known ticket priority")
		}
		priority = *input.Priority
	}

	ticket := &domain.SupportTicket{
		UserID:       input.UserID,
		PetID:        input.PetID,
		Subject:      subject,
		Description:  description,
		Category:     input.Category,
		Priority:     priority,
		Status:       domain.TicketStatusOpen,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		logFailure(s.log, "ticketService.Create", 0, err)
		return nil, err
	}
	return ticket, nil
}

// Update applies triage changes. Moving a ticket into resolved or closed
// stamps resolved_at in the same update; any other status clears it.
func (s *ticketService) Update(ctx context.Context, ticketID int64, input UpdateTicketInput) (*domain.SupportTicket, error) {
	if err := validateID("ticket_id", ticketID); err != nil {
		return nil, err
	}
	if input.Status != nil && !domain.ValidTicketStatuses[*input.Status] {
		return nil, domain.NewValidation("status", "is not a known ticket status")
	}
	if input.Priority != nil && !domain.ValidTicketPriorities[*input.Priority] {
		return nil, domain.NewValidation("priority", "is not a known ticket priority")
	}
	if input.AdminID != nil {
		if err := validateID("admin_id", *input.AdminID); err != nil {
			return nil, err
		}
	}

	patch := domain.TicketPatch{
		Status:   input.Status,
		Priority: input.Priority,
		AdminID:  input.AdminID,
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidation("input", "has no fields to update")
	}
	if input.Status != nil {
		if input.Status.IsTerminal() {
			patch.ResolvedAt = ptr(time.Now().UTC())
		} else {
			patch.ClearResolvedAt = true
		}
	}

	ticket, err := s.tickets.Update(ctx, ticketID, patch)
	if err != nil {
		logFailure(s.log, "ticketService.Update", ticketID, err)
		return nil, err
	}
	return ticket, nil
}
