package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pettag/internal/domain"
	"pettag/internal/port"
)

var ticketOrderColumns = map[string]string{
	port.OrderByCreatedAt: "t.created_at",
}

const ticketSelect = `SELECT t.*, u.name AS user_name, u.email AS user_email,
	p.name AS pet_name, p.username AS pet_username, a.name AS admin_name
	FROM support_tickets t
	LEFT JOIN users u ON u.id = t.user_id
	LEFT JOIN pets p ON p.id = t.pet_id
	LEFT JOIN admins a ON a.id = t.admin_id`

type ticketRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewTicketRepo creates a new PostgreSQL-backed TicketRepository.
func NewTicketRepo(db *sqlx.DB, timeout time.Duration) port.TicketRepository {
	return &ticketRepo{db: db, timeout: timeout}
}

func ticketConditions(q *queryArgs, filter port.TicketFilter) []string {
	var conds []string
	if filter.Status != nil {
		conds = append(conds, "t.status = "+q.next(string(*filter.Status)))
	}
	if filter.Priority != nil {
		conds = append(conds, "t.priority = "+q.next(string(*filter.Priority)))
	}
	if filter.UserID != nil {
		conds = append(conds, "t.user_id = "+q.next(*filter.UserID))
	}
	return conds
}

func ticketPatchSet(q *queryArgs, patch domain.TicketPatch) *setBuilder {
	s := &setBuilder{q: q}
	if patch.Status != nil {
		s.set("status", string(*patch.Status))
	}
	if patch.AdminID != nil {
		s.set("admin_id", *patch.AdminID)
	}
	if patch.Priority != nil {
		s.set("priority", string(*patch.Priority))
	}
	switch {
	case patch.ClearResolvedAt:
		s.setNull("resolved_at")
	case patch.ResolvedAt != nil:
		s.set("resolved_at", patch.ResolvedAt.UTC())
	}
	return s
}

func (r *ticketRepo) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO support_tickets (user_id, pet_id, subject, description, category,
		priority, status, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		ticket.UserID, ticket.PetID, ticket.Subject, ticket.Description, string(ticket.Category),
		string(ticket.Priority), string(ticket.Status), ticket.ContactEmail, ticket.ContactPhone,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return domain.NewRepositoryError("ticketRepo.Create", domain.EntitySupportTicket, err)
	}
	return nil
}

func (r *ticketRepo) GetByID(ctx context.Context, id int64) (*domain.TicketWithRefs, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var ticket domain.TicketWithRefs
	if err := r.db.GetContext(ctx, &ticket, ticketSelect+" WHERE t.id = $1", id); err != nil {
		return nil, mapGetErr("ticketRepo.GetByID", domain.EntitySupportTicket, id, err)
	}
	return &ticket, nil
}

func (r *ticketRepo) List(ctx context.Context, filter port.TicketFilter, opts port.ListOptions) ([]domain.TicketWithRefs, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	where := whereClause(ticketConditions(q, filter))
	order, err := orderClause(q, opts, ticketOrderColumns, "t.id")
	if err != nil {
		return nil, domain.NewRepositoryError("ticketRepo.List", domain.EntitySupportTicket, err)
	}

	tickets := []domain.TicketWithRefs{}
	query := fmt.Sprintf("%s %s %s", ticketSelect, where, order)
	if err := r.db.SelectContext(ctx, &tickets, query, q.args...); err != nil {
		return nil, domain.NewRepositoryError("ticketRepo.List", domain.EntitySupportTicket, err)
	}
	return tickets, nil
}

func (r *ticketRepo) Count(ctx context.Context, filter port.TicketFilter) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	query := "SELECT COUNT(*) FROM support_tickets t " + whereClause(ticketConditions(q, filter))

	var total int
	if err := r.db.GetContext(ctx, &total, query, q.args...); err != nil {
		return 0, domain.NewRepositoryError("ticketRepo.Count", domain.EntitySupportTicket, err)
	}
	return total, nil
}

// Update writes status and resolved_at in the same statement.
func (r *ticketRepo) Update(ctx context.Context, id int64, patch domain.TicketPatch) (*domain.SupportTicket, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	set := ticketPatchSet(q, patch)
	if set.empty() {
		return nil, domain.NewValidation("patch", "has no fields")
	}
	query := fmt.Sprintf("UPDATE support_tickets %s WHERE id = %s RETURNING *", set.clause(), q.next(id))

	var ticket domain.SupportTicket
	if err := r.db.GetContext(ctx, &ticket, query, q.args...); err != nil {
		return nil, mapGetErr("ticketRepo.Update", domain.EntitySupportTicket, id, err)
	}
	return &ticket, nil
}
