package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pettag/internal/domain"
	"pettag/internal/port"
)

var subscriptionOrderColumns = map[string]string{
	port.OrderByCreatedAt: "s.created_at",
	port.OrderByEndDate:   "s.end_date",
}

const subscriptionOwnerColumns = `u.id AS "owner.id", u.name AS "owner.name", u.email AS "owner.email",
	u.phone AS "owner.phone", u.whatsapp AS "owner.whatsapp", u.is_active AS "owner.is_active"`

type subscriptionRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewSubscriptionRepo creates a new PostgreSQL-backed SubscriptionRepository.
func NewSubscriptionRepo(db *sqlx.DB, timeout time.Duration) port.SubscriptionRepository {
	return &subscriptionRepo{db: db, timeout: timeout}
}

func subscriptionConditions(q *queryArgs, filter port.SubscriptionFilter) []string {
	var conds []string
	if filter.Status != nil {
		conds = append(conds, "s.status = "+q.next(string(*filter.Status)))
	}
	if filter.UserID != nil {
		conds = append(conds, "s.user_id = "+q.next(*filter.UserID))
	}
	if filter.EndDateOnOrBefore != nil {
		conds = append(conds, "s.end_date <= "+q.next(dateParam(*filter.EndDateOnOrBefore))+"::date")
	}
	return conds
}

func subscriptionPatchSet(q *queryArgs, patch domain.SubscriptionPatch) *setBuilder {
	s := &setBuilder{q: q}
	if patch.Status != nil {
		s.set("status", string(*patch.Status))
	}
	if patch.StartDate != nil {
		s.set("start_date", dateParam(*patch.StartDate))
	}
	if patch.EndDate != nil {
		s.set("end_date", dateParam(*patch.EndDate))
	}
	if patch.Amount != nil {
		s.set("amount", *patch.Amount)
	}
	if patch.PaymentMethod != nil {
		s.set("payment_method", *patch.PaymentMethod)
	}
	if patch.PaymentReference != nil {
		s.set("payment_reference", *patch.PaymentReference)
	}
	return s
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO subscriptions (user_id, plan_type, status, amount, currency,
		start_date, end_date, payment_method, payment_reference)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		sub.UserID, string(sub.PlanType), string(sub.Status), sub.Amount, sub.Currency,
		dateParam(sub.StartDate), dateParam(sub.EndDate), sub.PaymentMethod, sub.PaymentReference,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return domain.NewRepositoryError("subscriptionRepo.Create", domain.EntitySubscription, err)
	}
	return nil
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id int64) (*domain.SubscriptionWithUser, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT s.*, %s FROM subscriptions s
		INNER JOIN users u ON u.id = s.user_id WHERE s.id = $1`, subscriptionOwnerColumns)

	var sub domain.SubscriptionWithUser
	if err := r.db.GetContext(ctx, &sub, query, id); err != nil {
		return nil, mapGetErr("subscriptionRepo.GetByID", domain.EntitySubscription, id, err)
	}
	return &sub, nil
}

func (r *subscriptionRepo) List(ctx context.Context, filter port.SubscriptionFilter, opts port.ListOptions) ([]domain.SubscriptionWithUser, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	where := whereClause(subscriptionConditions(q, filter))
	order, err := orderClause(q, opts, subscriptionOrderColumns, "s.id")
	if err != nil {
		return nil, domain.NewRepositoryError("subscriptionRepo.List", domain.EntitySubscription, err)
	}

	query := fmt.Sprintf(`SELECT s.*, %s FROM subscriptions s
		INNER JOIN users u ON u.id = s.user_id %s %s`, subscriptionOwnerColumns, where, order)

	subs := []domain.SubscriptionWithUser{}
	if err := r.db.SelectContext(ctx, &subs, query, q.args...); err != nil {
		return nil, domain.NewRepositoryError("subscriptionRepo.List", domain.EntitySubscription, err)
	}
	return subs, nil
}

func (r *subscriptionRepo) Count(ctx context.Context, filter port.SubscriptionFilter) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	query := "SELECT COUNT(*) FROM subscriptions s " + whereClause(subscriptionConditions(q, filter))

	var total int
	if err := r.db.GetContext(ctx, &total, query, q.args...); err != nil {
		return 0, domain.NewRepositoryError("subscriptionRepo.Count", domain.EntitySubscription, err)
	}
	return total, nil
}

func (r *subscriptionRepo) Update(ctx context.Context, id int64, patch domain.SubscriptionPatch) (*domain.SubscriptionWithUser, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	set := subscriptionPatchSet(q, patch)
	if set.empty() {
		return nil, domain.NewValidation("patch", "has no fields")
	}

	query := fmt.Sprintf(`WITH s AS (UPDATE subscriptions %s WHERE id = %s RETURNING *)
		SELECT s.*, %s FROM s INNER JOIN users u ON u.id = s.user_id`,
		set.clause(), q.next(id), subscriptionOwnerColumns)

	var sub domain.SubscriptionWithUser
	if err := r.db.GetContext(ctx, &sub, query, q.args...); err != nil {
		return nil, mapGetErr("subscriptionRepo.Update", domain.EntitySubscription, id, err)
	}
	return &sub, nil
}
