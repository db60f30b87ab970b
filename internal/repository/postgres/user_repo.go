package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"pettag/internal/domain"
	"pettag/internal/port"
)

var userOrderColumns = map[string]string{
	port.OrderByCreatedAt: "u.created_at",
}

type userRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB, timeout time.Duration) port.UserRepository {
	return &userRepo{db: db, timeout: timeout}
}

func userConditions(q *queryArgs, filter port.UserFilter) []string {
	var conds []string
	if filter.IsActive != nil {
		conds = append(conds, "u.is_active = "+q.next(*filter.IsActive))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		p := q.next(containsPattern(term))
		conds = append(conds, fmt.Sprintf("(u.name ILIKE %s OR u.email ILIKE %s OR u.phone ILIKE %s)", p, p, p))
	}
	return conds
}

func userPatchSet(q *queryArgs, patch domain.UserPatch) *setBuilder {
	s := &setBuilder{q: q}
	if patch.IsActive != nil {
		s.set("is_active", *patch.IsActive)
	}
	if patch.EmailVerified != nil {
		s.set("email_verified", *patch.EmailVerified)
	}
	if patch.EmailVerifiedAt != nil {
		s.set("email_verified_at", patch.EmailVerifiedAt.UTC())
	}
	return s
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, mapGetErr("userRepo.GetByID", domain.EntityUser, id, err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, filter port.UserFilter, opts port.ListOptions) ([]domain.UserWithSubscriptions, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	where := whereClause(userConditions(q, filter))
	order, err := orderClause(q, opts, userOrderColumns, "u.id")
	if err != nil {
		return nil, domain.NewRepositoryError("userRepo.List", domain.EntityUser, err)
	}

	var users []domain.User
	query := fmt.Sprintf("SELECT u.* FROM users u %s %s", where, order)
	if err := r.db.SelectContext(ctx, &users, query, q.args...); err != nil {
		return nil, domain.NewRepositoryError("userRepo.List", domain.EntityUser, err)
	}

	out := make([]domain.UserWithSubscriptions, len(users))
	if len(users) == 0 {
		return out, nil
	}

	ids := make([]int64, len(users))
	index := make(map[int64]int, len(users))
	for i := range users {
		ids[i] = users[i].ID
		index[users[i].ID] = i
		out[i] = domain.UserWithSubscriptions{User: users[i], Subscriptions: []domain.SubscriptionBrief{}}
	}

	subQuery, args, err := sqlx.In(`SELECT id, user_id, status, plan_type, amount, start_date, end_date, created_at
		FROM subscriptions WHERE user_id IN (?) ORDER BY created_at DESC, id DESC`, ids)
	if err != nil {
		return nil, domain.NewRepositoryError("userRepo.List subscriptions", domain.EntityUser, err)
	}
	var subs []domain.SubscriptionBrief
	if err := r.db.SelectContext(ctx, &subs, r.db.Rebind(subQuery), args...); err != nil {
		return nil, domain.NewRepositoryError("userRepo.List subscriptions", domain.EntityUser, err)
	}
	for i := range subs {
		if idx, ok := index[subs[i].UserID]; ok {
			out[idx].Subscriptions = append(out[idx].Subscriptions, subs[i])
		}
	}
	return out, nil
}

func (r *userRepo) Count(ctx context.Context, filter port.UserFilter) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	query := "SELECT COUNT(*) FROM users u " + whereClause(userConditions(q, filter))

	var total int
	if err := r.db.GetContext(ctx, &total, query, q.args...); err != nil {
		return 0, domain.NewRepositoryError("userRepo.Count", domain.EntityUser, err)
	}
	return total, nil
}

// Update applies the patch in a single statement, so every field it sets
// becomes visible together.
func (r *userRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	set := userPatchSet(q, patch)
	if set.empty() {
		return nil, domain.NewValidation("patch", "has no fields")
	}
	query := fmt.Sprintf("UPDATE users %s WHERE id = %s RETURNING *", set.clause(), q.next(id))

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, q.args...); err != nil {
		return nil, mapGetErr("userRepo.Update", domain.EntityUser, id, err)
	}
	return &user, nil
}
