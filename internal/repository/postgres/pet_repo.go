package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pettag/internal/domain"
	"pettag/internal/port"
)

var petOrderColumns = map[string]string{
	port.OrderByCreatedAt: "p.created_at",
}

// petOwnerColumns expands the owner's public contact fields.
const petOwnerColumns = `u.id AS "owner.id", u.name AS "owner.name", u.email AS "owner.email",
	u.phone AS "owner.phone", u.whatsapp AS "owner.whatsapp", u.instagram AS "owner.instagram",
	u.address AS "owner.address", u.is_active AS "owner.is_active"`

type petRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPetRepo creates a new PostgreSQL-backed PetRepository.
func NewPetRepo(db *sqlx.DB, timeout time.Duration) port.PetRepository {
	return &petRepo{db: db, timeout: timeout}
}

func petConditions(q *queryArgs, filter port.PetFilter) []string {
	var conds []string
	if filter.IsActive != nil {
		conds = append(conds, "p.is_active = "+q.next(*filter.IsActive))
	}
	if filter.UserID != nil {
		conds = append(conds, "p.user_id = "+q.next(*filter.UserID))
	}
	return conds
}

func petPatchSet(q *queryArgs, patch domain.PetPatch) *setBuilder {
	s := &setBuilder{q: q}
	if patch.Name != nil {
		s.set("name", *patch.Name)
	}
	if patch.Username != nil {
		s.set("username", *patch.Username)
	}
	if patch.Type != nil {
		s.set("type", string(*patch.Type))
	}
	if patch.Breed != nil {
		s.set("breed", *patch.Breed)
	}
	if patch.Age != nil {
		s.set("age", *patch.Age)
	}
	if patch.Color != nil {
		s.set("color", *patch.Color)
	}
	if patch.Description != nil {
		s.set("description", *patch.Description)
	}
	if patch.PhotoURL != nil {
		s.set("photo_url", *patch.PhotoURL)
	}
	if patch.ShowPhone != nil {
		s.set("show_phone", *patch.ShowPhone)
	}
	if patch.ShowWhatsApp != nil {
		s.set("show_whatsapp", *patch.ShowWhatsApp)
	}
	if patch.ShowInstagram != nil {
		s.set("show_instagram", *patch.ShowInstagram)
	}
	if patch.ShowAddress != nil {
		s.set("show_address", *patch.ShowAddress)
	}
	if patch.IsActive != nil {
		s.set("is_active", *patch.IsActive)
	}
	if patch.IsLost != nil {
		s.set("is_lost", *patch.IsLost)
	}
	return s
}

func (r *petRepo) GetByID(ctx context.Context, id int64) (*domain.PetWithOwner, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT p.*, %s FROM pets p
		INNER JOIN users u ON u.id = p.user_id WHERE p.id = $1`, petOwnerColumns)

	var pet domain.PetWithOwner
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		return nil, mapGetErr("petRepo.GetByID", domain.EntityPet, id, err)
	}
	return &pet, nil
}

func (r *petRepo) List(ctx context.Context, filter port.PetFilter, opts port.ListOptions) ([]domain.PetWithOwner, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	where := whereClause(petConditions(q, filter))
	order, err := orderClause(q, opts, petOrderColumns, "p.id")
	if err != nil {
		return nil, domain.NewRepositoryError("petRepo.List", domain.EntityPet, err)
	}

	query := fmt.Sprintf(`SELECT p.*, %s FROM pets p
		INNER JOIN users u ON u.id = p.user_id %s %s`, petOwnerColumns, where, order)

	pets := []domain.PetWithOwner{}
	if err := r.db.SelectContext(ctx, &pets, query, q.args...); err != nil {
		return nil, domain.NewRepositoryError("petRepo.List", domain.EntityPet, err)
	}
	return pets, nil
}

func (r *petRepo) Count(ctx context.Context, filter port.PetFilter) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	query := "SELECT COUNT(*) FROM pets p " + whereClause(petConditions(q, filter))

	var total int
	if err := r.db.GetContext(ctx, &total, query, q.args...); err != nil {
		return 0, domain.NewRepositoryError("petRepo.Count", domain.EntityPet, err)
	}
	return total, nil
}

func (r *petRepo) Update(ctx context.Context, id int64, patch domain.PetPatch) (*domain.PetWithOwner, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	set := petPatchSet(q, patch)
	if set.empty() {
		return nil, domain.NewValidation("patch", "has no fields")
	}

	query := fmt.Sprintf(`WITH p AS (UPDATE pets %s WHERE id = %s RETURNING *)
		SELECT p.*, %s FROM p INNER JOIN users u ON u.id = p.user_id`,
		set.clause(), q.next(id), petOwnerColumns)

	var pet domain.PetWithOwner
	if err := r.db.GetContext(ctx, &pet, query, q.args...); err != nil {
		return nil, mapGetErr("petRepo.Update", domain.EntityPet, id, err)
	}
	return &pet, nil
}
