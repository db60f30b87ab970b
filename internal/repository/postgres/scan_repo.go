package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pettag/internal/domain"
	"pettag/internal/port"
)

var scanOrderColumns = map[string]string{
	port.OrderByScannedAt: "q.scanned_at",
}

type scanRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewScanRepo creates a new PostgreSQL-backed ScanRepository.
func NewScanRepo(db *sqlx.DB, timeout time.Duration) port.ScanRepository {
	return &scanRepo{db: db, timeout: timeout}
}

func scanConditions(q *queryArgs, filter port.ScanFilter) []string {
	var conds []string
	if filter.ScannedSince != nil {
		conds = append(conds, "q.scanned_at >= "+q.next(filter.ScannedSince.UTC()))
	}
	if filter.PetID != nil {
		conds = append(conds, "q.pet_id = "+q.next(*filter.PetID))
	}
	return conds
}

func (r *scanRepo) List(ctx context.Context, filter port.ScanFilter, opts port.ListOptions) ([]domain.ScanWithPet, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	where := whereClause(scanConditions(q, filter))
	order, err := orderClause(q, opts, scanOrderColumns, "q.id")
	if err != nil {
		return nil, domain.NewRepositoryError("scanRepo.List", domain.EntityScan, err)
	}

	query := fmt.Sprintf(`SELECT q.*, p.name AS "pet.name", p.username AS "pet.username", u.name AS "pet.owner_name"
		FROM qr_scans q
		INNER JOIN pets p ON p.id = q.pet_id
		INNER JOIN users u ON u.id = p.user_id
		%s %s`, where, order)

	scans := []domain.ScanWithPet{}
	if err := r.db.SelectContext(ctx, &scans, query, q.args...); err != nil {
		return nil, domain.NewRepositoryError("scanRepo.List", domain.EntityScan, err)
	}
	return scans, nil
}

func (r *scanRepo) Count(ctx context.Context, filter port.ScanFilter) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	q := &queryArgs{}
	query := "SELECT COUNT(*) FROM qr_scans q " + whereClause(scanConditions(q, filter))

	var total int
	if err := r.db.GetContext(ctx, &total, query, q.args...); err != nil {
		return 0, domain.NewRepositoryError("scanRepo.Count", domain.EntityScan, err)
	}
	return total, nil
}
