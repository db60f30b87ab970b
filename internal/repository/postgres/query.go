package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pettag/internal/domain"
	"pettag/internal/port"
)

const dateLayout = "2006-01-02"

// queryArgs collects positional arguments and hands out their placeholders.
type queryArgs struct {
	args []interface{}
}

func (q *queryArgs) next(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// whereClause joins conditions with AND. It returns "" for no conditions.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

// orderClause builds ORDER BY/LIMIT/OFFSET for a whitelisted column. The
// table's id breaks ties so pages never overlap.
func orderClause(q *queryArgs, opts port.ListOptions, columns map[string]string, idColumn string) (string, error) {
	col, ok := columns[opts.OrderBy]
	if !ok {
		return "", fmt.Errorf("unsupported order column %q", opts.OrderBy)
	}
	dir := "DESC"
	if opts.Ascending {
		dir = "ASC"
	}

	clause := fmt.Sprintf("ORDER BY %s %s, %s %s", col, dir, idColumn, dir)
	if opts.Limit > 0 {
		clause += " LIMIT " + q.next(opts.Limit)
	}
	if opts.Offset > 0 {
		clause += " OFFSET " + q.next(opts.Offset)
	}
	return clause, nil
}

// escapeLike escapes the LIKE metacharacters so the term matches literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// containsPattern returns an ILIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

// setBuilder assembles the SET list of a partial UPDATE.
type setBuilder struct {
	q    *queryArgs
	sets []string
}

func (s *setBuilder) set(column string, v interface{}) {
	s.sets = append(s.sets, column+" = "+s.q.next(v))
}

func (s *setBuilder) setNull(column string) {
	s.sets = append(s.sets, column+" = NULL")
}

func (s *setBuilder) empty() bool {
	return len(s.sets) == 0
}

// clause returns the SET list, always touching updated_at.
func (s *setBuilder) clause() string {
	return "SET " + strings.Join(append(s.sets, "updated_at = NOW()"), ", ")
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// mapGetErr turns a single-row lookup error into the domain taxonomy.
func mapGetErr(op, entity string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound(entity, id)
	}
	return domain.NewRepositoryError(op, entity, err)
}

func dateParam(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
