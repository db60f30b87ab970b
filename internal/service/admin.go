package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/port"
)

// pageOptions validates caller pagination and returns newest-first options.
// A zero limit selects the configured default page size.
func pageOptions(limits config.AdminConfig, limit, offset int) (port.ListOptions, error) {
	if limit == 0 {
		limit = limits.DefaultPageSize
	}
	if limit < 1 || limit > limits.MaxPageSize {
		return port.ListOptions{}, domain.NewValidation("limit", fmt.Sprintf("must be between 1 and %d", limits.MaxPageSize))
	}
	if offset < 0 {
		return port.ListOptions{}, domain.NewValidation("offset", "must not be negative")
	}
	return port.NewestFirst(limit, offset), nil
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return domain.NewValidation(field, "must be positive")
	}
	return nil
}

func validateRequired(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return domain.NewValidation(field, "must not be blank")
	}
	return nil
}

// logFailure records backend failures. Not-found and validation errors are
// returned to the caller without logging.
func logFailure(log *zap.Logger, op string, id int64, err error) {
	var repoErr *domain.RepositoryError
	if !errors.As(err, &repoErr) {
		return
	}
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("entity", repoErr.Entity),
		zap.Error(err),
	}
	if id > 0 {
		fields = append(fields, zap.Int64("id", id))
	}
	log.Error("repository call failed", fields...)
}

func ptr[T any](v T) *T {
	return &v
}
