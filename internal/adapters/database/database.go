package database

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	apperrors "github.com/broki/marketplace-api/pkg/errors"
)

// PostgreSQL error codes surfaced to callers.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func newDialect(client *postgres.Client) *goqu.Database {
	return goqu.New("postgres", client.DB())
}

// mapWriteError turns constraint violations into conflict and validation
// errors. Anything else is internal.
func mapWriteError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return apperrors.NewConflictError(message+": duplicate value violates "+pqErr.Constraint, err)
		case foreignKeyViolation:
			return apperrors.NewValidationError(message + ": referenced record does not exist")
		}
	}
	return apperrors.NewInternalError(message, err)
}

func paginate(ds *goqu.SelectDataset, limit, offset int) *goqu.SelectDataset {
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}
	return ds
}
