package repositories

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"retail-hub/models"
)

// DBExecutor is the subset of *pgxpool.Pool (or pgx.Tx) the repositories use.
type DBExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation        = "23505"
	pgNumericValueOutOfRange = "22003"
	pgInvalidTextRepr        = "22P02"
)

// pgError translates a pgx error into the store error taxonomy.
func pgError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewStoreError(op, key, models.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return models.NewStoreError(op, key, models.ErrConflict)
		case pgNumericValueOutOfRange, pgInvalidTextRepr:
			return models.NewStoreError(op, key, fmt.Errorf("%w: %s", models.ErrValidation, pgErr.Message))
		}
		return models.NewStoreError(op, key, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return models.NewStoreError(op, key, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err))
	}
	return models.NewStoreError(op, key, err)
}
