package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Dan9191/bank-clients/internal/apperr"
)

const defaultTxTimeout = 5 * time.Second

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides database operations on PostgreSQL
type Repository struct {
	db        *sql.DB
	q         queryer
	inTx      bool
	txTimeout time.Duration
}

// NewRepository initializes a new repository. A zero txTimeout falls back to
// the default unit-of-work deadline.
func NewRepository(db *sql.DB, txTimeout time.Duration) *Repository {
	return &Repository{db: db, q: db, txTimeout: txTimeout}
}

// RunInTx implements UnitOfWork. A deadline is applied only when ctx has
// none. Calling RunInTx on a transaction-bound Repository reuses the
// transaction.
func (r *Repository) RunInTx(ctx context.Context, fn func(Store) error) error {
	if r.inTx {
		return fn(r)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}

	timeout := r.txTimeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&Repository{db: r.db, q: tx, inTx: true, txTimeout: r.txTimeout}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver errors into apperr sentinels where the
// database enforces a domain rule.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "foreign_key_violation":
			return fmt.Errorf("%s: %w: %s", op, apperr.ErrInvalidReference, pqErr.Detail)
		case "check_violation":
			return fmt.Errorf("%s: %w: constraint %s", op, apperr.ErrValidation, pqErr.Constraint)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// expectAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
