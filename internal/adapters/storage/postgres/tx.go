package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/assignment"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/metrics"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	defaultTxTimeout  = 5 * time.Second
	defaultMaxRetries = 3
	retryBackoff      = 25 * time.Millisecond
)

// Códigos SQLSTATE que justifican repetir la transacción completa.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// UnitOfWork corre asignaciones y ediciones en una transacción READ COMMITTED.
// Las filas se bloquean con FOR UPDATE y el delegado con un advisory lock.
type UnitOfWork struct {
	db         *sql.DB
	timeout    time.Duration
	maxRetries int
	metrics    *metrics.Metrics
	log        logger.Logger
}

var _ assignment.UnitOfWork = (*UnitOfWork)(nil)

type TxOptions struct {
	Timeout    time.Duration
	MaxRetries int
	Metrics    *metrics.Metrics
	Logger     logger.Logger
}

func NewUnitOfWork(db *sql.DB, opts TxOptions) *UnitOfWork {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTxTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &UnitOfWork{
		db:         db,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		metrics:    opts.Metrics,
		log:        opts.Logger,
	}
}

// RunInTx repite fn solo ante 40001/40P01; cualquier otro error se regresa tal cual.
func (u *UnitOfWork) RunInTx(ctx context.Context, fn func(store assignment.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	var err error
	for attempt := 1; attempt <= u.maxRetries; attempt++ {
		err = u.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}

		u.metrics.IncTxRetry()
		u.log.Warn("transaction retry", map[string]any{
			"attempt": attempt,
			"error":   err.Error(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return fmt.Errorf("transaction gave up after %d attempts: %w", u.maxRetries, err)
}

func (u *UnitOfWork) runOnce(ctx context.Context, fn func(store assignment.Store) error) error {
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
}

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) GetInvitationForUpdate(ctx context.Context, id string) (invitations.Invitation, error) {
	return getInvitation(ctx, t.tx, id, true)
}

// LockDelegate toma un advisory lock que se libera con el commit o rollback.
func (t *txStore) LockDelegate(ctx context.Context, key string) error {
	_, err := t.tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}

func (t *txStore) ListConfirmedByPersonOnDate(ctx context.Context, personID int64, date time.Time, excludeID string) ([]invitations.Invitation, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT `+invitationColumns+`
		FROM invitations
		WHERE person_id = $1
		  AND event_date = $2::date
		  AND status = $3
		  AND id <> $4
		ORDER BY event_time ASC NULLS FIRST, id ASC
	`, personID, dateArg(&date), string(invitations.StatusConfirmed), excludeID)
	if err != nil {
		return nil, err
	}
	return scanInvitations(rows)
}

func (t *txStore) UpdateInvitation(ctx context.Context, inv invitations.Invitation) error {
	return updateInvitation(ctx, t.tx, inv)
}

func (t *txStore) AppendAudit(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error) {
	return appendEntry(ctx, t.tx, e)
}
