package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

type AuditRepo struct {
	db *sql.DB
}

var _ auditlog.Repository = (*AuditRepo)(nil)

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Append(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error) {
	return appendEntry(ctx, r.db, e)
}

func (r *AuditRepo) ListByInvitation(ctx context.Context, invitationID string) ([]auditlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+auditColumns+`
		FROM audit_entries
		WHERE invitation_id = $1
		ORDER BY created_at DESC, id DESC
	`, invitationID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func (r *AuditRepo) ListPendingDispatch(ctx context.Context, limit int) ([]auditlog.Entry, error) {
	if limit <= 0 {
		limit = auditlog.DefaultPendingLimit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+auditColumns+`
		FROM audit_entries
		WHERE sent = FALSE AND field = $1 AND new_value = $2
		ORDER BY id ASC
		LIMIT $3
	`, string(auditlog.FieldStatus), string(invitations.StatusConfirmed), limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// MarkSent conserva sent_at si la entrada ya estaba enviada.
func (r *AuditRepo) MarkSent(ctx context.Context, id int64, at time.Time) (auditlog.Entry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, `
		UPDATE audit_entries
		SET sent = TRUE, sent_at = COALESCE(sent_at, $2)
		WHERE id = $1
		RETURNING `+auditColumns, id, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auditlog.Entry{}, auditlog.ErrNotFound
		}
		return auditlog.Entry{}, err
	}
	return e, nil
}

// appendEntry ignora ID, Sent y SentAt del llamador.
func appendEntry(ctx context.Context, q querier, e auditlog.Entry) (auditlog.Entry, error) {
	person, err := jsonArg(e.Person, e.Person == nil)
	if err != nil {
		return auditlog.Entry{}, err
	}
	official, err := jsonArg(e.Official, e.Official == nil)
	if err != nil {
		return auditlog.Entry{}, err
	}

	var id int64
	err = q.QueryRowContext(ctx, `
		INSERT INTO audit_entries (
			created_at, invitation_id,
			field, old_value, new_value, comment,
			title, convener_title, convener, status, assignee_name, role,
			event_date, event_time, municipality, venue,
			person_snapshot, official_snapshot
		) VALUES (
			$1, $2,
			$3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13::date, $14::time, $15, $16,
			$17::jsonb, $18::jsonb
		)
		RETURNING id
	`,
		e.CreatedAt,
		e.InvitationID,
		string(e.Field),
		e.OldValue,
		e.NewValue,
		e.Comment,
		e.Title,
		e.ConvenerTitle,
		e.Convener,
		string(e.Status),
		e.AssigneeName,
		e.Role,
		dateArg(e.Date),
		clockArg(e.Time),
		e.Municipality,
		e.Venue,
		person,
		official,
	).Scan(&id)
	if err != nil {
		return auditlog.Entry{}, err
	}

	out := e.Clone()
	out.ID = id
	out.Sent = false
	out.SentAt = nil
	return out, nil
}
