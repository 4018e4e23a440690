package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

type InvitationsRepo struct {
	db *sql.DB
}

var _ invitations.Repository = (*InvitationsRepo)(nil)

func NewInvitationsRepo(db *sql.DB) *InvitationsRepo {
	return &InvitationsRepo{db: db}
}

func (r *InvitationsRepo) Create(ctx context.Context, inv invitations.Invitation) error {
	attachment, err := jsonArg(inv.Attachment, inv.Attachment.Empty())
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO invitations (
			id, event_date, event_time,
			title, convener_title, convener, party, municipality, venue, notes,
			status, official_id, person_id,
			assignee_name, role, assigned_at,
			created_at, updated_at, updated_by,
			attachment, group_token, sub_type
		) VALUES (
			$1, $2::date, $3::time,
			$4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16,
			$17, $18, $19,
			$20::jsonb, $21, $22
		)
	`,
		inv.ID,
		dateArg(inv.Date),
		clockArg(inv.Time),
		inv.Title,
		inv.ConvenerTitle,
		inv.Convener,
		inv.Party,
		inv.Municipality,
		inv.Venue,
		inv.Notes,
		string(inv.Status),
		idArg(inv.OfficialID),
		idArg(inv.PersonID),
		inv.AssigneeName,
		inv.Role,
		timeArg(inv.AssignedAt),
		inv.CreatedAt,
		inv.UpdatedAt,
		inv.UpdatedBy,
		attachment,
		inv.GroupToken,
		inv.SubType,
	)
	return err
}

func (r *InvitationsRepo) GetByID(ctx context.Context, id string) (invitations.Invitation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return invitations.Invitation{}, invitations.ErrNotFound
	}
	return getInvitation(ctx, r.db, id, false)
}

func (r *InvitationsRepo) List(ctx context.Context, filter invitations.ListFilter) ([]invitations.Invitation, error) {
	where, args := invitationFilter(filter, nil)
	args = append(args, filter.EffectiveLimit())

	q := `SELECT ` + invitationColumns + ` FROM invitations` + where +
		` ORDER BY event_date DESC NULLS LAST, event_time DESC NULLS LAST, id DESC` +
		fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanInvitations(rows)
}

func (r *InvitationsRepo) ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]invitations.Invitation, error) {
	if limit <= 0 {
		limit = invitations.MaxListLimit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+invitationColumns+`
		FROM invitations
		WHERE updated_at > $1
		ORDER BY updated_at ASC, id ASC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, err
	}
	return scanInvitations(rows)
}

func (r *InvitationsRepo) ListByPerson(ctx context.Context, personID int64, filter invitations.ListFilter) ([]invitations.Invitation, error) {
	where, args := invitationFilter(filter, []any{personID})
	if where == "" {
		where = " WHERE person_id = $1"
	} else {
		where += " AND person_id = $1"
	}
	args = append(args, filter.EffectiveLimit())

	q := `SELECT ` + invitationColumns + ` FROM invitations` + where +
		` ORDER BY event_date ASC NULLS FIRST, event_time ASC NULLS FIRST, id ASC` +
		fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return scanInvitations(rows)
}

// invitationFilter arma el WHERE a partir de args ya reservados.
func invitationFilter(f invitations.ListFilter, args []any) (string, []any) {
	var conds []string
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+next(string(f.Status)))
	}
	if f.From != nil {
		conds = append(conds, "event_date >= "+next(dateArg(f.From))+"::date")
	}
	if f.To != nil {
		conds = append(conds, "event_date <= "+next(dateArg(f.To))+"::date")
	}
	if m := strings.TrimSpace(f.Municipality); m != "" {
		conds = append(conds, "municipality ILIKE "+next("%"+m+"%"))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := next("%" + q + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %[1]s OR venue ILIKE %[1]s OR convener ILIKE %[1]s OR party ILIKE %[1]s OR municipality ILIKE %[1]s)", p))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func getInvitation(ctx context.Context, q querier, id string, forUpdate bool) (invitations.Invitation, error) {
	stmt := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	if forUpdate {
		stmt += ` FOR UPDATE`
	}

	inv, err := scanInvitation(q.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invitations.Invitation{}, invitations.ErrNotFound
		}
		return invitations.Invitation{}, err
	}
	return inv, nil
}

// updateInvitation reescribe la fila completa; id y created_at no cambian.
func updateInvitation(ctx context.Context, q querier, inv invitations.Invitation) error {
	attachment, err := jsonArg(inv.Attachment, inv.Attachment.Empty())
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx, `
		UPDATE invitations
		SET
			event_date = $2::date,
			event_time = $3::time,
			title = $4,
			convener_title = $5,
			convener = $6,
			party = $7,
			municipality = $8,
			venue = $9,
			notes = $10,
			status = $11,
			official_id = $12,
			person_id = $13,
			assignee_name = $14,
			role = $15,
			assigned_at = $16,
			updated_at = $17,
			updated_by = $18,
			attachment = $19::jsonb,
			group_token = $20,
			sub_type = $21
		WHERE id = $1
	`,
		inv.ID,
		dateArg(inv.Date),
		clockArg(inv.Time),
		inv.Title,
		inv.ConvenerTitle,
		inv.Convener,
		inv.Party,
		inv.Municipality,
		inv.Venue,
		inv.Notes,
		string(inv.Status),
		idArg(inv.OfficialID),
		idArg(inv.PersonID),
		inv.AssigneeName,
		inv.Role,
		timeArg(inv.AssignedAt),
		inv.UpdatedAt,
		inv.UpdatedBy,
		attachment,
		inv.GroupToken,
		inv.SubType,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return invitations.ErrNotFound
	}
	return nil
}
