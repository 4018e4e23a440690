package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

// Fecha y hora viajan como texto: evita que el driver les aplique zona horaria.
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func clockArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(clockLayout)
}

func idArg(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func jsonArg(v any, empty bool) (any, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s.String, err)
	}
	return &t, nil
}

func parseClock(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(clockLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parse time %q: %w", s.String, err)
	}
	return &t, nil
}

func nullID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

const invitationColumns = `
	id,
	to_char(event_date, 'YYYY-MM-DD'), to_char(event_time, 'HH24:MI:SS'),
	title, convener_title, convener, party, municipality, venue, notes,
	status, official_id, person_id,
	assignee_name, role, assigned_at,
	created_at, updated_at, updated_by,
	attachment::text, group_token, sub_type`

func scanInvitation(s scanner) (invitations.Invitation, error) {
	var (
		inv         invitations.Invitation
		date, clock sql.NullString
		status      string
		official    sql.NullInt64
		person      sql.NullInt64
		assignedAt  sql.NullTime
		attachment  []byte
	)
	if err := s.Scan(
		&inv.ID,
		&date,
		&clock,
		&inv.Title,
		&inv.ConvenerTitle,
		&inv.Convener,
		&inv.Party,
		&inv.Municipality,
		&inv.Venue,
		&inv.Notes,
		&status,
		&official,
		&person,
		&inv.AssigneeName,
		&inv.Role,
		&assignedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.UpdatedBy,
		&attachment,
		&inv.GroupToken,
		&inv.SubType,
	); err != nil {
		return invitations.Invitation{}, err
	}

	var err error
	if inv.Date, err = parseDate(date); err != nil {
		return invitations.Invitation{}, err
	}
	if inv.Time, err = parseClock(clock); err != nil {
		return invitations.Invitation{}, err
	}
	inv.Status = invitations.Status(status)
	inv.OfficialID = nullID(official)
	inv.PersonID = nullID(person)
	inv.AssignedAt = nullTime(assignedAt)
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()

	if len(attachment) > 0 {
		if err := json.Unmarshal(attachment, &inv.Attachment); err != nil {
			return invitations.Invitation{}, fmt.Errorf("decode attachment: %w", err)
		}
	}
	return inv, nil
}

func scanInvitations(rows *sql.Rows) ([]invitations.Invitation, error) {
	defer rows.Close()

	out := make([]invitations.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

const auditColumns = `
	id, created_at, invitation_id,
	field, old_value, new_value, comment,
	title, convener_title, convener, status, assignee_name, role,
	to_char(event_date, 'YYYY-MM-DD'), to_char(event_time, 'HH24:MI:SS'),
	municipality, venue,
	person_snapshot::text, official_snapshot::text,
	sent, sent_at`

func scanEntry(s scanner) (auditlog.Entry, error) {
	var (
		e                auditlog.Entry
		field, status    string
		date, clock      sql.NullString
		person, official []byte
		sentAt           sql.NullTime
	)
	if err := s.Scan(
		&e.ID,
		&e.CreatedAt,
		&e.InvitationID,
		&field,
		&e.OldValue,
		&e.NewValue,
		&e.Comment,
		&e.Title,
		&e.ConvenerTitle,
		&e.Convener,
		&status,
		&e.AssigneeName,
		&e.Role,
		&date,
		&clock,
		&e.Municipality,
		&e.Venue,
		&person,
		&official,
		&e.Sent,
		&sentAt,
	); err != nil {
		return auditlog.Entry{}, err
	}

	var err error
	if e.Date, err = parseDate(date); err != nil {
		return auditlog.Entry{}, err
	}
	if e.Time, err = parseClock(clock); err != nil {
		return auditlog.Entry{}, err
	}
	e.Field = auditlog.Field(field)
	e.Status = invitations.Status(status)
	e.CreatedAt = e.CreatedAt.UTC()
	e.SentAt = nullTime(sentAt)

	if e.Person, err = decodeSnapshot(person); err != nil {
		return auditlog.Entry{}, err
	}
	if e.Official, err = decodeSnapshot(official); err != nil {
		return auditlog.Entry{}, err
	}
	return e, nil
}

func scanEntries(rows *sql.Rows) ([]auditlog.Entry, error) {
	defer rows.Close()

	out := make([]auditlog.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func decodeSnapshot(b []byte) (*auditlog.ContactSnapshot, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var c auditlog.ContactSnapshot
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &c, nil
}
