package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS genders (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS parties (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS persons (
		id               BIGSERIAL PRIMARY KEY,
		name             TEXT NOT NULL,
		title            TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		email            TEXT NOT NULL DEFAULT '',
		unit             TEXT NOT NULL DEFAULT '',
		gender_id        BIGINT REFERENCES genders(id),
		particular_name  TEXT NOT NULL DEFAULT '',
		particular_title TEXT NOT NULL DEFAULT '',
		particular_phone TEXT NOT NULL DEFAULT '',
		active           BOOLEAN NOT NULL DEFAULT TRUE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS officials (
		id               BIGSERIAL PRIMARY KEY,
		name             TEXT NOT NULL,
		title            TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		gender_id        BIGINT REFERENCES genders(id),
		particular_name  TEXT NOT NULL DEFAULT '',
		particular_title TEXT NOT NULL DEFAULT '',
		particular_phone TEXT NOT NULL DEFAULT '',
		active           BOOLEAN NOT NULL DEFAULT TRUE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS invitations (
		id             TEXT PRIMARY KEY,
		event_date     DATE,
		event_time     TIME,
		title          TEXT NOT NULL DEFAULT '',
		convener_title TEXT NOT NULL DEFAULT '',
		convener       TEXT NOT NULL DEFAULT '',
		party          TEXT NOT NULL DEFAULT '',
		municipality   TEXT NOT NULL DEFAULT '',
		venue          TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		official_id    BIGINT REFERENCES officials(id),
		person_id      BIGINT REFERENCES persons(id),
		assignee_name  TEXT NOT NULL DEFAULT '',
		role           TEXT NOT NULL DEFAULT '',
		assigned_at    TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		updated_by     TEXT NOT NULL DEFAULT '',
		attachment     JSONB,
		group_token    TEXT NOT NULL DEFAULT '',
		sub_type       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS invitations_person_date_idx ON invitations (person_id, event_date) WHERE status = 'Confirmed'`,
	`CREATE INDEX IF NOT EXISTS invitations_updated_at_idx ON invitations (updated_at)`,
	`CREATE TABLE IF NOT EXISTS audit_entries (
		id                BIGSERIAL PRIMARY KEY,
		created_at        TIMESTAMPTZ NOT NULL,
		invitation_id     TEXT NOT NULL REFERENCES invitations(id),
		field             TEXT NOT NULL,
		old_value         TEXT NOT NULL DEFAULT '',
		new_value         TEXT NOT NULL DEFAULT '',
		comment           TEXT NOT NULL DEFAULT '',
		title             TEXT NOT NULL DEFAULT '',
		convener_title    TEXT NOT NULL DEFAULT '',
		convener          TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT '',
		assignee_name     TEXT NOT NULL DEFAULT '',
		role              TEXT NOT NULL DEFAULT '',
		event_date        DATE,
		event_time        TIME,
		municipality      TEXT NOT NULL DEFAULT '',
		venue             TEXT NOT NULL DEFAULT '',
		person_snapshot   JSONB,
		official_snapshot JSONB,
		sent              BOOLEAN NOT NULL DEFAULT FALSE,
		sent_at           TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS audit_entries_invitation_idx ON audit_entries (invitation_id, created_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS audit_entries_pending_idx ON audit_entries (id) WHERE sent = FALSE AND field = 'Status' AND new_value = 'Confirmed'`,
	// La bitácora solo admite marcar enviado.
	`CREATE OR REPLACE FUNCTION audit_entries_guard() RETURNS trigger AS $$
	BEGIN
		IF TG_OP = 'DELETE' THEN
			RAISE EXCEPTION 'audit_entries is append-only';
		END IF;
		IF (to_jsonb(NEW) - 'sent' - 'sent_at') IS DISTINCT FROM (to_jsonb(OLD) - 'sent' - 'sent_at') THEN
			RAISE EXCEPTION 'audit_entries is append-only';
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS audit_entries_guard ON audit_entries`,
	`CREATE TRIGGER audit_entries_guard BEFORE UPDATE OR DELETE ON audit_entries
		FOR EACH ROW EXECUTE FUNCTION audit_entries_guard()`,
}

// EnsureSchema crea las tablas si no existen y siembra géneros y partidos.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema step %d: %w", i+1, err)
		}
	}

	for _, name := range catalog.DefaultGenders {
		if _, err := db.ExecContext(ctx, `INSERT INTO genders (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed gender %q: %w", name, err)
		}
	}
	for _, name := range catalog.DefaultParties {
		if _, err := db.ExecContext(ctx, `INSERT INTO parties (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("seed party %q: %w", name, err)
		}
	}
	return nil
}
