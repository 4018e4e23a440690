package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"wrapped deadlock", fmt.Errorf("append audit: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain", errors.New("boom"), false},
		{"not found", invitations.ErrNotFound, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRetryable(tc.err))
		})
	}
}

func TestDateAndClockArgs(t *testing.T) {
	d := time.Date(2025, 8, 10, 23, 30, 0, 0, time.FixedZone("CST", -6*3600))
	assert.Equal(t, "2025-08-10", dateArg(&d))
	assert.Equal(t, "23:30:00", clockArg(&d))
	assert.Nil(t, dateArg(nil))
	assert.Nil(t, clockArg(nil))

	got, err := parseDate(sql.NullString{String: "2025-08-10", Valid: true})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), *got)

	c, err := parseClock(sql.NullString{String: "09:15:00", Valid: true})
	require.NoError(t, err)
	assert.Equal(t, 9, c.Hour())
	assert.Equal(t, 15, c.Minute())

	none, err := parseClock(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseDate(sql.NullString{String: "10/08/2025", Valid: true})
	assert.Error(t, err)
}

func TestJSONArg(t *testing.T) {
	v, err := jsonArg(invitations.Attachment{}, true)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = jsonArg(invitations.Attachment{URL: "https://files/x.pdf", Name: "x.pdf"}, false)
	require.NoError(t, err)
	assert.Contains(t, v, `"url":"https://files/x.pdf"`)
}

func TestInvitationFilter(t *testing.T) {
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	where, args := invitationFilter(invitations.ListFilter{}, nil)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = invitationFilter(invitations.ListFilter{
		Status: invitations.StatusConfirmed,
		From:   &from,
		Query:  "foro",
	}, []any{int64(7)})

	assert.Equal(t, " WHERE status = $2 AND event_date >= $3::date AND (title ILIKE $4 OR venue ILIKE $4 OR convener ILIKE $4 OR party ILIKE $4 OR municipality ILIKE $4)", where)
	assert.Equal(t, []any{int64(7), "Confirmed", "2025-08-01", "%foro%"}, args)
}

func TestCatalogFilter(t *testing.T) {
	where, args := catalogFilter(catalog.ListFilter{ActiveOnly: true, Query: "ana"}, "name", "title")
	assert.Equal(t, " WHERE active = TRUE AND (name ILIKE $1 OR title ILIKE $1)", where)
	assert.Equal(t, []any{"%ana%"}, args)

	assert.Equal(t, maxCatalogLimit, catalogLimit(0))
	assert.Equal(t, maxCatalogLimit, catalogLimit(10_000))
	assert.Equal(t, 20, catalogLimit(20))
}
