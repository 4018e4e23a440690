package auditlog

import (
	"context"
	"testing"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenders map[int64]string

func (g fixedGenders) GenderLabel(_ context.Context, id *int64) string {
	if id == nil {
		return ""
	}
	return g[*id]
}

func TestRecorder_Record_FotoCompleta(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	rec := NewRecorder(fixedGenders{2: "Mujer"})
	rec.now = func() time.Time { return now }

	d := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	c := time.Date(0, 1, 1, 11, 0, 0, 0, time.UTC)
	inv := invitations.Invitation{
		ID:            "inv-1",
		Date:          &d,
		Time:          &c,
		Title:         "Foro",
		ConvenerTitle: "Diputada",
		Convener:      "Ana",
		Municipality:  "Toluca",
		Venue:         "Teatro",
		Status:        invitations.StatusConfirmed,
		AssigneeName:  "Luis",
		Role:          "Representante",
	}
	gid := int64(2)
	person := &catalog.Person{Name: "Luis", Title: "Enlace", Phone: "(722) 111-2233", GenderID: &gid, ParticularPhone: "55 44"}

	e := rec.Record(context.Background(), inv, RecordInput{
		Field:    FieldAssignedTo,
		OldValue: "",
		NewValue: "Luis",
		Comment:  "  urgente ",
		Person:   person,
	})

	assert.Equal(t, now, e.CreatedAt)
	assert.Equal(t, "inv-1", e.InvitationID)
	assert.Equal(t, FieldAssignedTo, e.Field)
	assert.Equal(t, "urgente", e.Comment)
	assert.Equal(t, invitations.StatusConfirmed, e.Status)
	assert.Equal(t, "Foro", e.Title)
	assert.Equal(t, "Teatro", e.Venue)
	assert.False(t, e.Sent)
	assert.Nil(t, e.SentAt)
	assert.Nil(t, e.Official)

	require.NotNil(t, e.Person)
	assert.Equal(t, ContactSnapshot{
		Name:            "Luis",
		Title:           "Enlace",
		Phone:           "7221112233",
		Gender:          "Mujer",
		ParticularPhone: "5544",
	}, *e.Person)

	// la foto no comparte punteros con la invitación
	require.NotNil(t, e.Date)
	*inv.Date = inv.Date.AddDate(0, 0, 1)
	assert.Equal(t, 3, e.Date.Day())
}

func TestRecorder_Record_StatusOverrideYAmbosContactos(t *testing.T) {
	rec := NewRecorder(nil)
	inv := invitations.Invitation{ID: "inv-1", Status: invitations.StatusConfirmed}

	e := rec.Record(context.Background(), inv, RecordInput{
		Field:          FieldSuperseded,
		OldValue:       "Luis",
		NewValue:       "Marta",
		Person:         &catalog.Person{Name: "Luis"},
		Official:       &catalog.Official{Name: "Ana", Phone: "n/a"},
		StatusOverride: invitations.StatusSuperseded,
	})

	assert.Equal(t, invitations.StatusSuperseded, e.Status)
	require.NotNil(t, e.Person)
	require.NotNil(t, e.Official)
	assert.Equal(t, "", e.Official.Phone)
	assert.Equal(t, "", e.Official.Gender)
}

func TestEntry_Dispatchable(t *testing.T) {
	e := Entry{Field: FieldStatus, NewValue: string(invitations.StatusConfirmed)}
	assert.True(t, e.Dispatchable())

	e.Sent = true
	assert.False(t, e.Dispatchable())

	assert.False(t, Entry{Field: FieldStatus, NewValue: string(invitations.StatusCancelled)}.Dispatchable())
	assert.False(t, Entry{Field: FieldAssignedTo, NewValue: string(invitations.StatusConfirmed)}.Dispatchable())
}
