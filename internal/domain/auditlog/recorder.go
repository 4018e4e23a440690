package auditlog

import (
	"context"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

type GenderResolver interface {
	GenderLabel(ctx context.Context, id *int64) string
}

// Recorder arma entradas de bitácora; no las persiste.
type Recorder struct {
	genders GenderResolver
	now     func() time.Time
}

func NewRecorder(genders GenderResolver) *Recorder {
	return &Recorder{
		genders: genders,
		now:     time.Now,
	}
}

func (r *Recorder) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

type RecordInput struct {
	Field    Field
	OldValue string
	NewValue string
	Comment  string

	Person   *catalog.Person
	Official *catalog.Official

	// StatusOverride reemplaza el estatus de la invitación en la foto (p.ej. Superseded).
	StatusOverride invitations.Status
}

func (r *Recorder) Record(ctx context.Context, inv invitations.Invitation, in RecordInput) Entry {
	status := inv.Status
	if in.StatusOverride != "" {
		status = in.StatusOverride
	}

	snap := inv.Clone()
	e := Entry{
		CreatedAt:     r.now().UTC(),
		InvitationID:  inv.ID,
		Field:         in.Field,
		OldValue:      in.OldValue,
		NewValue:      in.NewValue,
		Comment:       strings.TrimSpace(in.Comment),
		Title:         inv.Title,
		ConvenerTitle: inv.ConvenerTitle,
		Convener:      inv.Convener,
		Status:        status,
		AssigneeName:  inv.AssigneeName,
		Role:          inv.Role,
		Date:          snap.Date,
		Time:          snap.Time,
		Municipality:  inv.Municipality,
		Venue:         inv.Venue,
	}

	if in.Person != nil {
		e.Person = &ContactSnapshot{
			Name:            in.Person.Name,
			Title:           in.Person.Title,
			Phone:           catalog.DigitsOnly(in.Person.Phone),
			Gender:          r.genderLabel(ctx, in.Person.GenderID),
			ParticularName:  in.Person.ParticularName,
			ParticularTitle: in.Person.ParticularTitle,
			ParticularPhone: catalog.DigitsOnly(in.Person.ParticularPhone),
		}
	}
	if in.Official != nil {
		e.Official = &ContactSnapshot{
			Name:            in.Official.Name,
			Title:           in.Official.Title,
			Phone:           catalog.DigitsOnly(in.Official.Phone),
			Gender:          r.genderLabel(ctx, in.Official.GenderID),
			ParticularName:  in.Official.ParticularName,
			ParticularTitle: in.Official.ParticularTitle,
			ParticularPhone: catalog.DigitsOnly(in.Official.ParticularPhone),
		}
	}

	return e
}

func (r *Recorder) genderLabel(ctx context.Context, id *int64) string {
	if r.genders == nil || id == nil {
		return ""
	}
	return r.genders.GenderLabel(ctx, id)
}
