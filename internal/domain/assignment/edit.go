package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"
)

// Etiquetas de las entradas Rescheduled: "<Label>: <valor>".
const (
	LabelDate         = "Date"
	LabelTime         = "Time"
	LabelMunicipality = "Municipality"
	LabelVenue        = "Venue"
)

// Editor cambia datos de la invitación sin pasar por la agenda.
type Editor struct {
	uow      UnitOfWork
	catalog  Catalog
	recorder *auditlog.Recorder
	log      logger.Logger
	now      func() time.Time
}

func NewEditor(uow UnitOfWork, cat Catalog) *Editor {
	return &Editor{
		uow:      uow,
		catalog:  cat,
		recorder: auditlog.NewRecorder(cat),
		log:      logger.Nop(),
		now:      time.Now,
	}
}

func (ed *Editor) WithLogger(l logger.Logger) *Editor {
	if l != nil {
		ed.log = l
	}
	return ed
}

func (ed *Editor) SetClock(now func() time.Time) {
	ed.now = now
	ed.recorder.SetClock(now)
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Date          *time.Time
	Time          *time.Time
	Title         *string
	ConvenerTitle *string
	Party         *string
	Municipality  *string
	Venue         *string
	Notes         *string

	Attachment      *invitations.Attachment
	ClearAttachment bool
}

// Update aplica los cambios y deja una entrada por campo modificado.
// Fecha, hora, municipio y lugar generan Rescheduled sin importar el estatus.
func (ed *Editor) Update(ctx context.Context, id, actor string, in UpdateInput) (invitations.Invitation, error) {
	if strings.TrimSpace(id) == "" {
		return invitations.Invitation{}, fmt.Errorf("%w: invitation id required", ErrInvalidInput)
	}

	// validaciones que no dependen de la fila
	var muni, party string
	if in.Municipality != nil {
		c, ok := ed.catalog.Municipalities().Canonical(*in.Municipality)
		if !ok {
			return invitations.Invitation{}, fmt.Errorf("%w: unknown municipality %q", ErrInvalidInput, *in.Municipality)
		}
		muni = c
	}
	if in.Party != nil {
		p, err := ed.catalog.ValidateParty(ctx, *in.Party)
		if err != nil {
			if errors.Is(err, catalog.ErrInvalidInput) {
				return invitations.Invitation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return invitations.Invitation{}, err
		}
		party = p
	}
	for name, v := range map[string]*string{"title": in.Title, "convener_title": in.ConvenerTitle, "venue": in.Venue} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return invitations.Invitation{}, fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, name)
		}
	}

	var out invitations.Invitation
	err := ed.uow.RunInTx(ctx, func(store Store) error {
		inv, err := store.GetInvitationForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, invitations.ErrNotFound) {
				return fmt.Errorf("%w: invitation %s", ErrNotFound, id)
			}
			return err
		}

		var entries []auditlog.Entry
		reschedule := func(label, before, after string) {
			entries = append(entries, ed.recorder.Record(ctx, inv, auditlog.RecordInput{
				Field:    auditlog.FieldRescheduled,
				OldValue: label + ": " + dash(before),
				NewValue: label + ": " + dash(after),
				Person:   ed.person(ctx, inv.PersonID),
				Official: ed.official(ctx, inv.OfficialID),
			}))
		}
		plain := func(field auditlog.Field, before, after string) {
			entries = append(entries, ed.recorder.Record(ctx, inv, auditlog.RecordInput{
				Field:    field,
				OldValue: before,
				NewValue: after,
			}))
		}

		if in.Date != nil && !sameDate(inv.Date, in.Date) {
			before := shortDate(inv.Date)
			d := *in.Date
			inv.Date = &d
			reschedule(LabelDate, before, shortDate(inv.Date))
		}
		if in.Time != nil && !sameClock(inv.Time, in.Time) {
			before := invitations.FormatClock(inv.Time)
			c := *in.Time
			inv.Time = &c
			reschedule(LabelTime, before, invitations.FormatClock(inv.Time))
		}
		if in.Municipality != nil && muni != inv.Municipality {
			before := inv.Municipality
			inv.Municipality = muni
			reschedule(LabelMunicipality, before, muni)
		}
		if in.Venue != nil {
			if v := strings.TrimSpace(*in.Venue); v != inv.Venue {
				before := inv.Venue
				inv.Venue = v
				reschedule(LabelVenue, before, v)
			}
		}

		if in.Title != nil {
			if v := strings.TrimSpace(*in.Title); v != inv.Title {
				before := inv.Title
				inv.Title = v
				plain(auditlog.FieldTitle, before, v)
			}
		}
		if in.ConvenerTitle != nil {
			if v := strings.TrimSpace(*in.ConvenerTitle); v != inv.ConvenerTitle {
				before := inv.ConvenerTitle
				inv.ConvenerTitle = v
				plain(auditlog.FieldConvenerTitle, before, v)
			}
		}
		if in.Party != nil && party != inv.Party {
			before := inv.Party
			inv.Party = party
			plain(auditlog.FieldParty, before, party)
		}
		if in.Notes != nil {
			if v := strings.TrimSpace(*in.Notes); v != inv.Notes {
				before := inv.Notes
				inv.Notes = v
				plain(auditlog.FieldNotes, before, v)
			}
		}

		attachmentChanged := false
		if in.ClearAttachment && !inv.Attachment.Empty() {
			inv.Attachment = invitations.Attachment{}
			attachmentChanged = true
		} else if in.Attachment != nil {
			inv.Attachment = *in.Attachment
			attachmentChanged = true
		}

		if len(entries) == 0 && !attachmentChanged {
			out = inv
			return nil
		}

		now := ed.now().UTC()
		inv.UpdatedAt = now
		inv.UpdatedBy = strings.TrimSpace(actor)
		if err := store.UpdateInvitation(ctx, inv); err != nil {
			return fmt.Errorf("update invitation: %w", err)
		}
		for _, entry := range entries {
			if _, err := store.AppendAudit(ctx, entry); err != nil {
				return fmt.Errorf("append audit %s: %w", entry.Field, err)
			}
		}
		out = inv
		return nil
	})
	if err != nil {
		return invitations.Invitation{}, err
	}

	ed.log.Info("invitation updated", map[string]any{"invitation_id": id, "actor": actor})
	return out, nil
}

// Cancel lleva la invitación a Cancelled; es terminal.
func (ed *Editor) Cancel(ctx context.Context, id, actor, comment string) (invitations.Invitation, error) {
	if strings.TrimSpace(id) == "" {
		return invitations.Invitation{}, fmt.Errorf("%w: invitation id required", ErrInvalidInput)
	}

	var out invitations.Invitation
	err := ed.uow.RunInTx(ctx, func(store Store) error {
		inv, err := store.GetInvitationForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, invitations.ErrNotFound) {
				return fmt.Errorf("%w: invitation %s", ErrNotFound, id)
			}
			return err
		}
		if !inv.Status.CanTransition(invitations.StatusCancelled) {
			return fmt.Errorf("%w: invitation is %s", ErrInvalidTransition, inv.Status)
		}

		prevStatus := inv.Status
		now := ed.now().UTC()
		inv.Status = invitations.StatusCancelled
		inv.Notes = AppendNote(inv.Notes, comment)
		inv.UpdatedAt = now
		inv.UpdatedBy = strings.TrimSpace(actor)

		if err := store.UpdateInvitation(ctx, inv); err != nil {
			return fmt.Errorf("update invitation: %w", err)
		}

		entry := ed.recorder.Record(ctx, inv, auditlog.RecordInput{
			Field:    auditlog.FieldStatus,
			OldValue: string(prevStatus),
			NewValue: string(invitations.StatusCancelled),
			Comment:  comment,
			Person:   ed.person(ctx, inv.PersonID),
			Official: ed.official(ctx, inv.OfficialID),
		})
		if _, err := store.AppendAudit(ctx, entry); err != nil {
			return fmt.Errorf("append audit %s: %w", entry.Field, err)
		}
		out = inv
		return nil
	})
	if err != nil {
		return invitations.Invitation{}, err
	}

	ed.log.Info("invitation cancelled", map[string]any{"invitation_id": id, "actor": actor})
	return out, nil
}

func (ed *Editor) person(ctx context.Context, id *int64) *catalog.Person {
	if id == nil {
		return nil
	}
	p, err := ed.catalog.GetPerson(ctx, *id)
	if err != nil {
		return nil
	}
	return &p
}

func (ed *Editor) official(ctx context.Context, id *int64) *catalog.Official {
	if id == nil {
		return nil
	}
	o, err := ed.catalog.GetOfficial(ctx, *id)
	if err != nil {
		return nil
	}
	return &o
}

func shortDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/06")
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameClock(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ah, am, as := a.Clock()
	bh, bm, bs := b.Clock()
	return ah == bh && am == bm && as == bs
}
