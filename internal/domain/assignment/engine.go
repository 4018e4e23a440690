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
	"github.com/FCP2/Secretario-invitaciones/internal/domain/schedule"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/metrics"
)

// Engine liga un delegado a una invitación sin romper su agenda
// y deja la bitácora del cambio en la misma transacción.
type Engine struct {
	uow      UnitOfWork
	catalog  Catalog
	recorder *auditlog.Recorder
	policy   schedule.Policy
	log      logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewEngine(uow UnitOfWork, cat Catalog, policy schedule.Policy) *Engine {
	return &Engine{
		uow:      uow,
		catalog:  cat,
		recorder: auditlog.NewRecorder(cat),
		policy:   policy.Normalize(),
		log:      logger.Nop(),
		now:      time.Now,
	}
}

func (e *Engine) WithLogger(l logger.Logger) *Engine {
	if l != nil {
		e.log = l
	}
	return e
}

func (e *Engine) WithMetrics(m *metrics.Metrics) *Engine {
	e.metrics = m
	return e
}

// SetClock fija el reloj de la bitácora y de los sellos de tiempo.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
	e.recorder.SetClock(now)
}

type AssignInput struct {
	InvitationID string
	PersonID     *int64
	OfficialID   *int64
	Role         string
	Comment      string
	Force        bool
	Actor        string
}

func (in AssignInput) validate() error {
	if strings.TrimSpace(in.InvitationID) == "" {
		return fmt.Errorf("%w: invitation id required", ErrInvalidInput)
	}
	if (in.PersonID == nil) == (in.OfficialID == nil) {
		return fmt.Errorf("%w: exactly one of person_id or official_id", ErrInvalidInput)
	}
	if in.PersonID != nil && *in.PersonID <= 0 {
		return fmt.Errorf("%w: invalid person_id", ErrInvalidInput)
	}
	if in.OfficialID != nil && *in.OfficialID <= 0 {
		return fmt.Errorf("%w: invalid official_id", ErrInvalidInput)
	}
	return nil
}

// Assign confirma la invitación con una Persona o un Funcionario.
// Con Persona revisa la agenda del mismo día salvo que Force venga en true.
// Errores: ErrInvalidInput, ErrNotFound, *ConflictError, ErrInvalidTransition.
func (e *Engine) Assign(ctx context.Context, in AssignInput) error {
	start := time.Now()
	defer e.metrics.ObserveAssign(start)

	kind := "person"
	if in.OfficialID != nil {
		kind = "official"
	}

	err := e.assign(ctx, in)
	e.metrics.IncAssignment(outcomeOf(err), kind)

	fields := map[string]any{
		"invitation_id": in.InvitationID,
		"delegate":      kind,
		"force":         in.Force,
		"actor":         in.Actor,
	}
	switch {
	case err == nil:
		e.log.Info("invitation assigned", fields)
	case isDomainError(err):
		fields["reason"] = err.Error()
		e.log.Debug("assignment rejected", fields)
	default:
		fields["error"] = err.Error()
		e.log.Error("assignment failed", fields)
	}
	return err
}

func (e *Engine) assign(ctx context.Context, in AssignInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	var (
		person   *catalog.Person
		official *catalog.Official
	)
	if in.PersonID != nil {
		p, err := e.catalog.GetPerson(ctx, *in.PersonID)
		if err != nil {
			return lookupError("person", *in.PersonID, err)
		}
		person = &p
	} else {
		o, err := e.catalog.GetOfficial(ctx, *in.OfficialID)
		if err != nil {
			return lookupError("official", *in.OfficialID, err)
		}
		official = &o
	}

	var written []auditlog.Entry
	err := e.uow.RunInTx(ctx, func(store Store) error {
		written = written[:0]

		if person != nil {
			if err := store.LockDelegate(ctx, PersonLockKey(person.ID)); err != nil {
				return err
			}
		}

		inv, err := store.GetInvitationForUpdate(ctx, in.InvitationID)
		if err != nil {
			if errors.Is(err, invitations.ErrNotFound) {
				return fmt.Errorf("%w: invitation %s", ErrNotFound, in.InvitationID)
			}
			return err
		}
		if !inv.Status.CanTransition(invitations.StatusConfirmed) {
			return fmt.Errorf("%w: invitation is %s", ErrInvalidTransition, inv.Status)
		}

		var entries []auditlog.Entry
		if person != nil {
			entries, err = e.assignPerson(ctx, store, inv, *person, in)
		} else {
			entries, err = e.assignOfficial(ctx, store, inv, *official, in)
		}
		if err != nil {
			return err
		}

		for _, entry := range entries {
			saved, err := store.AppendAudit(ctx, entry)
			if err != nil {
				return fmt.Errorf("append audit %s: %w", entry.Field, err)
			}
			written = append(written, saved)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, w := range written {
		e.metrics.AddAuditEntries(string(w.Field), 1)
	}
	return nil
}

func (e *Engine) assignPerson(ctx context.Context, store Store, inv invitations.Invitation, p catalog.Person, in AssignInput) ([]auditlog.Entry, error) {
	prev := inv.Clone()

	if !in.Force && inv.Date != nil && inv.Time != nil {
		conflicts, err := e.conflictsFor(ctx, store, inv, p.ID)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}
	}

	var entries []auditlog.Entry

	if prev.PersonID != nil && *prev.PersonID != p.ID {
		entries = append(entries, e.recorder.Record(ctx, prev, auditlog.RecordInput{
			Field:          auditlog.FieldSuperseded,
			OldValue:       prev.AssigneeName,
			NewValue:       p.Name,
			Comment:        in.Comment,
			Person:         e.personOrNil(ctx, *prev.PersonID),
			StatusOverride: invitations.StatusSuperseded,
		}))
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = p.Title
	}
	pid := p.ID
	inv.PersonID = &pid
	inv.AssigneeName = p.Name
	inv.Role = role
	inv.Status = invitations.StatusConfirmed
	e.stamp(&inv, in)

	if err := store.UpdateInvitation(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}

	var convener *catalog.Official
	if prev.OfficialID != nil {
		convener = e.officialOrNil(ctx, *prev.OfficialID)
	}

	entries = append(entries, e.confirmationEntries(ctx, prev, inv, in.Comment, &p, convener)...)
	return entries, nil
}

// assignOfficial no revisa agenda: los funcionarios se asignan sin validar traslapes.
func (e *Engine) assignOfficial(ctx context.Context, store Store, inv invitations.Invitation, o catalog.Official, in AssignInput) ([]auditlog.Entry, error) {
	prev := inv.Clone()

	var entries []auditlog.Entry

	if prev.PersonID != nil {
		entries = append(entries, e.recorder.Record(ctx, prev, auditlog.RecordInput{
			Field:          auditlog.FieldSuperseded,
			OldValue:       prev.AssigneeName,
			NewValue:       o.Name,
			Comment:        in.Comment,
			Person:         e.personOrNil(ctx, *prev.PersonID),
			StatusOverride: invitations.StatusSuperseded,
		}))
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = o.Title
	}
	oid := o.ID
	inv.OfficialID = &oid
	inv.PersonID = nil
	inv.AssigneeName = o.Name
	inv.Role = role
	inv.Status = invitations.StatusConfirmed
	e.stamp(&inv, in)

	if err := store.UpdateInvitation(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}

	entries = append(entries, e.confirmationEntries(ctx, prev, inv, in.Comment, nil, &o)...)
	return entries, nil
}

// confirmationEntries arma AssignedTo, Role (si cambió) y Status, en ese orden.
func (e *Engine) confirmationEntries(ctx context.Context, prev, inv invitations.Invitation, comment string, p *catalog.Person, o *catalog.Official) []auditlog.Entry {
	base := auditlog.RecordInput{
		Comment:        comment,
		Person:         p,
		Official:       o,
		StatusOverride: invitations.StatusConfirmed,
	}

	out := make([]auditlog.Entry, 0, 3)

	assigned := base
	assigned.Field = auditlog.FieldAssignedTo
	assigned.OldValue = prev.AssigneeName
	assigned.NewValue = inv.AssigneeName
	out = append(out, e.recorder.Record(ctx, inv, assigned))

	if prev.Role != inv.Role {
		role := base
		role.Field = auditlog.FieldRole
		role.OldValue = prev.Role
		role.NewValue = inv.Role
		out = append(out, e.recorder.Record(ctx, inv, role))
	}

	status := base
	status.Field = auditlog.FieldStatus
	status.OldValue = string(prev.Status)
	status.NewValue = string(invitations.StatusConfirmed)
	out = append(out, e.recorder.Record(ctx, inv, status))

	return out
}

func (e *Engine) conflictsFor(ctx context.Context, store Store, inv invitations.Invitation, personID int64) ([]invitations.Invitation, error) {
	siblings, err := store.ListConfirmedByPersonOnDate(ctx, personID, *inv.Date, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("list same-day invitations: %w", err)
	}

	candidate := e.policy.Window(inv.Date, inv.Time)
	var out []invitations.Invitation
	for _, s := range siblings {
		if s.ID == inv.ID {
			continue
		}
		if e.policy.Collides(candidate, e.policy.Window(s.Date, s.Time)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (e *Engine) stamp(inv *invitations.Invitation, in AssignInput) {
	now := e.now().UTC()
	inv.Notes = AppendNote(inv.Notes, in.Comment)
	inv.AssignedAt = &now
	inv.UpdatedAt = now
	inv.UpdatedBy = strings.TrimSpace(in.Actor)
}

func (e *Engine) personOrNil(ctx context.Context, id int64) *catalog.Person {
	p, err := e.catalog.GetPerson(ctx, id)
	if err != nil {
		return nil
	}
	return &p
}

func (e *Engine) officialOrNil(ctx context.Context, id int64) *catalog.Official {
	o, err := e.catalog.GetOfficial(ctx, id)
	if err != nil {
		return nil
	}
	return &o
}

// AppendNote agrega comment a las observaciones con separador " | ".
func AppendNote(notes, comment string) string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return comment
	}
	return notes + " | " + comment
}

func lookupError(kind string, id int64, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	return fmt.Errorf("lookup %s: %w", kind, err)
}

func isDomainError(err error) bool {
	if _, ok := AsConflict(err); ok {
		return true
	}
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition)
}

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeAssigned
	}
	if _, ok := AsConflict(err); ok {
		return metrics.OutcomeConflict
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrInvalidTransition):
		return metrics.OutcomeInvalidTransition
	default:
		return metrics.OutcomeError
	}
}
