package memory

import (
	"context"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/assignment"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

var _ assignment.UnitOfWork = (*Store)(nil)

// RunInTx serializa todas las unidades de trabajo con txMu.
// Las escrituras se acumulan en el txStore y solo se aplican si fn regresa nil.
func (s *Store) RunInTx(ctx context.Context, fn func(store assignment.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txStore{
		s:      s,
		staged: make(map[string]invitations.Invitation),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range tx.order {
		s.invitations[id] = tx.staged[id]
	}
	for _, e := range tx.entries {
		s.appendLocked(e)
	}
	return nil
}

type txStore struct {
	s *Store

	staged  map[string]invitations.Invitation
	order   []string
	entries []auditlog.Entry
}

func (t *txStore) GetInvitationForUpdate(ctx context.Context, id string) (invitations.Invitation, error) {
	if inv, ok := t.staged[id]; ok {
		return inv.Clone(), nil
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	inv, ok := t.s.invitations[id]
	if !ok {
		return invitations.Invitation{}, invitations.ErrNotFound
	}
	return inv.Clone(), nil
}

// LockDelegate no hace nada: txMu ya serializa todo.
func (t *txStore) LockDelegate(ctx context.Context, key string) error {
	return ctx.Err()
}

func (t *txStore) ListConfirmedByPersonOnDate(ctx context.Context, personID int64, date time.Time, excludeID string) ([]invitations.Invitation, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	out := make([]invitations.Invitation, 0)
	seen := make(map[string]struct{})

	consider := func(inv invitations.Invitation) {
		if inv.ID == excludeID || inv.Status != invitations.StatusConfirmed {
			return
		}
		if inv.PersonID == nil || *inv.PersonID != personID {
			return
		}
		if inv.Date == nil || !sameDay(*inv.Date, date) {
			return
		}
		out = append(out, inv.Clone())
	}

	for _, id := range t.order {
		seen[id] = struct{}{}
		consider(t.staged[id])
	}
	for id, inv := range t.s.invitations {
		if _, ok := seen[id]; ok {
			continue
		}
		consider(inv)
	}
	return out, nil
}

func (t *txStore) UpdateInvitation(ctx context.Context, inv invitations.Invitation) error {
	if _, ok := t.staged[inv.ID]; !ok {
		t.s.mu.RLock()
		_, exists := t.s.invitations[inv.ID]
		t.s.mu.RUnlock()
		if !exists {
			return invitations.ErrNotFound
		}
		t.order = append(t.order, inv.ID)
	}
	t.staged[inv.ID] = inv.Clone()
	return nil
}

// AppendAudit reserva el siguiente ID; es seguro porque txMu está tomado.
func (t *txStore) AppendAudit(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error) {
	t.s.mu.RLock()
	next := t.s.lastAuditID + int64(len(t.entries)) + 1
	t.s.mu.RUnlock()

	e = e.Clone()
	e.ID = next
	e.Sent = false
	e.SentAt = nil
	t.entries = append(t.entries, e)
	return e.Clone(), nil
}
