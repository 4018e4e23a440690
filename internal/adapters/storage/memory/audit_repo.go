package memory

import (
	"context"
	"sort"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
)

type AuditRepo struct {
	s *Store
}

var _ auditlog.Repository = (*AuditRepo)(nil)

func (r *AuditRepo) Append(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error) {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.appendLocked(e), nil
}

// ListByInvitation: más reciente primero (created_at desc, id desc).
func (r *AuditRepo) ListByInvitation(ctx context.Context, invitationID string) ([]auditlog.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]auditlog.Entry, 0)
	for _, e := range r.s.audit {
		if e.InvitationID == invitationID {
			out = append(out, e.Clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ListPendingDispatch: más antigua primero.
func (r *AuditRepo) ListPendingDispatch(ctx context.Context, limit int) ([]auditlog.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]auditlog.Entry, 0)
	for _, e := range r.s.audit {
		if !e.Dispatchable() {
			continue
		}
		out = append(out, e.Clone())
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *AuditRepo) MarkSent(ctx context.Context, id int64, at time.Time) (auditlog.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOfLocked(id)
	if i < 0 {
		return auditlog.Entry{}, auditlog.ErrNotFound
	}

	e := &r.s.audit[i]
	if !e.Sent {
		t := at
		e.Sent = true
		e.SentAt = &t
	}
	return e.Clone(), nil
}

func (s *Store) appendLocked(e auditlog.Entry) auditlog.Entry {
	s.lastAuditID++
	e = e.Clone()
	e.ID = s.lastAuditID
	e.Sent = false
	e.SentAt = nil
	s.audit = append(s.audit, e)
	return e.Clone()
}

func (s *Store) indexOfLocked(id int64) int {
	i := sort.Search(len(s.audit), func(i int) bool { return s.audit[i].ID >= id })
	if i < len(s.audit) && s.audit[i].ID == id {
		return i
	}
	return -1
}
