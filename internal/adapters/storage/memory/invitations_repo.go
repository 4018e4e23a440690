package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

type InvitationRepo struct {
	s *Store
}

var _ invitations.Repository = (*InvitationRepo)(nil)

func (r *InvitationRepo) Create(ctx context.Context, inv invitations.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if inv.ID == "" {
		return errors.New("invitation id required")
	}
	if _, exists := r.s.invitations[inv.ID]; exists {
		return errors.New("invitation already exists")
	}

	r.s.invitations[inv.ID] = inv.Clone()
	return nil
}

func (r *InvitationRepo) GetByID(ctx context.Context, id string) (invitations.Invitation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv, ok := r.s.invitations[id]
	if !ok {
		return invitations.Invitation{}, invitations.ErrNotFound
	}
	return inv.Clone(), nil
}

func (r *InvitationRepo) List(ctx context.Context, filter invitations.ListFilter) ([]invitations.Invitation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]invitations.Invitation, 0)
	for _, inv := range r.s.invitations {
		if !matches(inv, filter) {
			continue
		}
		out = append(out, inv.Clone())
	}

	// Más reciente primero
	sort.Slice(out, func(i, j int) bool {
		return chronoLess(out[j], out[i])
	})

	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InvitationRepo) ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]invitations.Invitation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]invitations.Invitation, 0)
	for _, inv := range r.s.invitations {
		if inv.UpdatedAt.After(since) {
			out = append(out, inv.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InvitationRepo) ListByPerson(ctx context.Context, personID int64, filter invitations.ListFilter) ([]invitations.Invitation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]invitations.Invitation, 0)
	for _, inv := range r.s.invitations {
		if inv.PersonID == nil || *inv.PersonID != personID {
			continue
		}
		if !matches(inv, filter) {
			continue
		}
		out = append(out, inv.Clone())
	}

	// Agenda: orden cronológico
	sort.Slice(out, func(i, j int) bool {
		return chronoLess(out[i], out[j])
	})

	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(inv invitations.Invitation, f invitations.ListFilter) bool {
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if f.From != nil && (inv.Date == nil || dayBefore(*inv.Date, *f.From)) {
		return false
	}
	if f.To != nil && (inv.Date == nil || dayBefore(*f.To, *inv.Date)) {
		return false
	}
	if m := strings.TrimSpace(f.Municipality); m != "" {
		if !strings.Contains(strings.ToLower(inv.Municipality), strings.ToLower(m)) {
			return false
		}
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		hay := strings.ToLower(strings.Join([]string{inv.Title, inv.Venue, inv.Convener, inv.Party, inv.Municipality}, " "))
		if !strings.Contains(hay, strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// chronoLess ordena por fecha y luego hora; sin fecha va al principio.
func chronoLess(a, b invitations.Invitation) bool {
	ak, bk := chronoKey(a), chronoKey(b)
	if !ak.Equal(bk) {
		return ak.Before(bk)
	}
	return a.ID < b.ID
}

func chronoKey(inv invitations.Invitation) time.Time {
	if inv.Date == nil {
		return time.Time{}
	}
	y, m, d := inv.Date.Date()
	var h, mi, s int
	if inv.Time != nil {
		h, mi, s = inv.Time.Clock()
	}
	return time.Date(y, m, d, h, mi, s, 0, time.UTC)
}

func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Before(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
