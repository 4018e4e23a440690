package auditlog

import (
	"context"
	"time"
)

// Repository no expone ni update ni delete: la única mutación es MarkSent.
type Repository interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	ListByInvitation(ctx context.Context, invitationID string) ([]Entry, error)
	ListPendingDispatch(ctx context.Context, limit int) ([]Entry, error)
	MarkSent(ctx context.Context, id int64, at time.Time) (Entry, error)
}
