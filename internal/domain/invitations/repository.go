package invitations

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, inv Invitation) error
	GetByID(ctx context.Context, id string) (Invitation, error)
	List(ctx context.Context, filter ListFilter) ([]Invitation, error)
	ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]Invitation, error)
	ListByPerson(ctx context.Context, personID int64, filter ListFilter) ([]Invitation, error)
}
