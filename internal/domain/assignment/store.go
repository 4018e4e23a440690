package assignment

import (
	"context"
	"strconv"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

// Store es la vista transaccional que usa una unidad de trabajo.
// Nada de lo escrito es visible fuera hasta que RunInTx regresa nil.
type Store interface {
	// GetInvitationForUpdate bloquea la fila hasta el fin de la transacción.
	GetInvitationForUpdate(ctx context.Context, id string) (invitations.Invitation, error)

	// LockDelegate serializa asignaciones concurrentes del mismo delegado.
	LockDelegate(ctx context.Context, key string) error

	ListConfirmedByPersonOnDate(ctx context.Context, personID int64, date time.Time, excludeID string) ([]invitations.Invitation, error)
	UpdateInvitation(ctx context.Context, inv invitations.Invitation) error
	AppendAudit(ctx context.Context, e auditlog.Entry) (auditlog.Entry, error)
}

// UnitOfWork corre fn en una transacción: commit si regresa nil, rollback si no.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// Catalog es la parte del catálogo que consultan asignación y edición.
type Catalog interface {
	GetPerson(ctx context.Context, id int64) (catalog.Person, error)
	GetOfficial(ctx context.Context, id int64) (catalog.Official, error)
	GenderLabel(ctx context.Context, id *int64) string
	ValidateParty(ctx context.Context, name string) (string, error)
	Municipalities() *catalog.Municipalities
}

func PersonLockKey(id int64) string {
	return "person:" + strconv.FormatInt(id, 10)
}
