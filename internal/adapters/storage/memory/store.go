package memory

import (
	"sync"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

// Store guarda invitaciones y bitácora juntas para poder escribir ambas
// en una sola unidad de trabajo.
type Store struct {
	mu   sync.RWMutex // protege los datos
	txMu sync.Mutex   // serializa unidades de trabajo y altas de bitácora

	invitations map[string]invitations.Invitation
	audit       []auditlog.Entry // en orden de ID
	lastAuditID int64
}

func NewStore() *Store {
	return &Store{
		invitations: make(map[string]invitations.Invitation),
	}
}

func (s *Store) Invitations() *InvitationRepo {
	return &InvitationRepo{s: s}
}

func (s *Store) Audit() *AuditRepo {
	return &AuditRepo{s: s}
}
