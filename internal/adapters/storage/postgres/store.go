package postgres

import "database/sql"

// Store agrupa los repos y la unidad de trabajo sobre la misma conexión.
type Store struct {
	*UnitOfWork

	db *sql.DB
}

func NewStore(db *sql.DB, opts TxOptions) *Store {
	return &Store{
		UnitOfWork: NewUnitOfWork(db, opts),
		db:         db,
	}
}

func (s *Store) Invitations() *InvitationsRepo { return NewInvitationsRepo(s.db) }
func (s *Store) Audit() *AuditRepo             { return NewAuditRepo(s.db) }
func (s *Store) Catalog() *CatalogRepo         { return NewCatalogRepo(s.db) }
