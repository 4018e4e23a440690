package catalog

import "context"

// Repository es de solo lectura para el núcleo; las altas existen para captura y pruebas.
type Repository interface {
	GetPerson(ctx context.Context, id int64) (Person, error)
	GetOfficial(ctx context.Context, id int64) (Official, error)
	ListPersons(ctx context.Context, filter ListFilter) ([]Person, error)
	ListOfficials(ctx context.Context, filter ListFilter) ([]Official, error)
	CreatePerson(ctx context.Context, p Person) (Person, error)
	CreateOfficial(ctx context.Context, o Official) (Official, error)

	ListGenders(ctx context.Context) ([]Gender, error)
	ListParties(ctx context.Context) ([]Party, error)
}
