package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
)

type CatalogRepo struct {
	mu sync.RWMutex

	persons   map[int64]catalog.Person
	officials map[int64]catalog.Official
	genders   []catalog.Gender
	parties   []catalog.Party

	lastPersonID   int64
	lastOfficialID int64
}

var _ catalog.Repository = (*CatalogRepo)(nil)

// NewCatalogRepo arranca con géneros y partidos por defecto.
func NewCatalogRepo() *CatalogRepo {
	r := &CatalogRepo{
		persons:   make(map[int64]catalog.Person),
		officials: make(map[int64]catalog.Official),
	}
	for i, name := range catalog.DefaultGenders {
		r.genders = append(r.genders, catalog.Gender{ID: int64(i + 1), Name: name})
	}
	for i, name := range catalog.DefaultParties {
		r.parties = append(r.parties, catalog.Party{ID: int64(i + 1), Name: name})
	}
	return r
}

func (r *CatalogRepo) GetPerson(ctx context.Context, id int64) (catalog.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.persons[id]
	if !ok {
		return catalog.Person{}, catalog.ErrNotFound
	}
	return p, nil
}

func (r *CatalogRepo) GetOfficial(ctx context.Context, id int64) (catalog.Official, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.officials[id]
	if !ok {
		return catalog.Official{}, catalog.ErrNotFound
	}
	return o, nil
}

func (r *CatalogRepo) ListPersons(ctx context.Context, filter catalog.ListFilter) ([]catalog.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]catalog.Person, 0)
	for _, p := range r.persons {
		if filter.ActiveOnly && !p.Active {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Title+" "+p.Unit), q) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return limitSlice(out, filter.Limit), nil
}

func (r *CatalogRepo) ListOfficials(ctx context.Context, filter catalog.ListFilter) ([]catalog.Official, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]catalog.Official, 0)
	for _, o := range r.officials {
		if filter.ActiveOnly && !o.Active {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(o.Name+" "+o.Title), q) {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return limitSlice(out, filter.Limit), nil
}

func (r *CatalogRepo) CreatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastPersonID++
	p.ID = r.lastPersonID
	r.persons[p.ID] = p
	return p, nil
}

func (r *CatalogRepo) CreateOfficial(ctx context.Context, o catalog.Official) (catalog.Official, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastOfficialID++
	o.ID = r.lastOfficialID
	r.officials[o.ID] = o
	return o, nil
}

func (r *CatalogRepo) ListGenders(ctx context.Context) ([]catalog.Gender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Gender, len(r.genders))
	copy(out, r.genders)
	return out, nil
}

func (r *CatalogRepo) ListParties(ctx context.Context) ([]catalog.Party, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Party, len(r.parties))
	copy(out, r.parties)
	return out, nil
}

func limitSlice[T any](items []T, limit int) []T {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
