package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
)

type CatalogRepo struct {
	db *sql.DB
}

var _ catalog.Repository = (*CatalogRepo)(nil)

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

const maxCatalogLimit = 500

const personColumns = `
	id, name, title, phone, email, unit, gender_id,
	particular_name, particular_title, particular_phone,
	active, created_at`

const officialColumns = `
	id, name, title, phone, gender_id,
	particular_name, particular_title, particular_phone,
	active, created_at`

func scanPerson(s scanner) (catalog.Person, error) {
	var p catalog.Person
	var gender sql.NullInt64
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Title,
		&p.Phone,
		&p.Email,
		&p.Unit,
		&gender,
		&p.ParticularName,
		&p.ParticularTitle,
		&p.ParticularPhone,
		&p.Active,
		&p.CreatedAt,
	); err != nil {
		return catalog.Person{}, err
	}
	p.GenderID = nullID(gender)
	return p, nil
}

func scanOfficial(s scanner) (catalog.Official, error) {
	var o catalog.Official
	var gender sql.NullInt64
	if err := s.Scan(
		&o.ID,
		&o.Name,
		&o.Title,
		&o.Phone,
		&gender,
		&o.ParticularName,
		&o.ParticularTitle,
		&o.ParticularPhone,
		&o.Active,
		&o.CreatedAt,
	); err != nil {
		return catalog.Official{}, err
	}
	o.GenderID = nullID(gender)
	return o, nil
}

func (r *CatalogRepo) GetPerson(ctx context.Context, id int64) (catalog.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM persons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Person{}, catalog.ErrNotFound
		}
		return catalog.Person{}, err
	}
	return p, nil
}

func (r *CatalogRepo) GetOfficial(ctx context.Context, id int64) (catalog.Official, error) {
	o, err := scanOfficial(r.db.QueryRowContext(ctx, `SELECT `+officialColumns+` FROM officials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Official{}, catalog.ErrNotFound
		}
		return catalog.Official{}, err
	}
	return o, nil
}

func (r *CatalogRepo) ListPersons(ctx context.Context, filter catalog.ListFilter) ([]catalog.Person, error) {
	where, args := catalogFilter(filter, "name", "title", "unit")
	args = append(args, catalogLimit(filter.Limit))

	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM persons`+where+
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListOfficials(ctx context.Context, filter catalog.ListFilter) ([]catalog.Official, error) {
	where, args := catalogFilter(filter, "name", "title")
	args = append(args, catalogLimit(filter.Limit))

	rows, err := r.db.QueryContext(ctx, `SELECT `+officialColumns+` FROM officials`+where+
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d", len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Official, 0)
	for rows.Next() {
		o, err := scanOfficial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) CreatePerson(ctx context.Context, p catalog.Person) (catalog.Person, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO persons (
			name, title, phone, email, unit, gender_id,
			particular_name, particular_title, particular_phone,
			active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		p.Name,
		p.Title,
		p.Phone,
		p.Email,
		p.Unit,
		idArg(p.GenderID),
		p.ParticularName,
		p.ParticularTitle,
		p.ParticularPhone,
		p.Active,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return catalog.Person{}, err
	}
	return p, nil
}

func (r *CatalogRepo) CreateOfficial(ctx context.Context, o catalog.Official) (catalog.Official, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO officials (
			name, title, phone, gender_id,
			particular_name, particular_title, particular_phone,
			active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		o.Name,
		o.Title,
		o.Phone,
		idArg(o.GenderID),
		o.ParticularName,
		o.ParticularTitle,
		o.ParticularPhone,
		o.Active,
		o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return catalog.Official{}, err
	}
	return o, nil
}

func (r *CatalogRepo) ListGenders(ctx context.Context) ([]catalog.Gender, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM genders ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Gender, 0)
	for rows.Next() {
		var g catalog.Gender
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListParties(ctx context.Context) ([]catalog.Party, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM parties ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Party, 0)
	for rows.Next() {
		var p catalog.Party
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func catalogFilter(f catalog.ListFilter, searchable ...string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.ActiveOnly {
		conds = append(conds, "active = TRUE")
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+q+"%")
		ors := make([]string, 0, len(searchable))
		for _, col := range searchable {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func catalogLimit(limit int) int {
	if limit <= 0 || limit > maxCatalogLimit {
		return maxCatalogLimit
	}
	return limit
}
