package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo           Repository
	municipalities *Municipalities
	now            func() time.Time
}

func NewService(repo Repository, municipalities *Municipalities) *Service {
	if municipalities == nil {
		municipalities = EdomexMunicipalities()
	}
	return &Service{
		repo:           repo,
		municipalities: municipalities,
		now:            time.Now,
	}
}

func (s *Service) Municipalities() *Municipalities {
	return s.municipalities
}

func (s *Service) GetPerson(ctx context.Context, id int64) (Person, error) {
	if id <= 0 {
		return Person{}, ErrNotFound
	}
	return s.repo.GetPerson(ctx, id)
}

func (s *Service) GetOfficial(ctx context.Context, id int64) (Official, error) {
	if id <= 0 {
		return Official{}, ErrNotFound
	}
	return s.repo.GetOfficial(ctx, id)
}

func (s *Service) ListPersons(ctx context.Context, filter ListFilter) ([]Person, error) {
	return s.repo.ListPersons(ctx, filter)
}

// ListOfficials solo regresa funcionarios activos.
func (s *Service) ListOfficials(ctx context.Context, filter ListFilter) ([]Official, error) {
	filter.ActiveOnly = true
	return s.repo.ListOfficials(ctx, filter)
}

func (s *Service) ListGenders(ctx context.Context) ([]Gender, error) {
	return s.repo.ListGenders(ctx)
}

func (s *Service) ListParties(ctx context.Context) ([]Party, error) {
	return s.repo.ListParties(ctx)
}

// GenderLabel regresa "" si id es nil o no existe en el catálogo.
func (s *Service) GenderLabel(ctx context.Context, id *int64) string {
	if id == nil {
		return ""
	}
	items, err := s.repo.ListGenders(ctx)
	if err != nil {
		return ""
	}
	for _, g := range items {
		if g.ID == *id {
			return g.Name
		}
	}
	return ""
}

// ValidateParty regresa el nombre del partido tal como está en el catálogo.
func (s *Service) ValidateParty(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: party required", ErrInvalidInput)
	}
	items, err := s.repo.ListParties(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range items {
		if strings.EqualFold(p.Name, name) {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("%w: unknown party %q", ErrInvalidInput, name)
}

type CreatePersonInput struct {
	Name            string
	Title           string
	Phone           string
	Email           string
	Unit            string
	GenderID        *int64
	ParticularName  string
	ParticularTitle string
	ParticularPhone string
}

func (s *Service) CreatePerson(ctx context.Context, in CreatePersonInput) (Person, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Person{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if err := s.checkGender(ctx, in.GenderID); err != nil {
		return Person{}, err
	}

	return s.repo.CreatePerson(ctx, Person{
		Name:            strings.TrimSpace(in.Name),
		Title:           strings.TrimSpace(in.Title),
		Phone:           DigitsOnly(in.Phone),
		Email:           strings.TrimSpace(in.Email),
		Unit:            strings.TrimSpace(in.Unit),
		GenderID:        in.GenderID,
		ParticularName:  strings.TrimSpace(in.ParticularName),
		ParticularTitle: strings.TrimSpace(in.ParticularTitle),
		ParticularPhone: DigitsOnly(in.ParticularPhone),
		Active:          true,
		CreatedAt:       s.now().UTC(),
	})
}

type CreateOfficialInput struct {
	Name            string
	Title           string
	Phone           string
	GenderID        *int64
	ParticularName  string
	ParticularTitle string
	ParticularPhone string
}

func (s *Service) CreateOfficial(ctx context.Context, in CreateOfficialInput) (Official, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Official{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if err := s.checkGender(ctx, in.GenderID); err != nil {
		return Official{}, err
	}

	return s.repo.CreateOfficial(ctx, Official{
		Name:            strings.TrimSpace(in.Name),
		Title:           strings.TrimSpace(in.Title),
		Phone:           DigitsOnly(in.Phone),
		GenderID:        in.GenderID,
		ParticularName:  strings.TrimSpace(in.ParticularName),
		ParticularTitle: strings.TrimSpace(in.ParticularTitle),
		ParticularPhone: DigitsOnly(in.ParticularPhone),
		Active:          true,
		CreatedAt:       s.now().UTC(),
	})
}

func (s *Service) checkGender(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if s.GenderLabel(ctx, id) == "" {
		return fmt.Errorf("%w: unknown gender %d", ErrInvalidInput, *id)
	}
	return nil
}
