package invitations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("invitation not found")
)

// Catalog es lo que la captura necesita del catálogo.
type Catalog interface {
	GetOfficial(ctx context.Context, id int64) (catalog.Official, error)
	ValidateParty(ctx context.Context, name string) (string, error)
	Municipalities() *catalog.Municipalities
}

type Service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, cat Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: cat,
		now:     time.Now,
	}
}

type CreateInput struct {
	Date          *time.Time
	Time          *time.Time
	Title         string
	ConvenerTitle string
	OfficialID    *int64
	Party         string
	Municipality  string
	Venue         string
	Notes         string
	GroupToken    string
	SubType       string
	Attachment    Attachment
}

// Create registra una invitación nueva en estatus Pending.
// El texto de quien convoca siempre es el nombre del funcionario referenciado.
func (s *Service) Create(ctx context.Context, actor string, in CreateInput) (Invitation, error) {
	if in.Date == nil || in.Time == nil {
		return Invitation{}, fmt.Errorf("%w: date and time required", ErrInvalidInput)
	}
	title := strings.TrimSpace(in.Title)
	convTitle := strings.TrimSpace(in.ConvenerTitle)
	venue := strings.TrimSpace(in.Venue)
	if title == "" || convTitle == "" || venue == "" {
		return Invitation{}, fmt.Errorf("%w: title, convener_title and venue required", ErrInvalidInput)
	}
	if in.OfficialID == nil {
		return Invitation{}, fmt.Errorf("%w: official_id required", ErrInvalidInput)
	}

	official, err := s.catalog.GetOfficial(ctx, *in.OfficialID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Invitation{}, fmt.Errorf("%w: unknown official %d", ErrInvalidInput, *in.OfficialID)
		}
		return Invitation{}, err
	}
	if strings.TrimSpace(official.Name) == "" {
		return Invitation{}, fmt.Errorf("%w: official %d has no name", ErrInvalidInput, official.ID)
	}

	muni, ok := s.catalog.Municipalities().Canonical(in.Municipality)
	if !ok {
		return Invitation{}, fmt.Errorf("%w: unknown municipality %q", ErrInvalidInput, in.Municipality)
	}

	party, err := s.catalog.ValidateParty(ctx, in.Party)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			return Invitation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Invitation{}, err
	}

	now := s.now().UTC()
	officialID := official.ID
	inv := Invitation{
		ID:            uuid.NewString(),
		Date:          cloneTime(in.Date),
		Time:          cloneTime(in.Time),
		Title:         title,
		ConvenerTitle: convTitle,
		Convener:      strings.TrimSpace(official.Name),
		Party:         party,
		Municipality:  muni,
		Venue:         venue,
		Notes:         strings.TrimSpace(in.Notes),
		Status:        StatusPending,
		OfficialID:    &officialID,
		CreatedAt:     now,
		UpdatedAt:     now,
		UpdatedBy:     strings.TrimSpace(actor),
		Attachment:    in.Attachment,
		GroupToken:    strings.TrimSpace(in.GroupToken),
		SubType:       strings.TrimSpace(in.SubType),
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return Invitation{}, err
	}
	return inv, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Invitation, error) {
	if strings.TrimSpace(id) == "" {
		return Invitation{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Invitation, error) {
	return s.repo.List(ctx, filter)
}

// UpdatedSince alimenta el polling del tablero.
func (s *Service) UpdatedSince(ctx context.Context, since time.Time, limit int) ([]Invitation, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListUpdatedSince(ctx, since, limit)
}

func (s *Service) ListByPerson(ctx context.Context, personID int64, filter ListFilter) ([]Invitation, error) {
	if personID <= 0 {
		return nil, fmt.Errorf("%w: person id required", ErrInvalidInput)
	}
	return s.repo.ListByPerson(ctx, personID, filter)
}

// Today es la fecha de referencia para days_until_event.
func (s *Service) Today() time.Time {
	return s.now()
}
