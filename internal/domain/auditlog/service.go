package auditlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("audit entry not found")
)

const (
	DefaultPendingLimit = 100
	MaxPendingLimit     = 500
)

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.metrics = m
	return s
}

// ListByInvitation regresa la bitácora de más reciente a más antigua.
func (s *Service) ListByInvitation(ctx context.Context, invitationID string) ([]Entry, error) {
	if strings.TrimSpace(invitationID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByInvitation(ctx, invitationID)
}

// PendingDispatch es lo que el despachador debe avisar, de más antigua a más reciente.
func (s *Service) PendingDispatch(ctx context.Context, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultPendingLimit
	case limit > MaxPendingLimit:
		limit = MaxPendingLimit
	}
	return s.repo.ListPendingDispatch(ctx, limit)
}

// MarkSent es idempotente: si ya estaba enviada conserva el SentAt original.
func (s *Service) MarkSent(ctx context.Context, id int64) (Entry, error) {
	if id <= 0 {
		return Entry{}, ErrInvalidInput
	}
	e, err := s.repo.MarkSent(ctx, id, s.now().UTC())
	if err != nil {
		return Entry{}, err
	}
	s.metrics.IncNotificationMarked()
	return e, nil
}
