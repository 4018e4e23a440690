package assignment

import (
	"errors"
	"fmt"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

// ConflictError lleva las invitaciones confirmadas que chocan con la candidata.
type ConflictError struct {
	Conflicts []invitations.Invitation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict with %d confirmed invitation(s)", len(e.Conflicts))
}

func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
