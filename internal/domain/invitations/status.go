package invitations

import "strings"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	// StatusSuperseded solo aparece en la bitácora, nunca como estatus vivo.
	StatusSuperseded Status = "Superseded"
	StatusCancelled  Status = "Cancelled"
)

func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{StatusPending, StatusConfirmed, StatusSuperseded, StatusCancelled} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// Persistable indica si el estatus puede guardarse en una invitación.
func (s Status) Persistable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition aplica las reglas de la máquina de estados:
// Pending|Confirmed -> Confirmed (asignar, reasignar)
// Pending|Confirmed -> Cancelled
// Cancelled es terminal.
func (s Status) CanTransition(to Status) bool {
	if s != StatusPending && s != StatusConfirmed {
		return false
	}
	return to == StatusConfirmed || to == StatusCancelled
}
