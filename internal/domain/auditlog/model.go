package auditlog

import (
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
)

// Field nombra el cambio que registra una entrada.
type Field string

const (
	FieldAssignedTo    Field = "AssignedTo"
	FieldRole          Field = "Role"
	FieldStatus        Field = "Status"
	FieldSuperseded    Field = "Superseded"
	FieldRescheduled   Field = "Rescheduled"
	FieldTitle         Field = "Title"
	FieldConvenerTitle Field = "ConvenerTitle"
	FieldParty         Field = "Party"
	FieldNotes         Field = "Notes"
)

// ContactSnapshot congela los datos de contacto al momento del cambio.
// Todos los campos valen "" cuando no hay dato; los teléfonos solo llevan dígitos.
type ContactSnapshot struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Phone           string `json:"phone"`
	Gender          string `json:"gender"`
	ParticularName  string `json:"particular_name"`
	ParticularTitle string `json:"particular_title"`
	ParticularPhone string `json:"particular_phone"`
}

// Entry es inmutable una vez escrita, salvo Sent/SentAt que marca el despachador.
type Entry struct {
	ID           int64
	CreatedAt    time.Time
	InvitationID string
	Field        Field
	OldValue     string
	NewValue     string
	Comment      string

	Title         string
	ConvenerTitle string
	Convener      string
	Status        invitations.Status
	AssigneeName  string
	Role          string
	Date          *time.Time
	Time          *time.Time
	Municipality  string
	Venue         string

	Person   *ContactSnapshot
	Official *ContactSnapshot

	Sent   bool
	SentAt *time.Time
}

// Dispatchable indica si el despachador externo debe avisar de esta entrada.
func (e Entry) Dispatchable() bool {
	return e.Field == FieldStatus && e.NewValue == string(invitations.StatusConfirmed) && !e.Sent
}

// Clone evita que el llamador comparta punteros con el store.
func (e Entry) Clone() Entry {
	out := e
	if e.Date != nil {
		d := *e.Date
		out.Date = &d
	}
	if e.Time != nil {
		t := *e.Time
		out.Time = &t
	}
	if e.SentAt != nil {
		s := *e.SentAt
		out.SentAt = &s
	}
	if e.Person != nil {
		p := *e.Person
		out.Person = &p
	}
	if e.Official != nil {
		o := *e.Official
		out.Official = &o
	}
	return out
}
