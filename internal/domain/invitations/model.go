package invitations

import "time"

// Invitation es un evento público al que la organización debe mandar a alguien.
// OfficialID es a la vez quien convoca y, una vez confirmado sin persona,
// el funcionario que lo cubre.
type Invitation struct {
	ID   string
	Date *time.Time
	Time *time.Time

	Title         string
	ConvenerTitle string
	Convener      string
	Party         string
	Municipality  string
	Venue         string
	Notes         string

	Status     Status
	OfficialID *int64
	PersonID   *int64

	AssigneeName string
	Role         string
	AssignedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy string

	Attachment Attachment

	GroupToken string
	SubType    string
}

// Attachment es metadata opaca del archivo adjunto; el almacenamiento es externo.
type Attachment struct {
	URL        string     `json:"url"`
	Name       string     `json:"name"`
	MIME       string     `json:"mime"`
	Size       int64      `json:"size"`
	UploadedAt *time.Time `json:"uploaded_at"`
}

func (a Attachment) Empty() bool {
	return a.URL == "" && a.Name == ""
}

type DelegateKind int

const (
	DelegateNone DelegateKind = iota
	DelegatePerson
	DelegateOfficial
)

// Delegate identifica quién cubre el evento. Nunca son ambos.
type Delegate struct {
	Kind DelegateKind
	ID   int64
}

func (inv Invitation) Delegate() Delegate {
	if inv.PersonID != nil {
		return Delegate{Kind: DelegatePerson, ID: *inv.PersonID}
	}
	if inv.OfficialID != nil && inv.Status == StatusConfirmed {
		return Delegate{Kind: DelegateOfficial, ID: *inv.OfficialID}
	}
	return Delegate{Kind: DelegateNone}
}

type ListFilter struct {
	Status       Status
	From         *time.Time
	To           *time.Time
	Municipality string
	Query        string
	Limit        int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Clone copia los punteros para que el llamador no comparta estado con el store.
func (inv Invitation) Clone() Invitation {
	out := inv
	out.Date = cloneTime(inv.Date)
	out.Time = cloneTime(inv.Time)
	out.AssignedAt = cloneTime(inv.AssignedAt)
	out.Attachment.UploadedAt = cloneTime(inv.Attachment.UploadedAt)
	out.OfficialID = cloneID(inv.OfficialID)
	out.PersonID = cloneID(inv.PersonID)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
