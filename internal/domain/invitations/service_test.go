package invitations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID map[string]Invitation
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Invitation{}}
}

func (r *testRepo) Create(ctx context.Context, inv Invitation) error {
	if _, ok := r.byID[inv.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Invitation, error) {
	inv, ok := r.byID[id]
	if !ok {
		return Invitation{}, ErrNotFound
	}
	return inv, nil
}

func (r *testRepo) List(ctx context.Context, filter ListFilter) ([]Invitation, error) {
	out := make([]Invitation, 0)
	for _, inv := range r.byID {
		out = append(out, inv)
	}
	return out, nil
}

func (r *testRepo) ListUpdatedSince(ctx context.Context, since time.Time, limit int) ([]Invitation, error) {
	return nil, nil
}

func (r *testRepo) ListByPerson(ctx context.Context, personID int64, filter ListFilter) ([]Invitation, error) {
	return nil, nil
}

type testCatalog struct {
	officials map[int64]catalog.Official
}

func (c testCatalog) GetOfficial(ctx context.Context, id int64) (catalog.Official, error) {
	o, ok := c.officials[id]
	if !ok {
		return catalog.Official{}, catalog.ErrNotFound
	}
	return o, nil
}

func (c testCatalog) ValidateParty(ctx context.Context, name string) (string, error) {
	if name == "MORENA" || name == "morena" {
		return "MORENA", nil
	}
	return "", catalog.ErrInvalidInput
}

func (c testCatalog) Municipalities() *catalog.Municipalities {
	return catalog.EdomexMunicipalities()
}

func validInput() CreateInput {
	d := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	c := time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC)
	oid := int64(7)
	return CreateInput{
		Date:          &d,
		Time:          &c,
		Title:         "Informe municipal",
		ConvenerTitle: "Presidenta municipal",
		OfficialID:    &oid,
		Party:         "morena",
		Municipality:  "metepec",
		Venue:         "Palacio municipal",
	}
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	cat := testCatalog{officials: map[int64]catalog.Official{
		7: {ID: 7, Name: "Ana López", Title: "Presidenta municipal", Active: true},
		8: {ID: 8, Name: "  "},
	}}
	return NewService(repo, cat), repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizaYQuedaPendiente(t *testing.T) {
	svc, repo := newTestService()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	inv, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if inv.Status != StatusPending {
		t.Fatalf("expected Pending, got %s", inv.Status)
	}
	if inv.Municipality != "Metepec" {
		t.Fatalf("expected canonical municipality, got %q", inv.Municipality)
	}
	if inv.Party != "MORENA" {
		t.Fatalf("expected canonical party, got %q", inv.Party)
	}
	if inv.Convener != "Ana López" {
		t.Fatalf("expected convener from official, got %q", inv.Convener)
	}
	if inv.UpdatedAt != now || inv.UpdatedBy != "user-1" {
		t.Fatalf("expected audit stamps, got %v %q", inv.UpdatedAt, inv.UpdatedBy)
	}
	if _, ok := repo.byID[inv.ID]; !ok {
		t.Fatalf("expected invitation persisted")
	}
	if inv.Delegate().Kind != DelegateNone {
		t.Fatalf("pending invitation must not have a delegate")
	}
}

func TestService_Create_Rechaza(t *testing.T) {
	cases := map[string]func(in *CreateInput){
		"sin fecha":       func(in *CreateInput) { in.Date = nil },
		"sin hora":        func(in *CreateInput) { in.Time = nil },
		"sin evento":      func(in *CreateInput) { in.Title = " " },
		"sin funcionario": func(in *CreateInput) { in.OfficialID = nil },
		"funcionario inexistente": func(in *CreateInput) {
			id := int64(99)
			in.OfficialID = &id
		},
		"funcionario sin nombre": func(in *CreateInput) {
			id := int64(8)
			in.OfficialID = &id
		},
		"municipio fuera de lista": func(in *CreateInput) { in.Municipality = "Puebla" },
		"partido desconocido":      func(in *CreateInput) { in.Party = "XYZ" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo := newTestService()
			in := validInput()
			mutate(&in)

			_, err := svc.Create(context.Background(), "user-1", in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(repo.byID) != 0 {
				t.Fatalf("nothing should be persisted")
			}
		})
	}
}

func TestStatus_CanTransition(t *testing.T) {
	if !StatusPending.CanTransition(StatusConfirmed) || !StatusConfirmed.CanTransition(StatusConfirmed) {
		t.Fatalf("assignment and reassignment must be allowed")
	}
	if !StatusConfirmed.CanTransition(StatusCancelled) {
		t.Fatalf("confirmed can be cancelled")
	}
	if StatusCancelled.CanTransition(StatusConfirmed) || StatusCancelled.CanTransition(StatusCancelled) {
		t.Fatalf("cancelled is terminal")
	}
	if StatusSuperseded.Persistable() {
		t.Fatalf("superseded is audit-only")
	}
}

func TestInvitation_Delegate(t *testing.T) {
	pid, oid := int64(3), int64(7)

	inv := Invitation{OfficialID: &oid, Status: StatusPending}
	if inv.Delegate().Kind != DelegateNone {
		t.Fatalf("convener alone is not a delegate while pending")
	}

	inv.Status = StatusConfirmed
	if d := inv.Delegate(); d.Kind != DelegateOfficial || d.ID != 7 {
		t.Fatalf("expected official delegate, got %+v", d)
	}

	inv.PersonID = &pid
	if d := inv.Delegate(); d.Kind != DelegatePerson || d.ID != 3 {
		t.Fatalf("expected person delegate, got %+v", d)
	}
}

func TestToView_DiasHastaEvento(t *testing.T) {
	d := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	c := time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC)
	up := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	inv := Invitation{
		ID:         "inv-1",
		Date:       &d,
		Time:       &c,
		Status:     StatusConfirmed,
		Attachment: Attachment{URL: "https://files/x.pdf", Name: "x.pdf", MIME: "application/pdf", Size: 10, UploadedAt: &up},
	}

	v := ToView(inv, time.Date(2025, 5, 7, 23, 0, 0, 0, time.UTC))
	if v.Date != "2025-05-10" || v.Time != "09:05" {
		t.Fatalf("unexpected date/time %q %q", v.Date, v.Time)
	}
	if v.DaysUntilEvent == nil || *v.DaysUntilEvent != 3 {
		t.Fatalf("expected 3 days until event, got %v", v.DaysUntilEvent)
	}
	if v.Attachment == nil || v.Attachment.Name != "x.pdf" {
		t.Fatalf("expected attachment metadata")
	}

	empty := ToView(Invitation{ID: "inv-2"}, time.Now())
	if empty.DaysUntilEvent != nil || empty.Attachment != nil {
		t.Fatalf("expected nil days and attachment for incomplete invitation")
	}
}
