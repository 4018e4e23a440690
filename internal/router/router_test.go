package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FCP2/Secretario-invitaciones/internal/platform/metrics"
	"github.com/FCP2/Secretario-invitaciones/internal/router"
)

const (
	operator = "operador-1"
	day      = "2030-05-10"
)

func TestHTTP_EndToEnd_AssignmentFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil, Metrics: metrics.New()}))
	defer ts.Close()

	// 1) Catálogo: quien convoca y dos delegados
	officialID := createEntity(t, ts.URL, "/officials", map[string]any{
		"name":  "Ana López",
		"title": "Presidenta municipal",
		"phone": "722 100 2000",
	})
	luisID := createEntity(t, ts.URL, "/persons", map[string]any{
		"name":  "Luis Pérez",
		"title": "Enlace regional",
		"phone": "(55) 1234-5678",
	})

	// 2) Tres invitaciones el mismo día
	a := createInvitation(t, ts.URL, officialID, "09:00")
	b := createInvitation(t, ts.URL, officialID, "10:00")
	c := createInvitation(t, ts.URL, officialID, "16:30")

	// 3) Luis cubre A
	{
		st, body := doReq(t, ts.URL, "POST", "/assign", operator, map[string]any{
			"invitation_id": a,
			"person_id":     luisID,
			"comment":       "llevar reconocimiento",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 assign A, got %d body=%s", st, string(body))
		}
	}

	// 4) B choca con A
	{
		st, body := doReq(t, ts.URL, "POST", "/assign", operator, map[string]any{
			"invitation_id": b,
			"person_id":     luisID,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 assign B, got %d body=%s", st, string(body))
		}
		var resp struct {
			OK        bool   `json:"ok"`
			Error     string `json:"error"`
			Conflicts []struct {
				ID string `json:"id"`
			} `json:"conflicts"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.OK || resp.Error != "schedule_conflict" {
			t.Fatalf("unexpected conflict body=%s", string(body))
		}
		if len(resp.Conflicts) != 1 || resp.Conflicts[0].ID != a {
			t.Fatalf("expected conflict with %s, got body=%s", a, string(body))
		}
	}

	// 5) force omite la agenda
	{
		st, body := doReq(t, ts.URL, "POST", "/assign", operator, map[string]any{
			"invitation_id": b,
			"person_id":     luisID,
			"force":         true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 forced assign B, got %d body=%s", st, string(body))
		}
	}

	// 6) Bitácora de A: AssignedTo, Role, Status (más reciente primero)
	{
		entries := listAudit(t, ts.URL, a)
		if len(entries) != 3 {
			t.Fatalf("expected 3 audit entries for A, got %d", len(entries))
		}
		if entries[0].Field != "Status" || entries[0].NewValue != "Confirmed" || entries[0].OldValue != "Pending" {
			t.Fatalf("unexpected latest entry: %+v", entries[0])
		}
		if entries[2].Field != "AssignedTo" || entries[2].Person == nil || entries[2].Person.Phone != "5512345678" {
			t.Fatalf("unexpected AssignedTo entry: %+v", entries[2])
		}
		if entries[2].Official == nil || entries[2].Official.Name != "Ana López" {
			t.Fatalf("expected convener snapshot, got %+v", entries[2].Official)
		}
	}

	// 7) Avisos pendientes: A y B; marcar A
	{
		pending := listPending(t, ts.URL)
		if len(pending) != 2 || pending[0].InvitationID != a || pending[1].InvitationID != b {
			t.Fatalf("unexpected pending: %+v", pending)
		}

		path := fmt.Sprintf("/notifications/%d/sent", pending[0].ID)
		st, body := doReq(t, ts.URL, "POST", path, operator, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"sent":true`) {
			t.Fatalf("expected 200 mark sent, got %d body=%s", st, string(body))
		}

		pending = listPending(t, ts.URL)
		if len(pending) != 1 || pending[0].InvitationID != b {
			t.Fatalf("expected only B pending, got %+v", pending)
		}

		st, _ = doReq(t, ts.URL, "POST", "/notifications/9999/sent", operator, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown entry, got %d", st)
		}
	}

	// 8) Funcionario asignado a C sin revisión de agenda
	{
		st, body := doReq(t, ts.URL, "POST", "/assign", operator, map[string]any{
			"invitation_id": c,
			"official_id":   officialID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 official assign C, got %d body=%s", st, string(body))
		}
	}

	// 9) Cancelar C y ya no se puede asignar
	{
		st, body := doReq(t, ts.URL, "POST", "/invitations/"+c+"/cancel", operator, map[string]any{"comment": "se suspendió"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel C, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/assign", operator, map[string]any{
			"invitation_id": c,
			"person_id":     luisID,
			"force":         true,
		})
		if st != http.StatusConflict || !strings.Contains(string(body), "invalid_transition") {
			t.Fatalf("expected 409 invalid_transition, got %d body=%s", st, string(body))
		}
	}

	// 10) Reprogramar A deja entrada Rescheduled
	{
		st, body := doReq(t, ts.URL, "PATCH", "/invitations/"+a, operator, map[string]any{"time": "12:00"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch A, got %d body=%s", st, string(body))
		}

		entries := listAudit(t, ts.URL, a)
		if entries[0].Field != "Rescheduled" || entries[0].OldValue != "Time: 09:00" || entries[0].NewValue != "Time: 12:00" {
			t.Fatalf("unexpected reschedule entry: %+v", entries[0])
		}
	}

	// 11) Métricas expuestas
	{
		st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "secretario_assignments_total") {
			t.Fatalf("expected assignment metrics, got %d", st)
		}
	}
}

func TestHTTP_Assign_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	officialID := createEntity(t, ts.URL, "/officials", map[string]any{"name": "Ana", "title": "Regidora"})
	personID := createEntity(t, ts.URL, "/persons", map[string]any{"name": "Luis"})
	inv := createInvitation(t, ts.URL, officialID, "09:00")

	cases := []struct {
		name   string
		user   string
		body   map[string]any
		status int
	}{
		{"sin sesión", "", map[string]any{"invitation_id": inv, "person_id": personID}, http.StatusUnauthorized},
		{"ambos delegados", operator, map[string]any{"invitation_id": inv, "person_id": personID, "official_id": officialID}, http.StatusBadRequest},
		{"sin delegado", operator, map[string]any{"invitation_id": inv}, http.StatusBadRequest},
		{"invitación inexistente", operator, map[string]any{"invitation_id": "nope", "person_id": personID}, http.StatusNotFound},
		{"persona inexistente", operator, map[string]any{"invitation_id": inv, "person_id": 999}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, body := doReq(t, ts.URL, "POST", "/assign", tc.user, tc.body)
			if st != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, st, string(body))
			}
		})
	}
}

func TestHTTP_CreateInvitation_RejectsUnknownMunicipality(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	officialID := createEntity(t, ts.URL, "/officials", map[string]any{"name": "Ana"})

	st, _ := doReq(t, ts.URL, "POST", "/invitations", operator, map[string]any{
		"date":           day,
		"time":           "09:00",
		"title":          "Foro",
		"convener_title": "Presidenta",
		"official_id":    officialID,
		"party":          "MORENA",
		"municipality":   "Guadalajara",
		"venue":          "Plaza",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown municipality, got %d", st)
	}
}

func TestHTTP_HealthAndCatalog(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected health ok, got %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/catalog/municipalities", operator, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 municipalities, got %d", st)
	}
	var names []string
	_ = json.Unmarshal(body, &names)
	if len(names) != 125 {
		t.Fatalf("expected 125 municipalities, got %d", len(names))
	}

	st, _ = doReq(t, ts.URL, "GET", "/auth/me", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", st)
	}
	st, body = doReq(t, ts.URL, "GET", "/auth/me", operator, nil)
	if st != http.StatusOK || !strings.Contains(string(body), operator) {
		t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
	}
}

type auditEntry struct {
	ID           int64  `json:"id"`
	InvitationID string `json:"invitation_id"`
	Field        string `json:"field"`
	OldValue     string `json:"old_value"`
	NewValue     string `json:"new_value"`
	Person       *struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"person"`
	Official *struct {
		Name string `json:"name"`
	} `json:"official"`
}

func listAudit(t *testing.T, baseURL, invitationID string) []auditEntry {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/invitations/"+invitationID+"/audit", operator, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 audit, got %d body=%s", st, string(body))
	}
	var out []auditEntry
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode audit: %v body=%s", err, string(body))
	}
	return out
}

func listPending(t *testing.T, baseURL string) []auditEntry {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/notifications/pending", operator, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 pending, got %d body=%s", st, string(body))
	}
	var out []auditEntry
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode pending: %v body=%s", err, string(body))
	}
	return out
}

func createEntity(t *testing.T, baseURL, path string, payload map[string]any) int64 {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, operator, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func createInvitation(t *testing.T, baseURL string, officialID int64, hhmm string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/invitations", operator, map[string]any{
		"date":           day,
		"time":           hhmm,
		"title":          "Evento " + hhmm,
		"convener_title": "Presidenta municipal",
		"official_id":    officialID,
		"party":          "morena",
		"municipality":   "toluca",
		"venue":          "Plaza de los Mártires",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create invitation, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" || resp.Status != "Pending" {
		t.Fatalf("create invitation: unexpected body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
