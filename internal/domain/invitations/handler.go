package invitations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes usa patrones planos porque otros módulos cuelgan rutas de /invitations/{invitationID}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/invitations", createInvitationHandler(svc))
	r.Get("/invitations", listInvitationsHandler(svc))

	// Polling del tablero
	r.Get("/invitations/updates", updatesHandler(svc))

	r.Get("/invitations/{invitationID}", getInvitationHandler(svc))

	r.Get("/persons/{personID}/invitations", listByPersonHandler(svc))
}

// createInvitationRequest es el cuerpo para capturar una invitación.
type createInvitationRequest struct {
	Date          string      `json:"date"` // YYYY-MM-DD
	Time          string      `json:"time"` // HH:MM
	Title         string      `json:"title"`
	ConvenerTitle string      `json:"convener_title"`
	OfficialID    *int64      `json:"official_id"`
	Party         string      `json:"party"`
	Municipality  string      `json:"municipality"`
	Venue         string      `json:"venue"`
	Notes         string      `json:"notes"`
	GroupToken    string      `json:"group_token"`
	SubType       string      `json:"sub_type"`
	Attachment    *Attachment `json:"attachment"`
}

// invitationResponse es la invitación completa devuelta por la API.
type invitationResponse struct {
	View
	ConvenerTitle string     `json:"convener_title"`
	Party         string     `json:"party"`
	Municipality  string     `json:"municipality"`
	Venue         string     `json:"venue"`
	OfficialID    *int64     `json:"official_id"`
	PersonID      *int64     `json:"person_id"`
	AssignedAt    *time.Time `json:"assigned_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UpdatedBy     string     `json:"updated_by"`
	GroupToken    string     `json:"group_token,omitempty"`
	SubType       string     `json:"sub_type,omitempty"`
}

// createInvitationHandler godoc
// @Summary Capturar invitación
// @Description Registra una invitación en estatus Pending. El municipio se valida contra la lista blanca y el partido contra el catálogo. Quien convoca se toma del funcionario indicado.
// @Tags invitations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createInvitationRequest true "Datos de la invitación"
// @Success 201 {object} invitationResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /invitations [post]
func createInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createInvitationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := ParseDate(req.Date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c, err := ParseClock(req.Time)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Date:          &d,
			Time:          &c,
			Title:         req.Title,
			ConvenerTitle: req.ConvenerTitle,
			OfficialID:    req.OfficialID,
			Party:         req.Party,
			Municipality:  req.Municipality,
			Venue:         req.Venue,
			Notes:         req.Notes,
			GroupToken:    req.GroupToken,
			SubType:       req.SubType,
		}
		if req.Attachment != nil {
			in.Attachment = Attachment{
				URL:        strings.TrimSpace(req.Attachment.URL),
				Name:       strings.TrimSpace(req.Attachment.Name),
				MIME:       strings.TrimSpace(req.Attachment.MIME),
				Size:       req.Attachment.Size,
				UploadedAt: req.Attachment.UploadedAt,
			}
		}

		actor := strings.TrimSpace(claims.Username)
		if actor == "" {
			actor = claims.UserID
		}

		inv, err := svc.Create(r.Context(), actor, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toInvitationResponse(inv, svc.Today()))
	}
}

// listInvitationsHandler godoc
// @Summary Listar invitaciones
// @Tags invitations
// @Produce json
// @Param status query string false "Pending | Confirmed | Cancelled"
// @Param from query string false "Fecha inicial YYYY-MM-DD"
// @Param to query string false "Fecha final YYYY-MM-DD"
// @Param municipality query string false "Municipio (contiene)"
// @Param q query string false "Texto en evento, lugar, convoca, partido o municipio"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Success 200 {array} invitationResponse
// @Failure 400 {string} string "filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /invitations [get]
func listInvitationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toInvitationResponses(items, svc.Today()))
	}
}

// updatesHandler godoc
// @Summary Invitaciones modificadas desde un instante
// @Tags invitations
// @Produce json
// @Param since query string true "RFC3339"
// @Success 200 {array} invitationResponse
// @Router /invitations/updates [get]
func updatesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		since, err := time.Parse(time.RFC3339, strings.TrimSpace(r.URL.Query().Get("since")))
		if err != nil {
			http.Error(w, "since must be RFC3339", http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		items, err := svc.UpdatedSince(r.Context(), since, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"items":       toInvitationResponses(items, svc.Today()),
			"server_time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func getInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		inv, err := svc.GetByID(r.Context(), chi.URLParam(r, "invitationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInvitationResponse(inv, svc.Today()))
	}
}

// listByPersonHandler godoc
// @Summary Agenda de una persona
// @Description Invitaciones asignadas a la persona, en orden cronológico.
// @Tags invitations
// @Produce json
// @Param personID path int true "ID de la persona"
// @Success 200 {array} invitationResponse
// @Router /persons/{personID}/invitations [get]
func listByPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		personID, err := strconv.ParseInt(chi.URLParam(r, "personID"), 10, 64)
		if err != nil || personID <= 0 {
			http.Error(w, "invalid person id", http.StatusBadRequest)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByPerson(r.Context(), personID, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toInvitationResponses(items, svc.Today()))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	f := ListFilter{
		Municipality: strings.TrimSpace(q.Get("municipality")),
		Query:        strings.TrimSpace(q.Get("q")),
	}

	if v := strings.TrimSpace(q.Get("status")); v != "" {
		st, ok := ParseStatus(v)
		if !ok {
			return ListFilter{}, errors.New("invalid status")
		}
		f.Status = st
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("from must be YYYY-MM-DD")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			return ListFilter{}, errors.New("to must be YYYY-MM-DD")
		}
		f.To = &t
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ListFilter{}, errors.New("limit must be a number")
		}
		f.Limit = n
	}
	return f, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "invitation not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toInvitationResponses(items []Invitation, today time.Time) []invitationResponse {
	out := make([]invitationResponse, 0, len(items))
	for _, inv := range items {
		out = append(out, toInvitationResponse(inv, today))
	}
	return out
}

func toInvitationResponse(inv Invitation, today time.Time) invitationResponse {
	return invitationResponse{
		View:          ToView(inv, today),
		ConvenerTitle: inv.ConvenerTitle,
		Party:         inv.Party,
		Municipality:  inv.Municipality,
		Venue:         inv.Venue,
		OfficialID:    inv.OfficialID,
		PersonID:      inv.PersonID,
		AssignedAt:    inv.AssignedAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		UpdatedBy:     inv.UpdatedBy,
		GroupToken:    inv.GroupToken,
		SubType:       inv.SubType,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
