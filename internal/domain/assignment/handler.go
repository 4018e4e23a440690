package assignment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
	"github.com/FCP2/Secretario-invitaciones/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, engine *Engine, editor *Editor) {
	r.Post("/assign", assignHandler(engine))

	r.Patch("/invitations/{invitationID}", updateInvitationHandler(editor))
	r.Post("/invitations/{invitationID}/cancel", cancelInvitationHandler(editor))
}

// assignRequest liga una invitación con una persona o un funcionario (solo uno).
type assignRequest struct {
	InvitationID string `json:"invitation_id"`
	PersonID     *int64 `json:"person_id"`
	OfficialID   *int64 `json:"official_id"`
	Role         string `json:"role"`
	Comment      string `json:"comment"`
	Force        bool   `json:"force"`
}

type errorResponse struct {
	OK        bool               `json:"ok"`
	Error     string             `json:"error"`
	Message   string             `json:"message,omitempty"`
	Conflicts []invitations.View `json:"conflicts,omitempty"`
}

// assignHandler godoc
// @Summary Asignar invitación
// @Description Confirma la invitación con una persona (revisando su agenda del día) o con un funcionario. `force` omite solo la revisión de agenda. En conflicto regresa 409 con las invitaciones que chocan.
// @Tags assignment
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body assignRequest true "Asignación"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errorResponse "invalid_input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {object} errorResponse "not_found"
// @Failure 409 {object} errorResponse "schedule_conflict / invalid_transition"
// @Failure 500 {object} errorResponse "internal_error"
// @Router /assign [post]
func assignHandler(engine *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid json"})
			return
		}

		err := engine.Assign(r.Context(), AssignInput{
			InvitationID: strings.TrimSpace(req.InvitationID),
			PersonID:     req.PersonID,
			OfficialID:   req.OfficialID,
			Role:         req.Role,
			Comment:      req.Comment,
			Force:        req.Force,
			Actor:        actorName(claims.Username, claims.UserID),
		})
		if err != nil {
			writeAssignError(w, err, time.Now())
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

type updateInvitationRequest struct {
	Date            *string                 `json:"date"`
	Time            *string                 `json:"time"`
	Title           *string                 `json:"title"`
	ConvenerTitle   *string                 `json:"convener_title"`
	Party           *string                 `json:"party"`
	Municipality    *string                 `json:"municipality"`
	Venue           *string                 `json:"venue"`
	Notes           *string                 `json:"notes"`
	Attachment      *invitations.Attachment `json:"attachment"`
	ClearAttachment bool                    `json:"clear_attachment"`
}

// updateInvitationHandler godoc
// @Summary Editar invitación
// @Description Cambios de fecha, hora, municipio o lugar dejan una entrada Rescheduled por campo. No revisa agenda.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitationID path string true "ID de la invitación"
// @Param payload body updateInvitationRequest true "Campos a cambiar"
// @Success 200 {object} invitations.View
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /invitations/{invitationID} [patch]
func updateInvitationHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateInvitationRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid json"})
			return
		}

		in := UpdateInput{
			Title:           req.Title,
			ConvenerTitle:   req.ConvenerTitle,
			Party:           req.Party,
			Municipality:    req.Municipality,
			Venue:           req.Venue,
			Notes:           req.Notes,
			Attachment:      req.Attachment,
			ClearAttachment: req.ClearAttachment,
		}
		if req.Date != nil {
			d, err := invitations.ParseDate(*req.Date)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
				return
			}
			in.Date = &d
		}
		if req.Time != nil {
			c, err := invitations.ParseClock(*req.Time)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
				return
			}
			in.Time = &c
		}

		inv, err := editor.Update(r.Context(), chi.URLParam(r, "invitationID"), actorName(claims.Username, claims.UserID), in)
		if err != nil {
			writeAssignError(w, err, time.Now())
			return
		}

		writeJSON(w, http.StatusOK, invitations.ToView(inv, time.Now()))
	}
}

type cancelRequest struct {
	Comment string `json:"comment"`
}

func cancelInvitationHandler(editor *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// el cuerpo es opcional
		var req cancelRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: "invalid json"})
				return
			}
		}

		inv, err := editor.Cancel(r.Context(), chi.URLParam(r, "invitationID"), actorName(claims.Username, claims.UserID), req.Comment)
		if err != nil {
			writeAssignError(w, err, time.Now())
			return
		}

		writeJSON(w, http.StatusOK, invitations.ToView(inv, time.Now()))
	}
}

func writeAssignError(w http.ResponseWriter, err error, today time.Time) {
	if ce, ok := AsConflict(err); ok {
		views := make([]invitations.View, 0, len(ce.Conflicts))
		for _, inv := range ce.Conflicts {
			views = append(views, invitations.ToView(inv, today))
		}
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     "schedule_conflict",
			Message:   err.Error(),
			Conflicts: views,
		})
		return
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid_transition", Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

func actorName(username, userID string) string {
	if u := strings.TrimSpace(username); u != "" {
		return u
	}
	return strings.TrimSpace(userID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
