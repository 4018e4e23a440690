package auditlog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
	"github.com/FCP2/Secretario-invitaciones/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/invitations/{invitationID}/audit", listAuditHandler(svc))

	// Contrato con el despachador externo
	r.Get("/notifications/pending", listPendingHandler(svc))
	r.Post("/notifications/{entryID}/sent", markSentHandler(svc))
}

// entryResponse es una entrada de bitácora con sus fotos de contacto.
type entryResponse struct {
	ID            int64              `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	InvitationID  string             `json:"invitation_id"`
	Field         Field              `json:"field"`
	OldValue      string             `json:"old_value"`
	NewValue      string             `json:"new_value"`
	Comment       string             `json:"comment"`
	Title         string             `json:"title"`
	ConvenerTitle string             `json:"convener_title"`
	Convener      string             `json:"convener"`
	Status        invitations.Status `json:"status"`
	AssigneeName  string             `json:"assignee_name"`
	Role          string             `json:"role"`
	Date          string             `json:"date"`
	Time          string             `json:"time"`
	Municipality  string             `json:"municipality"`
	Venue         string             `json:"venue"`
	Person        *ContactSnapshot   `json:"person"`
	Official      *ContactSnapshot   `json:"official"`
	Sent          bool               `json:"sent"`
	SentAt        *time.Time         `json:"sent_at"`
}

// listAuditHandler godoc
// @Summary Bitácora de una invitación
// @Description Todas las entradas de la invitación, de la más reciente a la más antigua.
// @Tags audit
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param invitationID path string true "ID de la invitación"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /invitations/{invitationID}/audit [get]
func listAuditHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByInvitation(r.Context(), chi.URLParam(r, "invitationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

// listPendingHandler godoc
// @Summary Confirmaciones pendientes de aviso
// @Description Entradas Status -> Confirmed que el despachador aún no marca como enviadas, de la más antigua a la más reciente.
// @Tags notifications
// @Produce json
// @Param limit query int false "Máximo a devolver (1-500). Por defecto 100"
// @Success 200 {array} entryResponse
// @Router /notifications/pending [get]
func listPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.PendingDispatch(r.Context(), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponses(items))
	}
}

// markSentHandler godoc
// @Summary Marcar aviso como enviado
// @Description Única mutación permitida sobre una entrada. Repetirla no cambia sent_at.
// @Tags notifications
// @Produce json
// @Param entryID path int true "ID de la entrada"
// @Success 200 {object} entryResponse
// @Failure 404 {string} string "audit entry not found"
// @Router /notifications/{entryID}/sent [post]
func markSentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid entry id", http.StatusBadRequest)
			return
		}

		e, err := svc.MarkSent(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "audit entry not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEntryResponses(items []Entry) []entryResponse {
	out := make([]entryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:            e.ID,
		CreatedAt:     e.CreatedAt,
		InvitationID:  e.InvitationID,
		Field:         e.Field,
		OldValue:      e.OldValue,
		NewValue:      e.NewValue,
		Comment:       e.Comment,
		Title:         e.Title,
		ConvenerTitle: e.ConvenerTitle,
		Convener:      e.Convener,
		Status:        e.Status,
		AssigneeName:  e.AssigneeName,
		Role:          e.Role,
		Date:          invitations.FormatDate(e.Date),
		Time:          invitations.FormatClock(e.Time),
		Municipality:  e.Municipality,
		Venue:         e.Venue,
		Person:        e.Person,
		Official:      e.Official,
		Sent:          e.Sent,
		SentAt:        e.SentAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
