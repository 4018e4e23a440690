package catalog

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

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/persons", listPersonsHandler(svc))
	r.Post("/persons", createPersonHandler(svc))

	r.Get("/officials", listOfficialsHandler(svc))
	r.Post("/officials", createOfficialHandler(svc))

	r.Route("/catalog", func(cr chi.Router) {
		cr.Get("/genders", listGendersHandler(svc))
		cr.Get("/parties", listPartiesHandler(svc))
		cr.Get("/municipalities", listMunicipalitiesHandler(svc))
	})
}

type contactRequest struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Unit            string `json:"unit"`
	GenderID        *int64 `json:"gender_id"`
	ParticularName  string `json:"particular_name"`
	ParticularTitle string `json:"particular_title"`
	ParticularPhone string `json:"particular_phone"`
}

// personResponse es una persona del catálogo de delegados.
type personResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Unit            string    `json:"unit"`
	GenderID        *int64    `json:"gender_id,omitempty"`
	ParticularName  string    `json:"particular_name"`
	ParticularTitle string    `json:"particular_title"`
	ParticularPhone string    `json:"particular_phone"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

// officialResponse es un funcionario que convoca o cubre eventos.
type officialResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	Phone           string    `json:"phone"`
	GenderID        *int64    `json:"gender_id,omitempty"`
	ParticularName  string    `json:"particular_name"`
	ParticularTitle string    `json:"particular_title"`
	ParticularPhone string    `json:"particular_phone"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

type namedItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listPersonsHandler godoc
// @Summary Listar personas
// @Description Lista las personas que pueden cubrir eventos. Filtra por texto en nombre, cargo o unidad.
// @Tags catalog
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param q query string false "Texto a buscar"
// @Param all query bool false "Incluir inactivas"
// @Success 200 {array} personResponse
// @Failure 401 {string} string "unauthorized"
// @Router /persons [get]
func listPersonsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
		items, err := svc.ListPersons(r.Context(), ListFilter{
			Query:      r.URL.Query().Get("q"),
			ActiveOnly: !all,
			Limit:      parseLimit(r.URL.Query().Get("limit")),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]personResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPersonResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPersonHandler godoc
// @Summary Registrar persona
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body contactRequest true "Datos de la persona"
// @Success 201 {object} personResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /persons [post]
func createPersonHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.CreatePerson(r.Context(), CreatePersonInput{
			Name:            req.Name,
			Title:           req.Title,
			Phone:           req.Phone,
			Email:           req.Email,
			Unit:            req.Unit,
			GenderID:        req.GenderID,
			ParticularName:  req.ParticularName,
			ParticularTitle: req.ParticularTitle,
			ParticularPhone: req.ParticularPhone,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPersonResponse(p))
	}
}

// listOfficialsHandler godoc
// @Summary Listar funcionarios activos
// @Tags catalog
// @Produce json
// @Param q query string false "Texto a buscar"
// @Success 200 {array} officialResponse
// @Failure 401 {string} string "unauthorized"
// @Router /officials [get]
func listOfficialsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListOfficials(r.Context(), ListFilter{
			Query: r.URL.Query().Get("q"),
			Limit: parseLimit(r.URL.Query().Get("limit")),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]officialResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOfficialResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createOfficialHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.CreateOfficial(r.Context(), CreateOfficialInput{
			Name:            req.Name,
			Title:           req.Title,
			Phone:           req.Phone,
			GenderID:        req.GenderID,
			ParticularName:  req.ParticularName,
			ParticularTitle: req.ParticularTitle,
			ParticularPhone: req.ParticularPhone,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOfficialResponse(o))
	}
}

func listGendersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListGenders(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]namedItem, 0, len(items))
		for _, g := range items {
			out = append(out, namedItem{ID: g.ID, Name: g.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listPartiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListParties(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]namedItem, 0, len(items))
		for _, p := range items {
			out = append(out, namedItem{ID: p.ID, Name: p.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listMunicipalitiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Municipalities().Names())
	}
}

func authorized(r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	return ok && strings.TrimSpace(claims.UserID) != ""
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPersonResponse(p Person) personResponse {
	return personResponse{
		ID:              p.ID,
		Name:            p.Name,
		Title:           p.Title,
		Phone:           p.Phone,
		Email:           p.Email,
		Unit:            p.Unit,
		GenderID:        p.GenderID,
		ParticularName:  p.ParticularName,
		ParticularTitle: p.ParticularTitle,
		ParticularPhone: p.ParticularPhone,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
	}
}

func toOfficialResponse(o Official) officialResponse {
	return officialResponse{
		ID:              o.ID,
		Name:            o.Name,
		Title:           o.Title,
		Phone:           o.Phone,
		GenderID:        o.GenderID,
		ParticularName:  o.ParticularName,
		ParticularTitle: o.ParticularTitle,
		ParticularPhone: o.ParticularPhone,
		Active:          o.Active,
		CreatedAt:       o.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
