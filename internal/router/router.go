package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	_ "github.com/FCP2/Secretario-invitaciones/docs"
	mem "github.com/FCP2/Secretario-invitaciones/internal/adapters/storage/memory"
	pg "github.com/FCP2/Secretario-invitaciones/internal/adapters/storage/postgres"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/assignment"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/auditlog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/catalog"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/invitations"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/schedule"
	"github.com/FCP2/Secretario-invitaciones/internal/middleware"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/metrics"
	"github.com/FCP2/Secretario-invitaciones/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Policy vacía = DefaultPolicy.
	Policy schedule.Policy

	// Solo aplica con DB.
	Tx pg.TxOptions
}

type storage struct {
	invitations invitations.Repository
	audit       auditlog.Repository
	catalog     catalog.Repository
	uow         assignment.UnitOfWork
	ping        func(ctx context.Context) error
}

func newStorage(opts Options) storage {
	if opts.DB != nil {
		tx := opts.Tx
		tx.Metrics = opts.Metrics
		tx.Logger = opts.Logger
		s := pg.NewStore(opts.DB, tx)
		return storage{
			invitations: s.Invitations(),
			audit:       s.Audit(),
			catalog:     s.Catalog(),
			uow:         s,
			ping:        opts.DB.PingContext,
		}
	}

	s := mem.NewStore()
	return storage{
		invitations: s.Invitations(),
		audit:       s.Audit(),
		catalog:     mem.NewCatalogRepo(),
		uow:         s,
		ping:        func(context.Context) error { return nil },
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	policy := opts.Policy
	if policy == (schedule.Policy{}) {
		policy = schedule.DefaultPolicy()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	store := newStorage(opts)

	r.Get("/health", healthHandler(store.ping))
	r.Handle("/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/auth/me", meHandler)

	// Services por módulo
	catalogSvc := catalog.NewService(store.catalog, nil)
	invitationsSvc := invitations.NewService(store.invitations, catalogSvc)
	auditSvc := auditlog.NewService(store.audit).WithMetrics(opts.Metrics)
	engine := assignment.NewEngine(store.uow, catalogSvc, policy).
		WithLogger(log.With(map[string]any{"component": "assignment"})).
		WithMetrics(opts.Metrics)
	editor := assignment.NewEditor(store.uow, catalogSvc).
		WithLogger(log.With(map[string]any{"component": "editor"}))

	// Rutas por módulo
	catalog.RegisterRoutes(r, catalogSvc)
	invitations.RegisterRoutes(r, invitationsSvc)
	auditlog.RegisterRoutes(r, auditSvc)
	assignment.RegisterRoutes(r, engine, editor)

	return r
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error("health check failed", map[string]any{"error": err.Error()})
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// meHandler regresa los claims de la sesión actual.
func meHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "auth": false})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":       true,
		"auth":     true,
		"user_id":  claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
