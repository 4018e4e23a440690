package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/adapters/auth/sessions"
	pg "github.com/FCP2/Secretario-invitaciones/internal/adapters/storage/postgres"
	"github.com/FCP2/Secretario-invitaciones/internal/domain/schedule"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/config"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"
	"github.com/FCP2/Secretario-invitaciones/internal/platform/metrics"
	"github.com/FCP2/Secretario-invitaciones/internal/ports/auth"
	"github.com/FCP2/Secretario-invitaciones/internal/router"

	"github.com/spf13/pflag"
)

// @title Secretario de Invitaciones API
// @version 1.0
// @description Asignación de invitaciones con revisión de agenda y bitácora inmutable.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("secretario-api", pflag.ContinueOnError)
	flags.StringVar(&cfg.Port, "port", cfg.Port, "puerto HTTP (PORT)")
	flags.StringVar(&cfg.DBDSN, "dsn", cfg.DBDSN, "DSN de Postgres; vacío = memoria (DB_DSN)")
	flags.BoolVar(&cfg.DBMigrate, "migrate", cfg.DBMigrate, "crear tablas al arrancar (DB_MIGRATE)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LoggerOptions())
	m := metrics.New()

	var db *sql.DB
	if cfg.UsesPostgres() {
		db, err = pg.Open(cfg.DBDSN, pg.PoolOptions{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		if cfg.DBMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := pg.EnsureSchema(ctx, db)
			cancel()
			if err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN vacío)", nil)
	}

	// sin servicio de sesiones => modo dev (X-Debug-User-ID)
	var verifier auth.AuthVerifier
	if cfg.SessionBaseURL != "" {
		client, err := sessions.NewClient(sessions.Config{
			BaseURL: cfg.SessionBaseURL,
			APIKey:  cfg.SessionAPIKey,
			Timeout: cfg.SessionTimeout,
		})
		if err != nil {
			return fmt.Errorf("sessions client: %w", err)
		}
		verifier = sessions.NewVerifier(client)
	} else {
		log.Warn("auth: dev mode, X-Debug-User-ID accepted", nil)
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
		Metrics:      m,
		Policy: schedule.Policy{
			Duration: cfg.EventDuration,
			Buffer:   cfg.ScheduleBuffer,
			MinGap:   cfg.ScheduleMinGap,
		},
		Tx: pg.TxOptions{
			Timeout:    cfg.TxTimeout,
			MaxRetries: cfg.AssignMaxRetries,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
