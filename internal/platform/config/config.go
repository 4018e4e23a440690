package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FCP2/Secretario-invitaciones/internal/platform/logger"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// DBDSN vacío = almacenamiento en memoria (modo dev).
	DBDSN          string `env:"DB_DSN"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMigrate      bool   `env:"DB_MIGRATE" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"secretario-invitaciones"`

	// Sin SESSION_BASE_URL se usa el modo dev de AuthContext.
	SessionBaseURL string        `env:"SESSION_BASE_URL"`
	SessionAPIKey  string        `env:"SESSION_API_KEY"`
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"3s"`

	EventDuration    time.Duration `env:"EVENT_DURATION" envDefault:"120m"`
	ScheduleBuffer   time.Duration `env:"SCHEDULE_BUFFER" envDefault:"20m"`
	ScheduleMinGap   time.Duration `env:"SCHEDULE_MIN_GAP" envDefault:"45m"`
	AssignMaxRetries int           `env:"ASSIGN_MAX_RETRIES" envDefault:"3"`
	TxTimeout        time.Duration `env:"TX_TIMEOUT" envDefault:"5s"`
}

// Load lee el entorno y valida rangos.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT is empty"))
	}
	if c.EventDuration <= 0 {
		errs = append(errs, errors.New("EVENT_DURATION must be positive"))
	}
	if c.ScheduleBuffer < 0 {
		errs = append(errs, errors.New("SCHEDULE_BUFFER must not be negative"))
	}
	if c.ScheduleMinGap < 0 {
		errs = append(errs, errors.New("SCHEDULE_MIN_GAP must not be negative"))
	}
	if c.AssignMaxRetries < 1 {
		errs = append(errs, errors.New("ASSIGN_MAX_RETRIES must be at least 1"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func (c Config) UsesPostgres() bool {
	return strings.TrimSpace(c.DBDSN) != ""
}

func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
	}
}
