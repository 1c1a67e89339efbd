package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/heroguide/pkg/log"
)

const (
	KnowledgeBackendJSON   = "json"
	KnowledgeBackendSQLite = "sqlite"
)

type AppConfig struct {
	RuntimePath string `env:"HERO_RUNTIME_PATH" envDefault:".heroguide"`

	// Transport Flags
	EnableTelegram bool `env:"HERO_ENABLE_TELEGRAM" envDefault:"true"`
	EnableCLI      bool `env:"HERO_ENABLE_CLI" envDefault:"false"`

	// Knowledge base
	KnowledgeBackend         string `env:"HERO_KB_BACKEND" envDefault:"json"`
	KnowledgeRefreshSchedule string `env:"HERO_KB_REFRESH_SCHEDULE" envDefault:"@every 1h"`
	WatchKnowledgeFile       bool   `env:"HERO_KB_WATCH" envDefault:"true"`

	// Session memory
	SessionWindow        time.Duration `env:"HERO_SESSION_WINDOW" envDefault:"1h"`
	SessionMaxUsers      int           `env:"HERO_SESSION_MAX_USERS" envDefault:"10000"`
	SessionSweepSchedule string        `env:"HERO_SESSION_SWEEP_SCHEDULE" envDefault:"@every 10m"`

	// Backends
	BackendTimeout time.Duration `env:"HERO_BACKEND_TIMEOUT" envDefault:"20s"`
	MediaTimeout   time.Duration `env:"HERO_MEDIA_TIMEOUT" envDefault:"30s"`

	// Observability
	MetricsAddr string `env:"HERO_METRICS_ADDR"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetKnowledgePath() string {
	return filepath.Join(c.RuntimePath, "heroes_db.json")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "heroguide.db")
}

func (c AppConfig) GetMediaPath() string {
	return filepath.Join(c.RuntimePath, "media")
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetSessionWindow() time.Duration {
	return c.SessionWindow
}

func (c AppConfig) GetSessionMaxUsers() int {
	return c.SessionMaxUsers
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
