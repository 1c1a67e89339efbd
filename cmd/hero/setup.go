package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/providers/llm"
	"github.com/sandevgo/heroguide/internal/service/command"
	"github.com/sandevgo/heroguide/internal/service/gate"
	"github.com/sandevgo/heroguide/internal/service/knowledge"
	"github.com/sandevgo/heroguide/internal/service/media"
	"github.com/sandevgo/heroguide/internal/service/metrics"
	"github.com/sandevgo/heroguide/internal/service/router"
	"github.com/sandevgo/heroguide/internal/service/session"
	"github.com/sandevgo/heroguide/internal/storage/jsonfile"
	"github.com/sandevgo/heroguide/internal/storage/sqlite"
	"github.com/sandevgo/heroguide/internal/transport/cli"
	"github.com/sandevgo/heroguide/internal/transport/telegram"
	"github.com/sandevgo/heroguide/pkg/log"
	"github.com/sandevgo/heroguide/pkg/srv"
	tele "gopkg.in/telebot.v3"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Knowledge base
	store, closeStore, err := initKnowledgeStore(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize knowledge store")
	}
	if closeStore != nil {
		services = append(services, srv.NewCleanup(closeStore))
	}

	kb := knowledge.NewBase(nil)
	refresher := knowledge.NewRefresher(kb, store, appCfg.KnowledgeRefreshSchedule)
	if err := refresher.Refresh(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load hero table")
	}
	services = append(services, refresher)

	// 3. Session memory
	sessions, err := session.NewStore(appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session memory")
	}
	services = append(services, session.NewSweeper(sessions, appCfg.SessionSweepSchedule))

	// 4. Generative backends
	provider, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	summarizer := llm.NewSummarizer(ctx, llmCfg)

	// 5. Routing
	g := gate.New("")
	commands := command.NewRouter(kb, sessions)

	var (
		api     *tele.Bot
		tgCfg   *config.TelegramConfig
		fetcher core.AttachmentFetcher
	)
	if appCfg.IsTelegramSelected() {
		tgCfg = config.NewTelegramConfig(ctx)
		api, err = telegram.NewAPI(tgCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to telegram")
		}
		f, err := telegram.NewFetcher(api, appCfg.GetMediaPath())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize photo fetcher")
		}
		fetcher = f
	}

	ingestor := media.NewIngestor(fetcher, summarizer, appCfg.MediaTimeout)
	r := router.New(g, sessions, kb, ingestor, provider, appCfg.BackendTimeout)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, api, tgCfg, r, commands, g)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	// 7. Metrics
	if appCfg.MetricsAddr != "" {
		services = append(services, metrics.NewServer(appCfg.MetricsAddr))
	}

	return services
}

// unwatched hides the file watcher so the refresher only polls on schedule.
type unwatched struct {
	core.KnowledgeStore
}

func initKnowledgeStore(ctx context.Context, cfg *config.AppConfig) (core.KnowledgeStore, func() error, error) {
	switch cfg.KnowledgeBackend {
	case config.KnowledgeBackendSQLite:
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewKnowledgeRepo(db), db.Close, nil
	case config.KnowledgeBackendJSON, "":
		store := jsonfile.NewFileStore(cfg.GetKnowledgePath())
		if !cfg.WatchKnowledgeFile {
			return unwatched{store}, nil, nil
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown knowledge backend %q", cfg.KnowledgeBackend)
	}
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	api *tele.Bot,
	tgCfg *config.TelegramConfig,
	r *router.Router,
	commands core.CmdRouter,
	g *gate.Gate,
) ([]srv.Service, error) {
	var services []srv.Service

	if api != nil {
		services = append(services, telegram.NewBot(ctx, api, tgCfg, r, commands, g))
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(r, commands, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no transport enabled")
	}
	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
