package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"offboard/internal/artifact"
	"offboard/internal/casestore"
	"offboard/internal/config"
	"offboard/internal/offboarding"
	"offboard/internal/output"
	"offboard/internal/removal"
	"offboard/internal/tui"
)

// caseStore is what the CLI needs from a backend: the store itself plus
// listing.
type caseStore interface {
	casestore.Store
	casestore.Lister
}

// NewApp validates cfg and wires the configured backends into an [App].
//
// The caller must call [App.Close] when done.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	app := &App{
		Config:  cfg,
		Printer: output.NewPrinter(),
		Logger:  logger,
		Wizard:  tui.Run,
	}

	store, err := app.newCaseStore(cfg.Store, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	remover := removal.NewHTTPRemover(cfg.Removal.Endpoint,
		removal.WithToken(cfg.Removal.Token),
		removal.WithTimeout(cfg.Removal.Timeout),
		removal.WithLogger(logger),
	)

	svc := offboarding.NewService(store, newArtifactStore(cfg.Artifacts, logger), remover)
	svc.SetLogger(logger)
	svc.SetDefaultChecklist(cfg.Checklist.Defaults)

	app.Service = svc
	app.Cases = store
	return app, nil
}

// newCaseStore opens the configured case store. Redis connections are
// verified eagerly so a bad address fails before any command runs.
func (a *App) newCaseStore(cfg config.StoreConfig, logger *slog.Logger) (caseStore, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return casestore.NewMemoryStore(), nil

	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)

		store := casestore.NewRedisStore(client,
			casestore.WithKeyPrefix(cfg.Redis.KeyPrefix),
			casestore.WithRedisLogger(logger),
		)
		if err := store.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store, nil

	default:
		return casestore.NewFileStore(cfg.Dir, casestore.WithFileLogger(logger)), nil
	}
}

func newArtifactStore(cfg config.ArtifactsConfig, logger *slog.Logger) artifact.Store {
	if cfg.Backend == config.ArtifactsHTTP {
		return artifact.NewHTTPStore(cfg.BaseURL,
			artifact.WithTimeout(cfg.Timeout),
			artifact.WithLogger(logger),
		)
	}
	return artifact.NewDirStore(cfg.Dir, logger)
}
