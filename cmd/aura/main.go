package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"aura/config"
	"aura/internal/domain/entity"
	"aura/internal/domain/repository"
	"aura/internal/domain/service"
	"aura/internal/infra/kv"
	logs "aura/internal/infra/log"
	"aura/internal/infra/remote"
	"aura/internal/infra/session"
	"aura/internal/usecase"
	"aura/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		fx.Invoke(
			startCore,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		remote.New,
		newAuthGateway,
		newKVStore,
		newSessionStore,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			remote.NewDiaryRepository,
			remote.NewScanRepository,
			remote.NewProfileRepository,
			remote.NewCommentRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

// newAuthGateway exposes the shared remote client under its domain contract.
func newAuthGateway(client *remote.Client) service.AuthGateway {
	return client
}

// newKVStore opens the durable key-value namespace backing the session slot.
func newKVStore(cfg *config.Config) (repository.KVStore, error) {
	dir := cfg.Session.Dir
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve user config directory")
		}
		dir = filepath.Join(configDir, "aura")
	}

	return kv.NewFileStore(dir)
}

// newSessionStore creates the single-slot session store.
func newSessionStore(kvStore repository.KVStore, cfg *config.Config, logger *slog.Logger) repository.SessionStore {
	return session.NewStore(kvStore, cfg.Session.Slot, logger)
}

// startCore seeds the auth state from the persisted session once the process
// is up. Screens observe the controller's state; this binary just logs the
// transitions.
func startCore(lc fx.Lifecycle, auth usecase.AuthUsecase, logger *slog.Logger) {
	auth.Subscribe(func(state entity.AuthState) {
		logger.Info("Auth state changed",
			slog.String("status", string(state.Status)),
			slog.String("message", state.Message))
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := auth.CheckAuthStatus(context.Background()); err != nil {
					logger.Error("Startup auth check failed", slog.Any("error", err))
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			return nil
		},
	})
}
