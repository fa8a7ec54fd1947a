package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/totegamma/hl3mural/internal/config"
	"github.com/totegamma/hl3mural/internal/infra/cache"
	"github.com/totegamma/hl3mural/internal/infra/database"
	"github.com/totegamma/hl3mural/internal/infra/gateway"
	"github.com/totegamma/hl3mural/internal/infra/repository"
	"github.com/totegamma/hl3mural/internal/infra/tracing"
	"github.com/totegamma/hl3mural/internal/present/rest"
	"github.com/totegamma/hl3mural/internal/usecase"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the submissions proxy",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	shutdownTracing, err := tracing.Setup(ctx, conf.Server, serviceName)
	if err != nil {
		return errors.Wrap(err, "setup tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Warn("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	formCache, err := newFormCache(ctx, conf)
	if err != nil {
		return err
	}

	netlify := gateway.NewNetlifyGateway(conf.Netlify)
	forms := repository.NewFormRepository(netlify, formCache)
	submissions := usecase.NewSubmissionUsecase(
		config.NewEnvCredentials(conf.Netlify),
		forms,
		netlify,
		conf.Netlify.DefaultForm,
	)

	e := rest.NewServer(serviceName, rest.NewHandler(submissions))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening",
			slog.String("module", "serve"),
			slog.String("addr", conf.Server.Listen),
			slog.String("cache", conf.Cache.Backend),
		)
		if err := e.Start(conf.Server.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}

// newFormCache returns nil for the none backend so the repository always
// lists forms upstream.
func newFormCache(ctx context.Context, conf config.Config) (repository.FormCache, error) {
	switch conf.Cache.Backend {
	case config.CacheMemory:
		return cache.NewMemory(conf.Cache.TTL), nil
	case config.CacheRedis:
		rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisDB)
		if err != nil {
			return nil, err
		}
		return cache.NewRedis(rdb, conf.Cache.TTL), nil
	case config.CacheMemcached:
		mc, err := database.NewMemcached(conf.Server.MemcachedAddr)
		if err != nil {
			return nil, err
		}
		return cache.NewMemcached(mc, conf.Cache.TTL), nil
	}
	return nil, nil
}
