package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"petverse/internal/adapters/storage"
	"petverse/internal/domain/activity"
	"petverse/internal/domain/catalog"
	"petverse/internal/domain/pets"
	"petverse/internal/middleware"
	"petverse/internal/platform/config"
	"petverse/internal/platform/logger"
	potel "petverse/internal/platform/otel"
	"petverse/internal/router"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config error", map[string]any{"error": err})
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := potel.Setup(ctx, cfg.Tracing)
	if err != nil {
		log.Error("tracing setup failed", map[string]any{"error": err})
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", map[string]any{"error": err})
		}
	}()

	cat := catalog.Default()
	if cfg.Game.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.Game.CatalogPath)
		if err != nil {
			log.Error("catalog load failed", map[string]any{"path": cfg.Game.CatalogPath, "error": err})
			return err
		}
	}
	loc, err := cfg.Game.Location()
	if err != nil {
		return err
	}

	backend, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		log.Error("store open failed", map[string]any{"driver": cfg.Store.Driver, "error": err})
		return err
	}
	defer backend.Close()

	actSvc := activity.NewService(backend.Activity)
	petsSvc := pets.NewService(ctx,
		pets.NewWorld(pets.NewEngine(cat, pets.WithLocation(loc))),
		pets.Options{
			Store:    backend.Pets,
			Logger:   log,
			Mode:     pets.PersistMode(cfg.Store.PersistMode),
			Activity: actSvc,
		},
	)

	h := router.NewRouter(router.Options{
		Pets:        petsSvc,
		Activity:    actSvc,
		Catalog:     cat,
		Logger:      log,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log),
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":         srv.Addr,
			"store":        cfg.Store.Driver,
			"persist_mode": cfg.Store.PersistMode,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err})
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn("http shutdown failed", map[string]any{"error": err})
	}

	// Guardado final de lo pendiente; sin cambios no se toca el store.
	if err := petsSvc.Save(sctx); err != nil {
		log.Error("final save failed", map[string]any{"error": err})
		return err
	}
	return nil
}
