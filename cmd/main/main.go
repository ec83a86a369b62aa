package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"channel-matcher/internal/config"
	matchHnd "channel-matcher/internal/matching/handler"
	"channel-matcher/internal/matching/service"
	"channel-matcher/internal/matching/store"
	serverhttp "channel-matcher/server/http"
)

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	db, err := store.Open(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}
	defer db.Close()

	if err := store.Migrate(db, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal().Err(err).Msg("migrations")
	}

	mappings := store.NewMappingStore(db)
	catalog := store.NewCatalogStore(db)
	resolver := service.NewResolver(mappings, service.NewScorer(cfg.MatchThreshold), cfg.BatchWorkers)
	h := matchHnd.New(logger, mappings, catalog, resolver)

	r := serverhttp.NewRouter(cfg, logger, h)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
