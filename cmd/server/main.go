package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JhoonerO/TuckFlow/internal/config"
	"github.com/JhoonerO/TuckFlow/internal/infra"
	"github.com/JhoonerO/TuckFlow/internal/repository"
	"github.com/JhoonerO/TuckFlow/internal/router"
	"github.com/JhoonerO/TuckFlow/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           TuckFlow API
// @version         1.0
// @description     Backend de punto de venta e inventario para tiendas de barrio.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Async receipt pipeline: ventas enqueue jobs, the pool renders PDFs and
	// mails them. SMTP sits behind a circuit breaker so a flapping relay
	// cannot pile up goroutines.
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)
	mailerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	reciboWorker := worker.NewReciboWorker(
		repository.NewVentaRepository(db),
		repository.NewPerfilRepository(db),
		mailer,
		mailerCB,
		cfg.PDFStoragePath,
		cfg.NegocioDefault,
	)
	worker.StartWorkerPool(workerCtx, rdb, &worker.Handlers{Recibo: reciboWorker}, cfg.WorkerPoolSize)

	engine := router.New(router.Deps{
		DB:         db,
		Redis:      rdb,
		Dispatcher: dispatcher,
		Config:     cfg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()

	log.Info().Msg("server stopped")
}
