package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/Spok95/site-inventory/internal/api"
	"github.com/Spok95/site-inventory/internal/config"
	"github.com/Spok95/site-inventory/internal/domain/catalog"
	"github.com/Spok95/site-inventory/internal/domain/inventory"
	"github.com/Spok95/site-inventory/internal/domain/jobs"
	"github.com/Spok95/site-inventory/internal/domain/materials"
	"github.com/Spok95/site-inventory/internal/infra/db"
	httpx "github.com/Spok95/site-inventory/internal/infra/http"
	"github.com/Spok95/site-inventory/internal/infra/logger"
	"github.com/Spok95/site-inventory/internal/service"
	"github.com/Spok95/site-inventory/internal/vision"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env, cfg.App.Name)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	catalogRepo := catalog.NewRepo(pool)
	materialRepo := materials.NewRepo(pool)
	itemRepo := inventory.NewRepo(pool)
	jobRepo := jobs.NewRepo(pool)

	materialSvc := service.NewMaterials(materialRepo, catalogRepo, log)
	stockSvc := service.NewStock(itemRepo, log)

	analyzer, err := vision.New(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
		log,
	)
	if err != nil {
		log.Error("vision client init failed", "err", err)
		return
	}
	documentSvc := service.NewDocuments(analyzer, materialRepo, jobRepo, catalogRepo, log)

	router := api.NewRouter(api.Deps{
		Log:         log,
		Catalog:     catalogRepo,
		Materials:   materialSvc,
		Stock:       stockSvc,
		Documents:   documentSvc,
		Jobs:        jobRepo,
		MaxUploadMB: cfg.Uploads.MaxSizeMB,
	})

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, router)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
