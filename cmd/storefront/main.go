package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bowlapp/storefront/internal/api"
	"github.com/bowlapp/storefront/internal/api/handler"
	"github.com/bowlapp/storefront/internal/core/ports"
	"github.com/bowlapp/storefront/internal/core/store"
	"github.com/bowlapp/storefront/internal/infrastructure/catalog"
	"github.com/bowlapp/storefront/internal/infrastructure/config"
	mongokv "github.com/bowlapp/storefront/internal/infrastructure/db/mongo"
	rediskv "github.com/bowlapp/storefront/internal/infrastructure/db/redis"
	"github.com/bowlapp/storefront/internal/infrastructure/queue"
	"github.com/bowlapp/storefront/internal/notify"
	"github.com/bowlapp/storefront/pkg/logger"
)

func main() {
	loadLocalEnv()

	cfg := config.Load()
	logg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Persistence gateway ---
	var backend ports.KeyValueStore
	health := map[string]handler.Pinger{}

	switch cfg.StorageBackend {
	case config.BackendMongo:
		client, db, err := mongokv.Connect(ctx, mongokv.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			logg.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		backend = mongokv.NewKVStore(db, logg)
		health["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	default:
		client, err := rediskv.Connect(ctx, rediskv.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			logg.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = client.Close() }()
		backend = rediskv.NewKVStore(client, cfg.Redis.KeyPrefix, logg)
		health["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	// Route writes through the per-key queue unless async persistence is
	// disabled.
	kv := backend
	if cfg.PersistWorkers > 0 {
		writer := queue.NewWriter(backend, cfg.PersistWorkers, logg)
		writer.Start(ctx)
		defer writer.Wait()
		kv = writer
	}

	// --- Core store ---
	sessions := store.New(kv, logg)
	sessions.Initialize(ctx)

	// --- Catalog gateway ---
	bowls := catalog.NewClient(cfg.Catalog.BaseURL, time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second, logg)
	sessions.SetBowls(bowls.GetBowls(ctx))

	// --- Daily reminder ---
	if cfg.Reminder.Enabled {
		reminder := notify.NewReminder(cfg.Reminder.Hour, nil, logg)
		reminder.Schedule(ctx)
		defer reminder.Stop()
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Store:     sessions,
		Catalog:   bowls,
		JWTSecret: cfg.JWTSecret,
		Health:    health,
		Logger:    logg,
	})

	go func() {
		logg.Info().Str("port", cfg.Port).Str("backend", cfg.StorageBackend).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown error")
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
