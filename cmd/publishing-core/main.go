package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkpress/publishing-core/internal/api"
	"github.com/inkpress/publishing-core/internal/api/handler"
	"github.com/inkpress/publishing-core/internal/core/notify"
	"github.com/inkpress/publishing-core/internal/core/ports"
	"github.com/inkpress/publishing-core/internal/core/store"
	mongodb "github.com/inkpress/publishing-core/internal/infrastructure/db/mongo"
	redisdb "github.com/inkpress/publishing-core/internal/infrastructure/db/redis"
	"github.com/inkpress/publishing-core/internal/infrastructure/hash"
	"github.com/inkpress/publishing-core/internal/infrastructure/queue"
	"github.com/inkpress/publishing-core/internal/pkg/config"
	"github.com/inkpress/publishing-core/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Persistence collaborator ---
	var (
		snaps  ports.Snapshotter
		checks = map[string]handler.HealthCheck{}
	)
	switch cfg.SnapshotBackend {
	case "redis":
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		snaps = redisdb.NewSnapshotStore(client)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		snaps = mongodb.NewSnapshotStore(db)
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	case "none":
		log.Warn().Msg("persistence disabled, state is in-memory only")
	default:
		log.Fatal().Str("backend", cfg.SnapshotBackend).Msg("unknown snapshot backend")
	}

	// --- Core ---
	center := notify.NewCenter(notify.DefaultTTL)
	defer center.Close()

	var sink ports.SnapshotSink
	if snaps != nil {
		writer := queue.NewSnapshotWriter(0, snaps, logger.Component("snapshots"))
		writer.Start(ctx)
		sink = writer
	}

	st := store.New(store.Options{
		Hasher:   hash.NewBcrypt(0),
		Sink:     sink,
		Notifier: center,
		Logger:   logger.Component("store"),
	})
	if snaps != nil {
		if err := st.LoadSnapshots(ctx, snaps); err != nil {
			log.Fatal().Err(err).Msg("state load failed")
		}
	} else {
		st.Seed()
	}

	// --- HTTP surface ---
	e := api.NewRouter(api.RouterOptions{
		Store:        st,
		Notifier:     center,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     24 * time.Hour,
		HealthChecks: checks,
		Logger:       logger.Component("api"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.SnapshotBackend).Msg("publishing core started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("publishing core stopped")
}
