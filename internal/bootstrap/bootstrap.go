// Package bootstrap holds the fx providers shared by the server and worker binaries.
package bootstrap

import (
	"context"
	"fmt"

	"vidhub/internal/domain/repositories"
	"vidhub/internal/infrastructure/cache"
	"vidhub/internal/infrastructure/db"
	"vidhub/internal/infrastructure/observability"
	infra_repo "vidhub/internal/infrastructure/repositories"
	"vidhub/internal/infrastructure/storage"
	"vidhub/internal/pkg/config"
	"vidhub/internal/usecases"
	"vidhub/pkg/errors/i18n"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const DriverMemory = "memory"

// Stores groups the persistence ports selected by STORE_DRIVER.
type Stores struct {
	fx.Out

	Videos   repositories.VideoRepository
	Likes    repositories.LikeRepository
	Users    repositories.UserRepository
	Comments repositories.CommentRepository
}

// Caches groups the Redis-backed ports, or their in-process stand-ins.
type Caches struct {
	fx.Out

	Dedup   repositories.DedupCache
	Pending repositories.PendingStore
}

// Core provides config, logging, metrics, persistence, caches and the webhook ingestor.
var Core = fx.Options(
	fx.Provide(
		config.LoadConfig,
		NewLogger,
		NewRegistry,
		observability.NewMetrics,
		NewStores,
		NewCaches,
		NewArchive,
		NewWebhookIngestor,
	),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
	fx.Invoke(func(cfg *config.Config, log *zap.Logger) error {
		if err := i18n.Load(cfg.Server.Locale); err != nil {
			return err
		}
		if cfg.Webhook.Secret == "" {
			log.Error("MUX_WEBHOOK_SECRET is not set; every webhook will be rejected with 500")
		}
		return nil
	}),
)

func NewLogger(cfg *config.Config, lc fx.Lifecycle) (*zap.Logger, error) {
	log, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		_ = log.Sync()
		return nil
	}})
	return log, nil
}

// NewRegistry returns a registry that also carries the Go runtime and process collectors.
func NewRegistry() (*prometheus.Registry, prometheus.Registerer, prometheus.Gatherer) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, reg, reg
}

func NewStores(cfg *config.Config, lc fx.Lifecycle, log *zap.Logger) (Stores, error) {
	if cfg.Server.StoreDriver == DriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		mem := infra_repo.NewInMemoryStore()
		return Stores{Videos: mem.Videos(), Likes: mem.Likes(), Users: mem.Users(), Comments: mem.Comments()}, nil
	}

	database, err := db.NewPostgresDB(cfg.Database)
	if err != nil {
		return Stores{}, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return Stores{}, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Server.RunAutoMigration {
				return sqlDB.PingContext(ctx)
			}
			log.Info("applying migrations")
			return db.Migrate(ctx, database)
		},
		OnStop: func(context.Context) error {
			return sqlDB.Close()
		},
	})

	return Stores{
		Videos:   infra_repo.NewVideoRepository(database),
		Likes:    infra_repo.NewLikeRepository(database),
		Users:    infra_repo.NewUserRepository(database),
		Comments: infra_repo.NewCommentRepository(database),
	}, nil
}

func NewCaches(cfg *config.Config, lc fx.Lifecycle, log *zap.Logger) Caches {
	if cfg.Server.StoreDriver == DriverMemory {
		return Caches{Dedup: cache.NewMemoryDedupCache(nil), Pending: cache.NewMemoryPendingStore()}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// View dedup degrades without Redis, so an unreachable server is not fatal.
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Warn("redis unreachable at startup", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return Caches{Dedup: cache.NewRedisDedupCache(rdb), Pending: cache.NewRedisPendingStore(rdb)}
}

func NewArchive(cfg *config.Config) (repositories.PayloadArchive, error) {
	return storage.NewArchive(context.Background(), cfg.Archive)
}

func NewWebhookIngestor(cfg *config.Config, videos repositories.VideoRepository, pending repositories.PendingStore, archive repositories.PayloadArchive) usecases.WebhookIngestor {
	return usecases.NewWebhookIngestor(usecases.WebhookConfig{
		Secret:           cfg.Webhook.Secret,
		Tolerance:        cfg.Webhook.Tolerance,
		PlaybackBaseURL:  cfg.Provider.PlaybackBaseURL,
		ThumbnailBaseURL: cfg.Provider.ThumbnailBaseURL,
		ArchivePrefix:    cfg.Archive.Prefix,
	}, videos, pending, archive)
}
