package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/mikro-backoffice/internal/adapter/cache"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/lock"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/mikro"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/postgres"
	"github.com/heartmarshall/mikro-backoffice/internal/adapter/pubsub"
	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

const (
	customerCachePrefix = "backoffice:customer:"
	priceCachePrefix    = "backoffice:price:"
)

type eventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type syncLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (lock.ReleaseFunc, bool, error)
}

// infra holds the external connections shared by every service.
type infra struct {
	pool          *pgxpool.Pool
	erp           *sql.DB
	redis         *redis.Client
	events        eventPublisher
	customerCache cacheStore
	priceCache    cacheStore
	locker        syncLocker
	closers       []func()
}

// openInfra connects PostgreSQL, the ERP, Redis and Pub/Sub. PostgreSQL is
// mandatory. An unreachable ERP is logged and the service starts degraded.
// Redis and Pub/Sub fall back to in-process implementations when they are
// not configured.
func openInfra(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *infra, err error) {
	in := &infra{}
	defer func() {
		if err != nil {
			in.Close()
		}
	}()

	in.pool, err = postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	in.closers = append(in.closers, in.pool.Close)

	if cfg.Database.AutoMigrate {
		if err = postgres.Migrate(ctx, in.pool, log); err != nil {
			return nil, err
		}
	}

	erp, pingErr := mikro.Open(ctx, cfg.ERP)
	if erp == nil {
		return nil, pingErr
	}
	if pingErr != nil {
		log.Warn("erp unreachable, starting degraded", slog.String("error", pingErr.Error()))
	}
	in.erp = erp
	in.closers = append(in.closers, func() { _ = erp.Close() })

	if cfg.Redis.Enabled() {
		in.redis, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		in.closers = append(in.closers, func() { _ = in.redis.Close() })
		in.customerCache = cache.NewRedis(in.redis, customerCachePrefix, cfg.Cache.TTL)
		in.priceCache = cache.NewRedis(in.redis, priceCachePrefix, cfg.Cache.TTL)
		in.locker = lock.NewRedis(in.redis)
	} else {
		log.Info("redis not configured, using in-process cache and locks")
		in.customerCache = cache.NewLocal(cfg.Cache.Size, cfg.Cache.TTL)
		in.priceCache = cache.NewLocal(cfg.Cache.Size, cfg.Cache.TTL)
		in.locker = lock.NewLocal()
	}

	if cfg.PubSub.ProjectID != "" {
		pub, pubErr := pubsub.NewPublisher(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic, log)
		if pubErr != nil {
			return nil, pubErr
		}
		in.closers = append(in.closers, func() { _ = pub.Close() })
		in.events = pub
	} else {
		in.events = pubsub.NewLogPublisher(log)
	}

	return in, nil
}

// Close releases connections in reverse order of opening.
func (in *infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		in.closers[i]()
	}
	in.closers = nil
}
