package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/config"
	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/repository/cache"
	"github.com/crimemap/backend/internal/repository/feed"
	"github.com/crimemap/backend/internal/repository/file"
	"github.com/crimemap/backend/internal/repository/fixtures"
	"github.com/crimemap/backend/internal/repository/postgres"
	"github.com/crimemap/backend/internal/repository/sqlite"
)

// store is a source that can also persist records
type store interface {
	domain.RecordSource
	domain.RecordWriter
}

func noop() {}

// openStore connects the writable backend named by DATA_SOURCE
func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	switch cfg.DataSource {
	case "postgres":
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(dialCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, eris.Wrap(err, "postgres: failed to connect")
		}
		repo := postgres.NewPostgresRepository(pool)
		if err := repo.Migrate(dialCtx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		zap.L().Info("connected to PostgreSQL")
		return repo, pool.Close, nil
	case "sqlite":
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		zap.L().Info("opened SQLite store", zap.String("path", cfg.SQLitePath))
		return repo, func() { _ = repo.Close() }, nil
	default:
		return nil, noop, eris.Errorf("data source %q is not writable", cfg.DataSource)
	}
}

// openSource builds the record source for DATA_SOURCE, falling back to the
// built-in fixtures when a database cannot be reached, then adds the Redis
// cache when REDIS_ADDR is set.
func openSource(ctx context.Context, cfg *config.Config) (domain.RecordSource, func(), error) {
	var (
		source  domain.RecordSource
		cleanup = noop
	)

	switch cfg.DataSource {
	case "postgres", "sqlite":
		st, closeFn, err := openStore(ctx, cfg)
		if err != nil {
			zap.L().Warn("could not open record store, running with fixtures only", zap.Error(err))
			source = fixtures.NewSource()
		} else {
			source, cleanup = st, closeFn
		}
	case "file":
		if cfg.RecordsFile == "" {
			return nil, noop, eris.New("RECORDS_FILE is required for the file data source")
		}
		source = file.NewSource(cfg.RecordsFile)
	case "feed":
		if cfg.FeedURL == "" {
			return nil, noop, eris.New("FEED_URL is required for the feed data source")
		}
		source = feed.NewSource(cfg.FeedURL, fixtures.NewSource())
	case "fixtures", "":
		source = fixtures.NewSource()
	default:
		return nil, noop, eris.Errorf("unknown data source %q", cfg.DataSource)
	}

	if rc := cache.Open(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rc != nil {
		zap.L().Info("record cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
		inner := cleanup
		source = cache.NewSource(source, rc, cfg.CacheTTL)
		cleanup = func() {
			_ = rc.Close()
			inner()
		}
	}
	return source, cleanup, nil
}
