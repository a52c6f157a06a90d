package repository

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"learnmate/internal/config"
	"learnmate/internal/database"
)

// Store is an opened key-value backend
type Store struct {
	KV      KV
	Backend string

	db  *database.DB
	rdb *goredis.Client
}

// OpenStore connects to the backend named by cfg.StoreBackend
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreBackend {
	case "sql", "":
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			return nil, err
		}
		return &Store{KV: NewSQLKV(db), Backend: "sql:" + cfg.DatabaseType, db: db}, nil
	case "redis":
		rdb, err := DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return &Store{KV: NewRedisKV(rdb, cfg.RedisPrefix), Backend: "redis", rdb: rdb}, nil
	case "memory":
		return &Store{KV: NewMemoryKV(), Backend: "memory"}, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

// Migrate applies pending schema migrations. Only the SQL backend has any.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.RunMigrations(ctx)
}

func (s *Store) Close() error {
	switch {
	case s.db != nil:
		return s.db.Close()
	case s.rdb != nil:
		return s.rdb.Close()
	}
	return nil
}
