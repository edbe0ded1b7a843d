// Package store implements project.Store on top of memory, SQLite,
// PostgreSQL and Redis.
package store

import (
	"context"
	"fmt"

	"github.com/iwvelando/hotel-forecast/internal/logging"
	"github.com/iwvelando/hotel-forecast/internal/project"
	"github.com/iwvelando/hotel-forecast/pkg/constants"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a requested project does not exist.
var ErrNotFound = project.ErrNotFound

// Config selects and configures a store.
type Config struct {
	Driver string `yaml:"driver,omitempty"` // memory, sqlite, postgres, redis
	DSN    string `yaml:"dsn,omitempty"`    // file path, connection string or redis address
}

// Open returns the store selected by cfg. An empty driver selects memory.
func Open(ctx context.Context, logger *zap.Logger, cfg Config) (project.Store, error) {
	logger = logging.OrNop(logger)
	driver := cfg.Driver
	if driver == "" {
		driver = constants.StoreDriverMemory
	}

	logger.Info("opening project store",
		zap.String("op", "store.Open"),
		zap.String("driver", driver),
	)

	switch driver {
	case constants.StoreDriverMemory:
		return NewMemoryStore(), nil
	case constants.StoreDriverSQLite:
		path := cfg.DSN
		if path == "" {
			path = constants.DefaultSQLitePath
		}
		return NewSQLiteStore(path)
	case constants.StoreDriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("store driver %s requires a dsn", driver)
		}
		return NewPostgresStore(ctx, cfg.DSN)
	case constants.StoreDriverRedis:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("store driver %s requires an address", driver)
		}
		return NewRedisStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
