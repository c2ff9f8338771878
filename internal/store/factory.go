// Package store selects an application repository driver from configuration.
package store

import (
	"context"
	"fmt"

	"github.com/Zee-2005/safara-sub000/internal/store/core"
	"github.com/Zee-2005/safara-sub000/internal/store/memory"
	"github.com/Zee-2005/safara-sub000/internal/store/mongo"
	"github.com/Zee-2005/safara-sub000/internal/store/pg"
)

// Config selects and parameterizes the storage driver.
type Config struct {
	Driver        string // "memory" | "mongo" | "postgres"
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
}

// Open builds the repository for cfg.Driver.
func Open(ctx context.Context, cfg Config) (core.ApplicationRepository, error) {
	switch cfg.Driver {
	case "", "memory":
		return memory.New(), nil
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("store: mongo driver requires a uri")
		}
		db := cfg.MongoDatabase
		if db == "" {
			db = "safara"
		}
		return mongo.Connect(ctx, cfg.MongoURI, db)
	case "postgres", "pg":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("store: postgres driver requires a dsn")
		}
		return pg.Connect(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
