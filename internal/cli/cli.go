// Package cli implements the habitme subcommands.
package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"habitme/internal/adapter/firestore"
	"habitme/internal/adapter/memory"
	"habitme/internal/adapter/mongo"
	"habitme/internal/adapter/postgres"
	"habitme/internal/config"
	"habitme/internal/domain"
)

// Context is passed to every command's Run method.
type Context struct {
	Config config.Config
	Log    *zap.Logger
}

// Store is a habit repository that owns a connection.
type Store interface {
	domain.HabitRepository
	Close() error
}

// OpenStore opens the repository selected by cfg.Store.
func OpenStore(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Store {
	case config.StoreMemory:
		s = memory.New()
	case config.StorePostgres:
		s, err = openPostgres(cfg.DatabaseURL)
	case config.StoreMongo:
		s, err = openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StoreFirestore:
		s, err = openFirestore(ctx, cfg.FirestoreProject)
	default:
		err = fmt.Errorf("unknown store %q", cfg.Store)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	return s, nil
}

func openPostgres(connStr string) (Store, error) {
	db, err := postgres.Open(connStr)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func openMongo(ctx context.Context, uri, database string) (Store, error) {
	db, err := mongo.Open(ctx, uri, database)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func openFirestore(ctx context.Context, project string) (Store, error) {
	db, err := firestore.Open(ctx, project)
	if err != nil {
		return nil, err
	}
	return db, nil
}
