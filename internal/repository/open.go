package repository

import (
	"context"
	"fmt"

	"nationwide/pkg/config"
	"nationwide/pkg/mongodb"
	"nationwide/pkg/postgres"

	"go.uber.org/zap"
)

// Stores holds the record repositories for the configured driver.
type Stores struct {
	Achievements AchievementRepository
	Videos       VideoRepository

	close func()
}

// Close releases the database connection, if any.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the configured database and prepares its schema or indexes.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := ApplySchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &Stores{
			Achievements: NewPostgresAchievementRepository(db, logger),
			Videos:       NewPostgresVideoRepository(db, logger),
			close:        db.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &Stores{
			Achievements: NewMongoAchievementRepository(db, logger),
			Videos:       NewMongoVideoRepository(db, logger),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Warn("Mongo disconnect failed", zap.Error(err))
				}
			},
		}, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory storage, records are lost on restart")
		return &Stores{
			Achievements: NewMemoryAchievementRepository(),
			Videos:       NewMemoryVideoRepository(),
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}
