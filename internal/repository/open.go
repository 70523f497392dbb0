package repository

import (
	"context"

	"github.com/iliyamo/cinema-hall-console/internal/config"
)

// Open returns the store selected by cfg.Store.
func Open(ctx context.Context, cfg config.Config) (HallStore, error) {
	switch cfg.Store {
	case config.StoreSQLite, config.StoreMySQL, config.StorePostgres:
		return OpenSQLStore(ctx, cfg.SQLDriver(), cfg.SQLDSN())
	case config.StoreRedis:
		rdb, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, cfg.Redis.Key), nil
	}
	return NewFileStore(cfg.DataFile), nil
}
