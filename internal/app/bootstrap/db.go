// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mealhub/mealhub/internal/app/store/kv"
	"github.com/mealhub/mealhub/internal/app/system/timeouts"
)

// ConnectDB builds the KV backend selected by store_backend and
// verifies connectivity before the app starts serving.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	switch appCfg.StoreBackend {
	case "memory":
		logger.Info("using in-memory store backend")
		return DBDeps{KV: kv.NewMemory()}, nil

	case "redis":
		opts, err := redis.ParseURL(appCfg.RedisURL)
		if err != nil {
			return DBDeps{}, fmt.Errorf("parse redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return DBDeps{}, fmt.Errorf("redis ping: %w", err)
		}

		logger.Info("connected to Redis", zap.String("addr", opts.Addr))
		return DBDeps{KV: kv.NewRedis(client), RedisClient: client}, nil

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
		}

		db := client.Database(appCfg.MongoDatabase)
		kvs := kv.NewMongo(client, db)

		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		defer cancel()
		if err := kvs.Ping(pingCtx); err != nil {
			_ = client.Disconnect(ctx)
			return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
		}

		logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
		return DBDeps{KV: kvs, MongoClient: client}, nil

	default:
		return DBDeps{}, fmt.Errorf("unknown store_backend %q", appCfg.StoreBackend)
	}
}

// EnsureSchema sets up indexes or schema as needed. The KV layout is a
// handful of whole-collection documents; there is nothing to migrate.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
