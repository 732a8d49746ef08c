// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mealhub/mealhub/internal/app/store/kv"
)

// DBDeps holds storage dependencies for the app. KV is always set;
// exactly one of the raw clients is non-nil depending on the configured
// backend (neither, for the memory backend).
type DBDeps struct {
	KV kv.Store

	RedisClient *redis.Client
	MongoClient *mongo.Client
}
