// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	adminstore "github.com/gracechapel/churchhub/internal/app/store/adminusers"
	"github.com/gracechapel/churchhub/internal/app/store/audit"
	eventstore "github.com/gracechapel/churchhub/internal/app/store/events"
	livestreamstore "github.com/gracechapel/churchhub/internal/app/store/livestreams"
	memberstore "github.com/gracechapel/churchhub/internal/app/store/members"
	newsstore "github.com/gracechapel/churchhub/internal/app/store/news"
	newsletterstore "github.com/gracechapel/churchhub/internal/app/store/newsletters"
	tokenstore "github.com/gracechapel/churchhub/internal/app/store/tokens"
	userstore "github.com/gracechapel/churchhub/internal/app/store/users"
	videostore "github.com/gracechapel/churchhub/internal/app/store/videos"
	wotdstore "github.com/gracechapel/churchhub/internal/app/store/wotd"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the single MongoDB client shared by the whole app and
// verifies it with a ping before anything else starts.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates every collection index the stores rely on. Index
// creation is idempotent, so this runs unconditionally on each startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"admin_users", adminstore.New(db).EnsureIndexes},
		{"audit_logs", audit.New(db).EnsureIndexes},
		{"events", eventstore.New(db).EnsureIndexes},
		{"livestreams", livestreamstore.New(db).EnsureIndexes},
		{"members", memberstore.New(db).EnsureIndexes},
		{"news", newsstore.New(db).EnsureIndexes},
		{"newsletters", newsletterstore.New(db).EnsureIndexes},
		{"users", userstore.New(db).EnsureIndexes},
		{"verification_tokens", tokenstore.New(db).EnsureIndexes},
		{"videos", videostore.New(db).EnsureIndexes},
		{"wotd", wotdstore.New(db).EnsureIndexes},
	}

	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", e.name, err)
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
