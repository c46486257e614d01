package main

import (
	"context"
	"fmt"
	"log/slog"

	electionstore "votecast/internal/election/store"
	identitystore "votecast/internal/identity/store"
	"votecast/internal/platform/config"
	"votecast/internal/platform/database"
	"votecast/internal/platform/redis"
	"votecast/internal/voting/service"
	codestore "votecast/internal/voting/store/code"
	"votecast/internal/voting/throttle"
	"votecast/internal/voting/worker"
	audit "votecast/pkg/platform/audit"
	auditmemory "votecast/pkg/platform/audit/store/memory"
	"votecast/pkg/platform/audit/store/sqlstore"
)

// backend bundles the stores selected by STORAGE_DRIVER and REDIS_URL.
type backend struct {
	stores service.Stores
	audit  audit.Store
	db     *database.DB
	redis  *redis.Client
}

func openBackend(ctx context.Context, cfg config.Server, logger *slog.Logger) (*backend, error) {
	b := &backend{}
	txOpt := electionstore.WithTxTimeout(cfg.Storage.TxTimeout)

	switch cfg.Storage.Driver {
	case "memory":
		elections := electionstore.NewInMemoryStore()
		b.stores.Participants = identitystore.NewInMemoryStore()
		b.stores.Elections = elections
		b.stores.Candidates = elections
		b.stores.Tx = electionstore.NewShardedTx(elections, txOpt)
		b.audit = auditmemory.NewInMemoryStore()
		logger.Warn("using in-memory storage; data is lost on restart")
	default:
		dsn := cfg.Storage.DatabaseURL
		if cfg.Storage.Driver == "sqlite" {
			dsn = cfg.Storage.SQLitePath
		}
		db, err := database.Open(ctx, cfg.Storage.Driver, dsn, database.Options{
			MaxOpenConns:    cfg.Storage.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		elections := electionstore.NewSQLStore(db)
		b.db = db
		b.stores.Participants = identitystore.NewSQLStore(db)
		b.stores.Elections = elections
		b.stores.Candidates = elections
		b.stores.Tx = electionstore.NewSQLTx(elections, txOpt)
		b.audit = sqlstore.New(db)
		logger.Info("database ready", "driver", cfg.Storage.Driver, "dialect", string(db.Dialect))
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		b.Close()
		return nil, err
	}
	if client != nil {
		b.redis = client
		b.stores.Codes = codestore.NewRedisStore(client.Client)
		logger.Info("pending codes stored in redis")
	} else {
		b.stores.Codes = codestore.NewInMemoryStore()
	}
	return b, nil
}

// issueThrottle shares code-issuance budgets across replicas when Redis is
// configured.
func (b *backend) issueThrottle(cfg config.VotingConfig) issueLimiter {
	if b.redis != nil {
		return throttle.NewRedis(b.redis.Client, cfg.IssueLimit, cfg.IssueWindow)
	}
	return throttle.New(cfg.IssueLimit, cfg.IssueWindow)
}

// issueLimiter is what the service and the sweeper need from a throttle.
type issueLimiter interface {
	service.Throttle
	worker.Pruner
}

// Health pings every networked dependency.
func (b *backend) Health(ctx context.Context) map[string]error {
	checks := map[string]error{}
	if b.db != nil {
		checks["database"] = b.db.PingContext(ctx)
	}
	if b.redis != nil {
		checks["redis"] = b.redis.Health(ctx)
	}
	return checks
}

func (b *backend) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		_ = b.db.Close()
	}
}
