package main

import (
	"context"
	"fmt"
	"net/http"

	"payment-resolver/config"
	"payment-resolver/internal/adapter/chain"
	"payment-resolver/internal/adapter/prlog"
	pgStorage "payment-resolver/internal/adapter/storage/postgres"
	redisStorage "payment-resolver/internal/adapter/storage/redis"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/logger"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// app holds the connections shared by every subcommand.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	params *chaincfg.Params

	rdb       *goredis.Client // records, queues, meta
	cacheRDB  *goredis.Client // used-address index
	logRDB    *goredis.Client // payment request log, only for pr_log.type=redis
	pool      *pgxpool.Pool   // nil unless database.enabled
	node      *chain.Node
	repo      ports.IdentityRepository
	checkers  []ports.HealthChecker
	closeFunc []func()
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{
		cfg: cfg,
		log: logger.New(cfg.Log.Level, cfg.Log.Pretty),
	}

	if a.params, err = chain.Params(cfg.Chain.Network); err != nil {
		return nil, err
	}

	if a.rdb, err = a.redis(ctx, cfg.Redis, "redis"); err != nil {
		return nil, err
	}
	if a.cacheRDB, err = a.redis(ctx, cfg.Redis.WithDB(cfg.Redis.AddrCacheDB), "redis_address_cache"); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Database.Enabled || cfg.Store.Backend == "postgres" || cfg.PRLog.Type == prlog.TypePostgres {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, a.log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		a.closeFunc = append(a.closeFunc, pool.Close)
		a.checkers = append(a.checkers, pgStorage.NewHealthCheck(pool))
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	switch cfg.Store.Backend {
	case "redis", "":
		a.repo = redisStorage.NewIdentityStore(a.rdb)
	case "postgres":
		a.repo = pgStorage.NewIdentityRepo(a.pool)
	default:
		a.Close()
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	node, err := chain.NewNode(cfg.Chain, a.log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect bitcoin node: %w", err)
	}
	a.node = node
	a.closeFunc = append(a.closeFunc, node.Close)
	a.checkers = append(a.checkers, node)

	return a, nil
}

func (a *app) redis(ctx context.Context, cfg config.RedisConfig, name string) (*goredis.Client, error) {
	client, err := redisStorage.NewClient(ctx, cfg, a.log)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", name, err)
	}
	a.closeFunc = append(a.closeFunc, func() { _ = client.Close() })
	a.checkers = append(a.checkers, redisStorage.NewHealthCheck(client, name))
	return client, nil
}

// paymentRequestLogger returns the configured PR log backend.
func (a *app) paymentRequestLogger(ctx context.Context) (ports.PaymentRequestLogger, error) {
	switch a.cfg.PRLog.Type {
	case prlog.TypeLocal, "":
		return prlog.NewLocal(a.log), nil
	case prlog.TypeRedis:
		if a.logRDB == nil {
			client, err := a.redis(ctx, a.cfg.Redis.WithDB(a.cfg.Redis.LogDB), "redis_pr_log")
			if err != nil {
				return nil, err
			}
			a.logRDB = client
		}
		return redisStorage.NewPaymentRequestLog(a.logRDB, a.log), nil
	case prlog.TypeAPI:
		if a.cfg.PRLog.APIEndpoint == "" {
			return nil, fmt.Errorf("pr_log.api_endpoint is required for pr_log.type=api")
		}
		return prlog.NewAPI(a.cfg.PRLog.APIEndpoint, &http.Client{Timeout: a.cfg.Signer.APITimeout}, a.log), nil
	case prlog.TypePostgres:
		return pgStorage.NewPaymentRequestLogRepo(a.pool), nil
	}
	return nil, fmt.Errorf("unknown pr_log type %q", a.cfg.PRLog.Type)
}

// Close releases connections in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closeFunc) - 1; i >= 0; i-- {
		a.closeFunc[i]()
	}
	a.closeFunc = nil
}
