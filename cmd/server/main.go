package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"cancelflow/internal/config"
	httpGateway "cancelflow/internal/gateways/http"
	"cancelflow/internal/metrics"
	cacheStore "cancelflow/internal/repository/cancellation/cache"
	memoryStore "cancelflow/internal/repository/cancellation/memory"
	pgStore "cancelflow/internal/repository/cancellation/postgres"
	supabaseStore "cancelflow/internal/repository/cancellation/supabase"
	usecaseInternal "cancelflow/internal/usecase"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadConfig()
	log := setupLogger(cfg.Env)

	log.Info("starting cancelflow", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))
	log.Debug("debug messages are enabled")

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	opts := []usecaseInternal.Option{}
	serverOpts := []func(*httpGateway.Server){
		httpGateway.WithHost(cfg.Server.Host),
		httpGateway.WithPort(uint16(cfg.Server.Port)),
		httpGateway.WithLogger(log),
		httpGateway.WithTimeout(cfg.Server.Timeout),
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, usecaseInternal.WithRecorder(metrics.NewCancellationMetrics(reg)))
		serverOpts = append(serverOpts, httpGateway.WithMetrics(reg))
	}

	useCases := httpGateway.UseCases{
		Cancel: usecaseInternal.NewCancellation(store, opts...),
	}

	server := httpGateway.New(useCases, *cfg, log, serverOpts...)

	log.Info("starting server", slog.String("address", cfg.Server.Host+":"+strconv.Itoa(cfg.Server.Port)))
	if err := server.Run(ctx); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore builds the configured store, wrapped in the Redis cache when redis.addr is set.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (usecaseInternal.Store, func(), error) {
	var (
		store   usecaseInternal.Store
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		connStr := cfg.Pg.ConnString()
		if cfg.Pg.Migrations != "" {
			if err := pgStore.Migrate(connStr, cfg.Pg.Migrations); err != nil {
				return nil, nil, err
			}
			log.Debug("migrations applied", slog.String("dir", cfg.Pg.Migrations))
		}
		pool, err := pgxpool.New(ctx, connStr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		store = pgStore.NewStore(pool)
		log.Debug("init database")
	case config.DriverSupabase:
		store = supabaseStore.NewStore(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	default:
		mem := memoryStore.NewStore()
		if cfg.Storage.Seed {
			mem.Seed(memoryStore.DemoSubscription())
			log.Info("in-memory store seeded",
				slog.String("subscription_id", memoryStore.DemoSubscriptionID.String()),
				slog.String("user_id", memoryStore.DemoUserID.String()),
			)
		}
		store = mem
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			closeAll()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		store = cacheStore.NewStore(store, rdb, cacheStore.WithTTL(cfg.Redis.TTL), cacheStore.WithLogger(log))
		log.Debug("subscription cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	return store, closeAll, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch strings.ToLower(env) {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default: // prod
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
