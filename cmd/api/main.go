package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	_ "stockdata/docs"
	"stockdata/pkg/api"
	"stockdata/pkg/config"
	"stockdata/pkg/logger"
	"stockdata/pkg/otel"
	"stockdata/pkg/price"
	"stockdata/pkg/price/csvstore"
	"stockdata/pkg/price/memory"
	"stockdata/pkg/price/redisstore"
	"stockdata/pkg/price/sqlstore"
)

const serviceName = "stockdata"

// @title Stock Data API
// @version 1.0
// @description REST access to a daily stock price dataset
// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", os.Getenv("STOCKDATA_CONFIG"), "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out, closeLog := logger.Writer(os.Stdout, logger.FileConfig{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	defer closeLog()
	log := logger.New(out, logger.ParseLevel(cfg.Logging.Level), serviceName, otel.GetTraceID)
	defer log.Sync()

	ctx := context.Background()

	tp, shutdownTracing, err := otel.InitTracing(log, otel.Config{
		ServiceName: serviceName,
		Host:        cfg.Tracing.Host,
		Probability: cfg.Tracing.Probability,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	defer closeStore()
	log.Info(ctx, "store ready", "backend", cfg.Storage.Backend)

	svc := price.NewService(store, cfg.Auth.AdminKey,
		price.WithStrictAverage(cfg.Average.Strict),
		price.WithLogger(log),
	)
	router := api.NewRouter(api.NewHandler(svc, log), log, tp.Tracer(serviceName))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Server.Addr, "tls", cfg.Server.CertFile != "")
		if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
			errCh <- srv.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server closed", "error", err)
			return err
		}
	case s := <-sig:
		log.Info(ctx, "shutting down", "signal", s.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "shutdown", "error", err)
			return err
		}
	}
	return nil
}

// openStore builds the configured backend. The returned closer is never nil.
func openStore(ctx context.Context, cfg config.Storage) (price.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendCSV:
		return csvstore.New(cfg.CSVPath), noop, nil

	case config.BackendMemory:
		return memory.New(nil), noop, nil

	case config.BackendSQLite, config.BackendPostgres:
		db, err := sql.Open(cfg.Backend, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		s := sqlstore.New(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return redisstore.New(client, cfg.RedisKey), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
