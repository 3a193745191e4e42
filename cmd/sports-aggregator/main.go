package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/aggregator"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/cache"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/config"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/logger"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/metrics"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/providers/espn"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/registry"
	"github.com/XavierBriggs/fortuna/services/sports-aggregator/internal/sports"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	log.Info("Starting Sports Aggregator...")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Redis is needed for the redis backend and for refresh notifications
	var redisClient *redis.Client
	if cfg.Cache.Backend == config.BackendRedis || cfg.Publish.Enabled {
		redisClient, err = connectRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Connected to Redis")
	}

	store, closeStore, err := openStore(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s cache: %v", cfg.Cache.Backend, err)
	}
	defer closeStore()
	log.WithField("backend", store.Name()).Info("Snapshot cache ready")

	// Initialize components
	espnClient := espn.New(espn.Options{
		BaseURL:   cfg.ESPN.BaseURL,
		UserAgent: cfg.ESPN.UserAgent,
		Timeout:   cfg.ESPN.Timeout,
	}, log, m)
	pacer := ratelimit.NewPacer(cfg.ESPN.PacingDelay)

	leagueRegistry := registry.New(sports.Modules(espnClient, pacer, sports.Options{
		NHLDays:     cfg.Leagues.NHLDays,
		PinnedTeams: cfg.PinnedTeams(),
		Location:    cfg.Location(),
	}, log)...)

	orch := aggregator.NewOrchestrator(leagueRegistry, pacer, aggregator.Rules{
		CFBWindowDays: cfg.Leagues.CFBWindowDays,
		CFBRankCutoff: cfg.Leagues.CFBRankCutoff,
		PinnedTeams:   cfg.PinnedTeams(),
		MLBWindowDays: cfg.Leagues.MLBWindowDays,
	}, log, m)

	var notifier cache.Notifier
	if cfg.Publish.Enabled {
		notifier = publisher.NewStreamPublisher(redisClient, cfg.Publish.Stream)
		log.WithField("stream", cfg.Publish.Stream).Info("Publishing snapshot refreshes")
	}

	gate := cache.NewGate(store, orch, notifier, cfg.Cache.Interval, log, m)

	handler := handlers.NewHandler(gate, store, log)
	router := handlers.NewRouter(handler, reg, log)

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.Server.Addr,
			"leagues":  leagueRegistry.AllLeagueKeys(),
			"interval": cfg.Cache.Interval,
		}).Info("Sports Aggregator listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Server error: %v", err)
			os.Exit(1)
		}

	case sig := <-shutdown:
		log.Infof("Received signal: %v", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Warnf("Graceful shutdown failed: %v", err)
			if err := srv.Close(); err != nil {
				log.Errorf("Could not stop server: %v", err)
			}
		}
	}

	log.Info("Sports Aggregator stopped")
}

// connectRedis parses the URL and checks connectivity
func connectRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// openStore builds the configured snapshot store and its cleanup func
func openStore(cfg *config.Config, redisClient *redis.Client) (cache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisStore(redisClient, cfg.Redis.CacheKey, cfg.Redis.KeyTTL), func() {}, nil

	case config.BackendPostgres:
		db, err := connectDB(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}

		store := cache.NewPostgresStore(db, cfg.Postgres.CacheKey)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil

	default:
		return cache.NewFileStore(cfg.Cache.File), func() {}, nil
	}
}

// connectDB opens a direct database connection
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One row is read or written per request
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
