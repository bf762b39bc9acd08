package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/app"
	"github.com/iliyamo/cinema-control/internal/config"
	"github.com/iliyamo/cinema-control/internal/database"
	"github.com/iliyamo/cinema-control/internal/logger"
	"github.com/iliyamo/cinema-control/internal/queue"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; catalog cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	pub, err := startEvents(ctx, cfg.Events, log.Named("events"))
	if err != nil {
		return err
	}
	defer pub.Close()

	e := app.New(cfg, config.LoadCacheConfig(), config.LoadRateLimitConfig(), app.Deps{
		DB:        db,
		Redis:     rdb,
		Publisher: pub,
		Log:       log,
	})

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("db", cfg.Database.Driver))
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// startEvents returns the publisher for the configured broker and starts
// the matching ticket log consumer in the background.
func startEvents(ctx context.Context, cfg config.Events, log *zap.Logger) (queue.Publisher, error) {
	sink := queue.NewTicketLog(cfg.LogDir)
	consume := func(name string, fn func() error) {
		go func() {
			if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("consumer stopped", zap.String("broker", name), zap.Error(err))
			}
		}()
	}

	switch strings.ToLower(cfg.Broker) {
	case "", "none":
		return queue.NopPublisher{}, nil
	case "rabbitmq":
		consume("rabbitmq", func() error { return queue.StartRabbitConsumer(ctx, cfg.RabbitMQURL, sink, log) })
		return queue.NewRabbitPublisher(cfg.RabbitMQURL), nil
	case "kafka":
		consume("kafka", func() error {
			return queue.StartKafkaConsumer(ctx, cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroup, sink, log)
		})
		return queue.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic), nil
	}
	return nil, fmt.Errorf("unknown EVENTS_BROKER %q", cfg.Broker)
}
