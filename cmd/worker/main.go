// Command worker runs the background task queue: the asynq server plus
// the periodic scheduler that enqueues the daily slot expiry digest.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"modtok/internal/adapters"
	catalogrepo "modtok/internal/catalog/repository"
	"modtok/internal/email"
	"modtok/internal/events"
	"modtok/internal/scheduler"
	"modtok/internal/slots"
	"modtok/platform/config"
	"modtok/platform/db"
	"modtok/platform/logger"
	"modtok/platform/validator"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the worker")
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "connect database", 5, 2*time.Second, func() error {
		var err error
		pool, err = db.NewPool(ctx, cfg)
		return err
	}); err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	val := validator.New()

	sender, err := email.New(cfg, log)
	if err != nil {
		panic("failed to initialize email sender: " + err.Error())
	}
	if sender == nil {
		log.Warn("SMTP_HOST not configured; digest emails disabled")
	}

	// The worker reuses the slots module for its service layer only; no
	// HTTP routes are mounted here.
	catalogAdapter := adapters.NewCatalogReaderAdapter(catalogrepo.New(pool))
	slotsModule := slots.NewModule(pool, catalogAdapter, bus, val, log)

	digest := scheduler.NewDigestHandler(
		slotsModule.Service(),
		sender,
		cfg.GetContactRecipient(),
		cfg.GetSlotExpiryDigestDays(),
		log,
	)

	worker, err := scheduler.NewWorker(cfg.GetRedisURL(), digest, log)
	if err != nil {
		panic("failed to initialize worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		panic("worker error: " + err.Error())
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
