// Command api runs the MODTOK marketplace HTTP server.
//
// This is the composition root: it loads configuration, connects the
// infrastructure (Postgres, Redis, MinIO, SMTP), wires every bounded
// context module with its adapters, and serves the Gin router until a
// shutdown signal arrives.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"modtok/internal/adapters"
	"modtok/internal/adapters/storage"
	"modtok/internal/auth"
	"modtok/internal/catalog"
	catalogservice "modtok/internal/catalog/service"
	"modtok/internal/content"
	"modtok/internal/email"
	"modtok/internal/events"
	"modtok/internal/feeds"
	apphttp "modtok/internal/http"
	"modtok/internal/http/router"
	"modtok/internal/slots"
	"modtok/internal/visibility"
	"modtok/platform/cache"
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

	log := logger.New(cfg.Env)
	log.Info("starting api", "env", cfg.Env, "addr", cfg.HTTPAddr)

	if err := withRetry(ctx, log, "run migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		panic("failed to run migrations: " + err.Error())
	}

	pool := mustPool(ctx, cfg, log)
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	val := validator.New()

	visCache := initCache(cfg, log)
	sender := initEmail(cfg, log)
	storageSvc := initStorage(ctx, cfg, log)

	catalogModule := catalog.NewModule(pool, asAssetStore(storageSvc), cfg, cfg, val, log)
	catalogAdapter := adapters.NewCatalogReaderAdapter(catalogModule.Repository())

	slotsModule := slots.NewModule(pool, catalogAdapter, bus, val, log)
	slotAdapter := adapters.NewSlotReaderAdapter(slotsModule.Repository())

	visibilityModule := visibility.NewModule(
		catalogAdapter,
		slotAdapter,
		catalogAdapter,
		visCache,
		cfg.GetVisibilityCacheTTL(),
		bus,
		val,
		log,
	)

	contentModule := content.NewModule(pool, bus, val, log)
	authModule := auth.NewModule(pool, cfg, val, log)

	feedsGen := feeds.NewGenerator(
		adapters.NewFeedsCatalogAdapter(catalogModule.Repository()),
		contentModule.Repository(),
		cfg,
	)
	feedsModule := feeds.NewModule(feedsGen, log)

	subscribeContactNotifications(bus, sender, cfg.GetContactRecipient(), log)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			slotsModule,
			visibilityModule,
			contentModule,
			feedsModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func mustPool(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "connect database", 5, 2*time.Second, func() error {
		var err error
		pool, err = db.NewPool(ctx, cfg)
		return err
	}); err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	return pool
}

// initCache connects the Redis visibility cache. Returns nil when Redis
// is not configured; the visibility service treats nil as always-miss.
func initCache(cfg *config.Config, log *logger.Logger) *cache.Cache {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; visibility cache disabled")
		return nil
	}
	c, err := cache.New(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to connect redis cache", "error", err)
		return nil
	}
	return c
}

// initEmail creates the SMTP sender. Returns nil when SMTP is not
// configured; a nil sender drops outgoing mail.
func initEmail(cfg *config.Config, log *logger.Logger) *email.Sender {
	sender, err := email.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		return nil
	}
	if sender == nil {
		log.Warn("SMTP_HOST not configured; email sending disabled")
	}
	return sender
}

// initStorage connects MinIO and ensures the entity buckets exist.
// Returns nil when MinIO is not configured; asset uploads then fail
// with an internal error while the rest of the API works.
func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) *storage.MinIOService {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; asset storage disabled")
		return nil
	}

	svc, err := storage.NewMinIOService(cfg)
	if err != nil {
		panic("failed to initialize object storage: " + err.Error())
	}
	ensureBucket(ctx, svc, cfg.GetMinioBucketEntityImages())
	ensureBucket(ctx, svc, cfg.GetMinioBucketEntityDocuments())
	return svc
}

func ensureBucket(ctx context.Context, svc storage.Service, bucket string) {
	if err := svc.EnsureBucket(ctx, bucket); err != nil {
		panic(fmt.Sprintf("failed to ensure bucket %q: %v", bucket, err))
	}
}

// asAssetStore converts the optional MinIO service to the catalog's
// asset store port. A typed nil pointer must become a nil interface so
// the catalog's nil check works.
func asAssetStore(svc *storage.MinIOService) catalogservice.AssetStore {
	if svc == nil {
		return nil
	}
	return svc
}

// subscribeContactNotifications forwards contact form submissions to the
// operations mailbox.
func subscribeContactNotifications(bus events.Bus, sender *email.Sender, recipient string, log *logger.Logger) {
	if recipient == "" {
		log.Warn("CONTACT_RECIPIENT not configured; contact notifications disabled")
		return
	}

	bus.Subscribe(events.ContactSubmissionReceived{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		submission, ok := event.(events.ContactSubmissionReceived)
		if !ok {
			return fmt.Errorf("unexpected event type %T", event)
		}

		subject := fmt.Sprintf("New contact submission from %s", submission.Name)
		body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", submission.Name, submission.Email, submission.Message)
		return sender.Send(ctx, recipient, subject, body)
	}))
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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

	return fmt.Errorf("%s: %w", name, lastErr)
}
