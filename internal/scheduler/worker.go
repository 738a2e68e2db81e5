package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"modtok/platform/logger"
)

// Worker runs the asynq task server plus the periodic enqueuer.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	log       *logger.Logger
}

// NewWorker creates a worker bound to the given Redis instance. The
// digest task is enqueued every morning at 08:00 server time.
func NewWorker(redisURL string, digest *DigestHandler, log *logger.Logger) (*Worker, error) {
	connOpt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	server := asynq.NewServer(connOpt, asynq.Config{
		Concurrency: 2,
		Logger:      asynqLogger{log},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSlotExpiryDigest, digest.HandleSlotExpiryDigest)

	scheduler := asynq.NewScheduler(connOpt, &asynq.SchedulerOpts{
		Logger: asynqLogger{log},
	})
	if _, err := scheduler.Register("0 8 * * *", NewSlotExpiryDigestTask()); err != nil {
		return nil, fmt.Errorf("register digest schedule: %w", err)
	}

	return &Worker{server: server, scheduler: scheduler, mux: mux, log: log}, nil
}

// Run starts the scheduler and task server and blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return fmt.Errorf("start task server: %w", err)
	}

	<-ctx.Done()
	w.log.Info("shutting down worker")
	w.scheduler.Shutdown()
	w.server.Shutdown()
	return nil
}

// asynqLogger adapts the application logger to asynq's interface.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }
