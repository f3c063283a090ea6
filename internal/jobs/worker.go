package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker drains the background task queues against the shared Redis instance.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *slog.Logger
}

// NewWorker builds a worker consuming the given queues by weight.
func NewWorker(redisOpt asynq.RedisConnOpt, queues map[string]int, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.Default()
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Queues:      queues,
		Concurrency: 2,
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			log.Error("background task failed",
				slog.String("type", task.Type()), slog.Any("error", err))
		}),
	})

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		log:    log,
	}
}

// RegisterHandler binds a task type to its handler.
func (w *Worker) RegisterHandler(taskType string, handler asynq.Handler) {
	w.mux.Handle(taskType, handler)
}

// Run blocks processing tasks until Shutdown is called.
func (w *Worker) Run() error {
	w.log.Info("jobs worker started")
	return w.server.Run(w.mux)
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *Worker) Shutdown() {
	w.log.Info("jobs worker stopping")
	w.server.Shutdown()
}
