// Package jobs schedules and runs background maintenance tasks.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	TaskTypeCatalogRefresh = "catalog:refresh"
)

const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// NewCatalogRefreshTask builds the periodic catalog snapshot warm-up task.
// It carries no payload; the handler always refreshes the full catalog.
func NewCatalogRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskTypeCatalogRefresh, nil, asynq.Queue(QueueDefault))
}
