// Package handlers implements the background task handlers.
package handlers

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Proton-105/giftpanel-bot/internal/domain"
)

// Refresher is the subset of the catalog loader the job needs.
type Refresher interface {
	Refresh(ctx context.Context) ([]domain.Gift, error)
}

// CatalogRefreshHandler keeps the catalog snapshot cache warm so the first
// panel interaction after a quiet period does not pay the Bot API round trip.
type CatalogRefreshHandler struct {
	loader Refresher
	log    *slog.Logger
}

// NewCatalogRefreshHandler builds the refresh task handler.
func NewCatalogRefreshHandler(loader Refresher, log *slog.Logger) *CatalogRefreshHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CatalogRefreshHandler{loader: loader, log: log}
}

// ProcessTask satisfies asynq.Handler.
func (h *CatalogRefreshHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	gifts, err := h.loader.Refresh(ctx)
	if err != nil {
		h.log.Error("catalog refresh failed", slog.Any("error", err))
		return err
	}

	h.log.Info("catalog snapshot refreshed", slog.Int("gifts", len(gifts)))
	return nil
}
