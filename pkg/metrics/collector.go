package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	botUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of bot updates handled labeled by action and status",
		},
		[]string{"action", "status"},
	)
	updateDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "update_duration_seconds",
			Help:    "Duration of update handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
	purchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gift_purchases_total",
			Help: "Total number of gift purchase attempts by result",
		},
		[]string{"result"},
	)
	purchaseStarsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gift_purchase_stars_total",
			Help: "Total stars spent on successful purchases",
		},
	)
	rendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_renders_total",
			Help: "Total number of menu renders by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
	catalogGifts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_gifts",
			Help: "Number of gifts in the last loaded catalog snapshot",
		},
	)
	catalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refresh_total",
			Help: "Total number of catalog snapshot refreshes by status",
		},
		[]string{"status"},
	)
)

// Purchase result labels.
const (
	PurchaseDelivered    = "delivered"
	PurchaseFailed       = "failed"
	PurchaseInsufficient = "insufficient_funds"
	PurchaseNotFound     = "gift_not_found"
)

// RecordUpdate increments update counters and records handling duration.
func RecordUpdate(action, status string, duration time.Duration) {
	if action == "" {
		action = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botUpdatesTotal.WithLabelValues(action, status).Inc()
	updateDurationSeconds.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordPurchase tracks a purchase attempt outcome; stars are counted only for deliveries.
func RecordPurchase(result string, stars int64) {
	if result == "" {
		result = "unknown"
	}

	purchasesTotal.WithLabelValues(result).Inc()
	if result == PurchaseDelivered && stars > 0 {
		purchaseStarsTotal.Add(float64(stars))
	}
}

// RecordRender tracks a menu render by mode ("edit" or "send") and outcome.
func RecordRender(mode, outcome string) {
	if mode == "" {
		mode = "unknown"
	}
	if outcome == "" {
		outcome = "unknown"
	}

	rendersTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}

// SetCatalogSize updates the catalog snapshot size gauge.
func SetCatalogSize(count int) {
	catalogGifts.Set(float64(count))
}

// RecordCatalogRefresh tracks a background catalog refresh run.
func RecordCatalogRefresh(status string) {
	if status == "" {
		status = "unknown"
	}

	catalogRefreshTotal.WithLabelValues(status).Inc()
}
