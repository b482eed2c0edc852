package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/database"
	"github.com/cleberrangel/project-estimator-api/internal/metrics"
)

// maxWSConnections acima disso o hub é considerado degradado
const maxWSConnections = 10

// connectionCounter é o que o health check precisa do hub
type connectionCounter interface {
	GetConnectionCount() int
}

// HealthHandler handles health check and metrics endpoints
type HealthHandler struct {
	ping      func(context.Context) error
	wsHub     connectionCounter
	db        *sql.DB // nil nos drivers memory/file
	version   string
	maxHeapMB uint64
	startTime time.Time
}

// NewHealthHandler creates a new health handler; wsHub pode ser nil
func NewHealthHandler(ping func(context.Context) error, wsHub connectionCounter, version string) *HealthHandler {
	return &HealthHandler{
		ping:      ping,
		wsHub:     wsHub,
		version:   version,
		maxHeapMB: 512,
		startTime: time.Now(),
	}
}

// LivenessCheck returns basic liveness status
// @Router /health/live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck returns readiness status including storage
// @Success 200 {object} metrics.HealthCheck
// @Failure 503 {object} metrics.HealthCheck
// @Router /health/ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	components := map[string]metrics.HealthStatus{
		"storage": metrics.CheckStorageHealth(c.Request.Context(), h.ping),
		"memory":  metrics.CheckMemoryHealth(h.maxHeapMB),
	}
	if h.wsHub != nil {
		components["websocket"] = h.checkWebSocketHealth()
	}

	overallStatus := metrics.DetermineOverallStatus(components)

	healthCheck := metrics.HealthCheck{
		Status:     overallStatus,
		Version:    h.version,
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, healthCheck)
}

// checkWebSocketHealth checks WebSocket hub health
func (h *HealthHandler) checkWebSocketHealth() metrics.HealthStatus {
	if n := h.wsHub.GetConnectionCount(); n > maxWSConnections {
		return metrics.HealthStatus{
			Status:  "degraded",
			Message: "WebSocket connections near limit",
		}
	}
	return metrics.HealthStatus{Status: "healthy"}
}

// WithDatabase inclui as estatísticas do pool no resumo de métricas
func (h *HealthHandler) WithDatabase(db *sql.DB) *HealthHandler {
	h.db = db
	return h
}

// GetMetrics returns application metrics
// @Success 200 {object} metrics.MetricsSnapshot
// @Router /metrics [get]
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Get().Snapshot())
}

// GetMetricsSummary returns a summary of key metrics
// @Router /metrics/summary [get]
func (h *HealthHandler) GetMetricsSummary(c *gin.Context) {
	snapshot := metrics.Get().Snapshot()

	requestSuccessRate := float64(0)
	if snapshot.Requests.Total > 0 {
		requestSuccessRate = float64(snapshot.Requests.Successful) / float64(snapshot.Requests.Total) * 100
	}

	exportSuccessRate := float64(0)
	totalExports := snapshot.Exports.Generated + snapshot.Exports.Errors
	if totalExports > 0 {
		exportSuccessRate = float64(snapshot.Exports.Generated) / float64(totalExports) * 100
	}

	summary := gin.H{
		"uptime_seconds": snapshot.UptimeSeconds,
		"version":        h.version,
		"requests": gin.H{
			"total":        snapshot.Requests.Total,
			"success_rate": requestSuccessRate,
			"avg_latency":  snapshot.Requests.AvgLatencyMs,
		},
		"mutations": snapshot.Mutations,
		"exports": gin.H{
			"generated":    snapshot.Exports.Generated,
			"errors":       snapshot.Exports.Errors,
			"success_rate": exportSuccessRate,
		},
		"storage": snapshot.Storage,
		"websocket": gin.H{
			"connections": snapshot.WebSocket.Connections,
		},
		"system": gin.H{
			"goroutines":  snapshot.System.Goroutines,
			"heap_mb":     snapshot.System.HeapAllocMB,
			"heap_use_mb": snapshot.System.HeapInUseMB,
		},
	}
	if h.db != nil {
		summary["database"] = database.GetPoolStats(h.db)
	}

	c.JSON(http.StatusOK, summary)
}

// GetEndpointMetrics returns metrics for specific endpoints
// @Router /metrics/endpoints [get]
func (h *HealthHandler) GetEndpointMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"endpoints": metrics.Get().Snapshot().Endpoints,
	})
}
