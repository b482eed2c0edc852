package handler

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/middleware"
	"github.com/cleberrangel/project-estimator-api/internal/service"
	"github.com/cleberrangel/project-estimator-api/internal/websocket"
)

// RouterOptions reúne as dependências das rotas
type RouterOptions struct {
	App                 *service.App
	Hub                 *websocket.Hub // opcional; sem ele /ws não é registrado
	DB                  *sql.DB        // opcional; pool exposto em /metrics/summary
	Version             string
	ExportRatePerMinute int
}

// NewRouter monta o engine com middlewares e rotas da API
func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware())

	var hub connectionCounter
	if opts.Hub != nil {
		hub = opts.Hub
	}
	healthHandler := NewHealthHandler(opts.App.Ping, hub, opts.Version).WithDatabase(opts.DB)
	estimateHandler := NewEstimateHandler(opts.App)
	kpiHandler := NewKPIHandler(opts.App)
	pageHandler := NewPageHandler(opts.App)
	exportHandler := NewExportHandler(opts.App)

	router.GET("/health", healthHandler.ReadinessCheck)
	router.GET("/health/live", healthHandler.LivenessCheck)
	router.GET("/health/ready", healthHandler.ReadinessCheck)
	router.GET("/metrics", healthHandler.GetMetrics)
	router.GET("/metrics/summary", healthHandler.GetMetricsSummary)
	router.GET("/metrics/endpoints", healthHandler.GetEndpointMetrics)

	exportLimit := middleware.RateLimit(opts.ExportRatePerMinute)

	api := router.Group("/api/v1")
	api.Use(middleware.AuditMiddleware("/api/v1"))
	{
		api.GET("/page", pageHandler.Get)
		api.PUT("/page", pageHandler.Set)
		api.GET("/exports", exportHandler.ListRecent)

		estimate := api.Group("/estimate")
		{
			estimate.GET("", estimateHandler.Get)
			estimate.PUT("/title", estimateHandler.SetTitle)
			estimate.POST("/items", estimateHandler.AddItem)
			estimate.PATCH("/items/:id", estimateHandler.UpdateItem)
			estimate.DELETE("/items/:id", estimateHandler.RemoveItem)
			estimate.POST("/reset", estimateHandler.Reset)
			estimate.GET("/export", exportLimit, estimateHandler.Export)
		}

		kpi := api.Group("/kpi")
		{
			kpi.GET("", kpiHandler.Get)
			kpi.PUT("/title", kpiHandler.SetTitle)
			kpi.POST("/tasks", kpiHandler.AddTask)
			kpi.PATCH("/tasks/:id", kpiHandler.UpdateTask)
			kpi.DELETE("/tasks/:id", kpiHandler.RemoveTask)
			kpi.POST("/week", kpiHandler.NavigateWeek)
			kpi.PUT("/week", kpiHandler.SelectWeek)
			kpi.POST("/reset", kpiHandler.Reset)
			kpi.GET("/export", exportLimit, kpiHandler.Export)
		}
	}

	if opts.Hub != nil {
		wsHandler := NewWebSocketHandler(opts.Hub)
		router.GET("/ws", wsHandler.HandleConnection)
		api.GET("/ws/stats", wsHandler.GetConnectionStats)
	}

	return router
}
