package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/project-estimator-api/internal/config"
	"github.com/cleberrangel/project-estimator-api/internal/handler"
	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/metrics"
	"github.com/cleberrangel/project-estimator-api/internal/service"
	"github.com/cleberrangel/project-estimator-api/internal/storage"
	"github.com/cleberrangel/project-estimator-api/internal/websocket"
)

const Version = "1.0.0"

const shutdownTimeout = 10 * time.Second

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	logger.InitAudit()
	metrics.Init()
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("storage_driver", cfg.StorageDriver).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Msg("Project Estimator API iniciando")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao abrir armazenamento")
	}
	defer backend.Close()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	opts := service.AppOptions{
		Store:    backend.Adapter,
		Notifier: hub,
		Exporter: service.NewSpreadsheetExporter(cfg.ExportAuthor),
	}
	// evita guardar um *ExportLogRepository nil dentro da interface
	if backend.ExportLog != nil {
		opts.ExportLog = backend.ExportLog
	}
	app := service.NewApp(ctx, opts)

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	router := handler.NewRouter(handler.RouterOptions{
		App:                 app,
		Hub:                 hub,
		DB:                  backend.DB,
		Version:             Version,
		ExportRatePerMinute: cfg.ExportRatePerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Servidor iniciando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Erro no encerramento do servidor")
	}
	log.Info().Msg("Servidor encerrado")
}
