package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tarunp72/SMART-SDLC/internal/api"
	"github.com/Tarunp72/SMART-SDLC/internal/config"
	"github.com/Tarunp72/SMART-SDLC/internal/connectors"
	"github.com/Tarunp72/SMART-SDLC/internal/extract"
	"github.com/Tarunp72/SMART-SDLC/internal/llm"
	"github.com/Tarunp72/SMART-SDLC/internal/logging"
	"github.com/Tarunp72/SMART-SDLC/internal/middleware"
	"github.com/Tarunp72/SMART-SDLC/internal/pipeline"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)

	backend, selection := llm.NewBackendFromConfig(cfg)
	logrus.WithFields(logrus.Fields{
		"component": "server",
		"requested": selection.Requested,
		"backend":   selection.Active,
		"fallback":  selection.Fallback,
	}).Info("model backend ready")

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      setupRouter(cfg, backend, selection),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logrus.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}
	logrus.Info("server stopped")
}

func setupRouter(cfg *config.Config, backend llm.Backend, selection llm.Selection) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-Id",
		},
		ExposeHeaders: []string{"X-Request-Id"},
	}))

	api.RegisterRoutes(router, api.Dependencies{
		Pipeline:           pipeline.New(backend),
		Extractor:          extract.NewExtractor(),
		Connector:          connectors.NewConnectorFromConfig(cfg),
		Backend:            selection,
		RequestedConnector: cfg.Connector.Provider,
		ContextWindow:      cfg.LLM.ContextWindow,
		MaxUploadBytes:     cfg.Server.MaxUploadBytes,
	})
	return router
}
