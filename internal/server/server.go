package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lsp-search-service/config"
	"lsp-search-service/internal/controller/router"
	"lsp-search-service/internal/draftorders"
	"lsp-search-service/internal/orchestrator"
)

type Server struct {
	cfg          *config.Config
	Orchestrator *orchestrator.Orchestrator
	DraftOrders  *draftorders.Service
	HTTPPort     string
	logger       *zap.Logger
	server       *http.Server
}

func New(cfg *config.Config, orch *orchestrator.Orchestrator, draftOrders *draftorders.Service, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if orch == nil {
		return nil, fmt.Errorf("orchestrator cannot be nil")
	}
	if draftOrders == nil {
		return nil, fmt.Errorf("draft order service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	httpPort := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)

	return &Server{
		cfg:          cfg,
		Orchestrator: orch,
		DraftOrders:  draftOrders,
		HTTPPort:     httpPort,
		logger:       logger,
	}, nil
}

func (s *Server) Launch() error {
	// Создаем контроллер с логгером
	controller := router.NewController(s.Orchestrator, s.DraftOrders, s.logger)
	r := controller.SetupRouter()

	// Настраиваем HTTP сервер с таймаутами
	s.server = &http.Server{
		Addr:         s.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting HTTP server",
		zap.String("address", s.HTTPPort),
		zap.String("host", s.cfg.App.Host),
		zap.String("port", s.cfg.App.Port))

	// Запускаем сервер
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to launch server: %w", err)
	}

	return nil
}

// Shutdown gracefully останавливает сервер
func (s *Server) Shutdown() error {
	if s.server != nil {
		s.logger.Info("Shutting down HTTP server")

		// Создаем контекст с таймаутом для graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shutdown server gracefully", zap.Error(err))
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		s.logger.Info("HTTP server shut down successfully")
	}
	return nil
}
