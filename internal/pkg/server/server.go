package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
)

const defaultShutdownTimeout = 30 * time.Second

type shutdownHook struct {
	name string
	fn   func(ctx context.Context)
}

// GracefulServer runs Echo until SIGINT/SIGTERM or ctx ends, then drains
// HTTP and runs the registered hooks in order
type GracefulServer struct {
	echo    *echo.Echo
	logger  *logger.ZapLogger
	addr    string
	timeout time.Duration
	hooks   []shutdownHook
}

// NewGracefulServer applies the configured timeouts to e
func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, cfg models.ServerConfig) *GracefulServer {
	if zapLogger == nil {
		zapLogger = logger.NewNopZapLogger()
	}
	e.HideBanner = true
	e.HidePort = true
	if cfg.ReadTimeout > 0 {
		e.Server.ReadTimeout = time.Duration(cfg.ReadTimeout) * time.Second
	}
	if cfg.WriteTimeout > 0 {
		e.Server.WriteTimeout = time.Duration(cfg.WriteTimeout) * time.Second
	}

	timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &GracefulServer{
		echo:    e,
		logger:  zapLogger,
		addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		timeout: timeout,
	}
}

// OnShutdown registers fn to run after HTTP has drained
func (s *GracefulServer) OnShutdown(name string, fn func(ctx context.Context)) {
	s.hooks = append(s.hooks, shutdownHook{name: name, fn: fn})
}

// Run blocks until a shutdown signal, ctx cancellation or a listener error
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		s.logger.Info("Received shutdown signal", logger.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	case err := <-errCh:
		runErr = fmt.Errorf("http server failed: %w", err)
	}

	if err := s.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown drains HTTP then runs hooks, all within the shutdown timeout
func (s *GracefulServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	err := s.echo.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server forced to shutdown", logger.Err(err))
	}

	for _, h := range s.hooks {
		s.logger.Info("Running shutdown hook", logger.String("hook", h.name))
		h.fn(ctx)
	}
	return err
}
