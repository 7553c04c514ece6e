package health

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/piresc/toolshare/internal/pkg/logger"
)

// HealthChecker checks one dependency
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// NewPostgresHealthChecker pings the ledger database
func NewPostgresHealthChecker(client *database.PostgresClient) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		return client.GetDB().PingContext(ctx)
	})
}

func NewRedisHealthChecker(client *database.RedisClient) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		return client.Client.Ping(ctx).Err()
	})
}

// Connection is satisfied by *nats.Conn
type Connection interface {
	IsConnected() bool
}

func NewNATSHealthChecker(conn Connection) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		if conn == nil || !conn.IsConnected() {
			return errors.New("nats not connected")
		}
		return nil
	})
}

// Pinger is satisfied by *nsq.Producer
type Pinger interface {
	Ping() error
}

func NewNSQHealthChecker(p Pinger) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		return p.Ping()
	})
}

// HealthService runs the registered checkers
type HealthService struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	logger   *logger.ZapLogger
}

func NewHealthService(zl *logger.ZapLogger) *HealthService {
	if zl == nil {
		zl = logger.NewNopZapLogger()
	}
	return &HealthService{checkers: make(map[string]HealthChecker), logger: zl}
}

func (h *HealthService) AddChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string                    `json:"status"`
	Timestamp    time.Time                 `json:"timestamp"`
	Service      string                    `json:"service"`
	Version      string                    `json:"version,omitempty"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

type DependencyInfo struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// CheckAllHealth checks every dependency concurrently
func (h *HealthService) CheckAllHealth(ctx context.Context) HealthResponse {
	h.mu.RLock()
	checkers := make(map[string]HealthChecker, len(h.checkers))
	for k, v := range h.checkers {
		checkers[k] = v
	}
	h.mu.RUnlock()

	response := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Dependencies: make(map[string]DependencyInfo, len(checkers)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := checker.CheckHealth(ctx)
			info := DependencyInfo{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				h.logger.Error("Health check failed", logger.String("dependency", name), logger.Err(err))
				info.Status = "unhealthy"
				info.Error = err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			response.Dependencies[name] = info
			if err != nil {
				response.Status = "unhealthy"
			}
		}(name, checker)
	}
	wg.Wait()

	return response
}

// RegisterEnhancedHealthEndpoints mounts /health, /health/detailed,
// /health/ready and /health/live
func RegisterEnhancedHealthEndpoints(e *echo.Echo, serviceName, version string, healthService *HealthService) {
	g := e.Group("/health")

	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": time.Now().UTC(),
		})
	})

	g.GET("/detailed", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		response := healthService.CheckAllHealth(ctx)
		response.Service = serviceName
		response.Version = version
		return c.JSON(statusFor(response), response)
	})

	g.GET("/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		response := healthService.CheckAllHealth(ctx)
		response.Service = serviceName
		if response.Status != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready", "service": serviceName})
	})

	g.GET("/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "alive", "service": serviceName})
	})
}

func statusFor(r HealthResponse) int {
	if r.Status == "healthy" {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}
