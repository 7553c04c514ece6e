package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn bool

func (f fakeConn) IsConnected() bool { return bool(f) }

func TestCheckAllHealth(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	svc := NewHealthService(nil)
	svc.AddChecker("redis", NewRedisHealthChecker(&database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}))
	svc.AddChecker("nats", NewNATSHealthChecker(fakeConn(true)))

	resp := svc.CheckAllHealth(context.Background())
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["redis"].Status)

	svc.AddChecker("nsq", CheckerFunc(func(ctx context.Context) error { return errors.New("nsqd unreachable") }))

	resp = svc.CheckAllHealth(context.Background())
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "nsqd unreachable", resp.Dependencies["nsq"].Error)
}

func TestHealthEndpoints(t *testing.T) {
	svc := NewHealthService(nil)
	svc.AddChecker("nats", NewNATSHealthChecker(fakeConn(false)))

	e := echo.New()
	RegisterEnhancedHealthEndpoints(e, "payments-service", "1.2.0", svc)

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/health/live", http.StatusOK},
		{"/health/ready", http.StatusServiceUnavailable},
		{"/health/detailed", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "payments-service", body.Service)
	assert.Equal(t, "1.2.0", body.Version)
	assert.Equal(t, "nats not connected", body.Dependencies["nats"].Error)
}
