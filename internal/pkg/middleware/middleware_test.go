package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/toolshare/internal/pkg/jwt"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestValidateAPIKey(t *testing.T) {
	keys := ServiceKeys(models.APIKeyConfig{RentalService: "rental-key", AdminService: "admin-key"})
	e := echo.New()
	e.GET("/internal/x", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("service").(string))
	}, ValidateAPIKey(keys, ServiceRental))

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong service", "admin-key", http.StatusUnauthorized},
		{"allowed", "rental-key", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal/x", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}

			rec := serve(e, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, ServiceRental, rec.Body.String())
			}
		})
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := models.JWTConfig{Secret: "s3cret", Issuer: "toolshare"}
	userID := uuid.New()
	token, err := jwtpkg.GenerateToken(userID, jwtpkg.RoleUser, cfg, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		id, found := UserID(c)
		require.True(t, found)
		return c.String(http.StatusOK, id.String())
	}, JWTAuthMiddleware(cfg))
	e.GET("/admin", ok, JWTAuthMiddleware(cfg), RequireRole(jwtpkg.RoleAdmin))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		rec := serve(e, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)
	})

	t.Run("role required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, serve(e, req).Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	assert.Equal(t, "req-42", serve(e, req).Header().Get(echo.HeaderXRequestID))

	generated := serve(e, httptest.NewRequest(http.MethodGet, "/", nil)).Header().Get(echo.HeaderXRequestID)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}

func TestRateLimiterMiddleware(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	e := echo.New()
	e.POST("/webhooks/paypal", ok, RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: client,
		Resource:    "webhook",
		Limit:       2,
		Period:      time.Minute,
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(e, httptest.NewRequest(http.MethodPost, "/webhooks/paypal", nil)).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodPost, "/webhooks/paypal", nil)).Code)
}

func TestRateLimiterMiddleware_FailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	e := echo.New()
	e.GET("/", ok, RateLimiterMiddleware(RateLimiterConfig{RedisClient: client, Resource: "x", Limit: 1, Period: time.Minute}))

	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zl := &logger.ZapLogger{Logger: zap.New(core)}

	e := echo.New()
	e.Use(RequestIDMiddleware(), PanicRecoveryWithZapMiddleware(zl))
	e.GET("/boom", func(c echo.Context) error {
		panic("ledger exploded")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Panic recovered", entry.Message)
	assert.Equal(t, "ledger exploded", entry.ContextMap()["panic_value"])
}
