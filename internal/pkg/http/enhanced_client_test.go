package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piresc/toolshare/internal/pkg/circuitbreaker"
	"github.com/piresc/toolshare/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *EnhancedClient {
	return NewEnhancedClientWith(
		&http.Client{Timeout: 2 * time.Second},
		retry.New(retry.Config{MaxRetries: 2, BaseDelay: time.Millisecond, Multiplier: 1}, nil),
		circuitbreaker.NewManager(nil),
	)
}

func TestEnhancedClient_RetriesReplayBody(t *testing.T) {
	var calls int32
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ORDER-1"}`))
	}))
	defer srv.Close()

	var out struct {
		ID string `json:"id"`
	}
	err := newTestClient().DoJSON(context.Background(), http.MethodPost, srv.URL, map[string]string{"PayPal-Request-Id": "k1"}, map[string]string{"intent": "CAPTURE"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", out.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"intent":"CAPTURE"}`, bodies[0])
	assert.Equal(t, bodies[0], bodies[1])
}

func TestEnhancedClient_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "UNPROCESSABLE_ENTITY"})
	}))
	defer srv.Close()

	err := newTestClient().DoJSON(context.Background(), http.MethodPost, srv.URL, nil, map[string]string{}, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "UNPROCESSABLE_ENTITY")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEnhancedClient_ServerErrorExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestClient().DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
