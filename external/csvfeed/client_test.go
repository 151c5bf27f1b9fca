package csvfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
	"github.com/riskibarqy/fantasy-projections/internal/platform/resilience"
)

func newTestClient(breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		Name:           source.NameFFDP,
		Timeout:        2 * time.Second,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_Get(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("Player,Pos\nJosh Allen,QB\n"))
	}))
	defer srv.Close()

	body, err := newTestClient(resilience.CircuitBreakerConfig{}).Get(context.Background(), srv.URL+"/week1.csv")
	require.NoError(t, err)
	assert.Equal(t, "Player,Pos\nJosh Allen,QB\n", string(body))
}

func TestClient_GetNotFoundIsUnavailable(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	client := newTestClient(resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})
	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), srv.URL+"/missing.csv")
		require.Error(t, err)
		assert.True(t, crerr.Is(err, source.ErrUnavailable), "expected ErrUnavailable, got %v", err)
		assert.True(t, crerr.Is(err, ErrNotPublished), "expected ErrNotPublished, got %v", err)
	}
	// 404 does not trip the breaker, so every call reached the server.
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_ServerErrorOpensBreaker(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})
	_, err := client.Get(context.Background(), srv.URL+"/a.csv")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, source.ErrUnavailable))

	_, err = client.Get(context.Background(), srv.URL+"/a.csv")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, resilience.ErrCircuitOpen))
	assert.True(t, crerr.Is(err, source.ErrUnavailable))
	assert.Equal(t, int32(1), hits.Load(), "no retry and no request while open")
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(ClientConfig{Name: source.NameNFLVerse, Timeout: 50 * time.Millisecond, Logger: logging.NewNop()})
	_, err := client.Get(context.Background(), srv.URL+"/slow.csv")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, source.ErrUnavailable))
}

func TestClient_Probe(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(resilience.CircuitBreakerConfig{})
	require.NoError(t, client.Probe(context.Background(), srv.URL+"/up"))
	err := client.Probe(context.Background(), srv.URL+"/down")
	assert.True(t, crerr.Is(err, source.ErrUnavailable))
}

func TestClient_GetRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Player,Pos,RushYds\nJosh Jacobs,RB,152\n"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		Name:         source.NameFFDP,
		Timeout:      2 * time.Second,
		Logger:       logging.NewNop(),
		MaxBodyBytes: 30,
	})
	_, err := client.Get(context.Background(), srv.URL+"/week1.csv")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrBodyTooLarge), "expected ErrBodyTooLarge, got %v", err)
	assert.True(t, crerr.Is(err, source.ErrUnavailable), "expected ErrUnavailable, got %v", err)

	client.maxBody = 64
	body, err := client.Get(context.Background(), srv.URL+"/week1.csv")
	require.NoError(t, err)
	assert.Equal(t, "Player,Pos,RushYds\nJosh Jacobs,RB,152\n", string(body))
}
