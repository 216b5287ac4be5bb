package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dividendlab/divcast/pkg/config"
	"github.com/dividendlab/divcast/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: "development",
		HTTP: config.HTTPConfig{
			Timeout:    10 * time.Second,
			MaxRetries: 3,
			RetryDelay: time.Millisecond,
		},
		LogLevel:  "error", // Reduce log noise
		LogFormat: "json",
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	client := New(cfg, logger.Nop())
	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.httpClient == nil {
		t.Error("Expected http.Client to be initialized")
	}

	if client.logger == nil {
		t.Error("Expected logger to be set")
	}

	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Expected timeout=10s, got %v", client.httpClient.Timeout)
	}

	if client.retryConfig.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries=3, got %d", client.retryConfig.MaxRetries)
	}

	if !client.retryConfig.Enabled {
		t.Error("Expected retry to be enabled")
	}
}

func TestWithRetry(t *testing.T) {
	client := New(testConfig(), logger.Nop())

	client = client.WithRetry(5, 100*time.Millisecond)

	if client.retryConfig.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries=5, got %d", client.retryConfig.MaxRetries)
	}

	if client.retryConfig.InitialDelay != 100*time.Millisecond {
		t.Errorf("Expected InitialDelay=100ms, got %v", client.retryConfig.InitialDelay)
	}
}

func TestDisableRetry(t *testing.T) {
	client := New(testConfig(), logger.Nop()).DisableRetry()

	if client.retryConfig.Enabled {
		t.Error("Expected retry to be disabled")
	}
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := New(testConfig(), logger.Nop())

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testConfig(), logger.Nop()).WithRetry(3, time.Millisecond)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 after retries, got %d", resp.StatusCode)
	}

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
}

func TestGetSendsUserAgent(t *testing.T) {
	const ua = "divcast-test/1.0"

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(testConfig(), logger.Nop()).WithUserAgent(ua)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	resp.Body.Close()

	if gotUA != ua {
		t.Errorf("Expected User-Agent %q, got %q", ua, gotUA)
	}
}

func TestWithPacing(t *testing.T) {
	client := New(testConfig(), logger.Nop())

	if client.limiter != nil {
		t.Error("Expected no limiter by default")
	}

	client = client.WithPacing(time.Second)
	if client.limiter == nil {
		t.Error("Expected limiter to be set")
	}

	client = client.WithPacing(0)
	if client.limiter != nil {
		t.Error("Expected zero delay to disable pacing")
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		if got := IsRetryableStatus(tt.status); got != tt.want {
			t.Errorf("IsRetryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
