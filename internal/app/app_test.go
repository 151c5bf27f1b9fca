package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-projections/internal/config"
	"github.com/riskibarqy/fantasy-projections/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:              config.EnvDev,
		HTTPAddr:            ":0",
		ReadTimeout:         time.Second,
		WriteTimeout:        time.Second,
		CORSAllowedOrigins:  []string{"*"},
		StorageDriver:       config.StorageMemory,
		CacheEnabled:        true,
		CacheTTL:            time.Minute,
		NFLVerse:            config.SourceConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		FFDP:                config.SourceConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		IngestFirstSeason:   1999,
		IngestMaxWeek:       18,
		IngestSeasonWorkers: 2,
		SchedulerCron:       "0 8 * * TUE",
		SchedulerTimezone:   "UTC",
		SchedulerRunTimeout: time.Minute,
		SchedulerSource:     "nflverse",
	}
}

func TestNew_MemoryStorage(t *testing.T) {
	app, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if app.Scheduler != nil {
		t.Fatalf("expected no scheduler when disabled")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/scoring-configs", nil)
	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNew_SchedulerEnabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.SchedulerEnabled = true

	app, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if app.Scheduler == nil {
		t.Fatalf("expected scheduler when enabled")
	}
	if len(app.Scheduler.Jobs()) != 1 {
		t.Fatalf("unexpected scheduled jobs: %+v", app.Scheduler.Jobs())
	}

	app.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestCircuitConfig(t *testing.T) {
	got := circuitConfig(config.SourceConfig{
		CircuitEnabled:        true,
		CircuitFailureCount:   4,
		CircuitOpenTimeout:    time.Minute,
		CircuitHalfOpenMaxReq: 2,
	})
	if !got.Enabled || got.FailureThreshold != 4 || got.OpenTimeout != time.Minute || got.HalfOpenMaxReq != 2 {
		t.Fatalf("unexpected circuit config: %+v", got)
	}
}
