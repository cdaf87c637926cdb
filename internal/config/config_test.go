package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("AES_TRANSPORT", "")
	t.Setenv("AES_TIMEOUT", "")
	t.Setenv("EVENTS_DAYS_BACK", "")
	t.Setenv("EVENTS_DAYS_AHEAD", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AESTransport != TransportNetHTTP {
		t.Fatalf("expected nethttp transport, got %q", cfg.AESTransport)
	}
	if cfg.AESTimeout != 0 {
		t.Fatalf("expected transport default timeout, got %s", cfg.AESTimeout)
	}
	if cfg.EventsDaysBack != 30 || cfg.EventsDaysAhead != 30 {
		t.Fatalf("unexpected event window %d/%d", cfg.EventsDaysBack, cfg.EventsDaysAhead)
	}
	if cfg.AESMaxBodyBytes != 6<<20 {
		t.Fatalf("unexpected max body bytes %d", cfg.AESMaxBodyBytes)
	}
	if !cfg.AESCircuitEnabled || cfg.AESCircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit defaults enabled=%v count=%d", cfg.AESCircuitEnabled, cfg.AESCircuitFailureCount)
	}
}

func TestLoad_AESOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("AES_TRANSPORT", "FastHTTP")
	t.Setenv("AES_TIMEOUT", "4s")
	t.Setenv("AES_RESULTS_BASE_URL", "http://results.local")
	t.Setenv("AES_POOLSHEET_CONCURRENCY", "8")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AESTransport != TransportFastHTTP {
		t.Fatalf("expected fasthttp transport, got %q", cfg.AESTransport)
	}
	if cfg.AESTimeout != 4*time.Second {
		t.Fatalf("expected 4s timeout, got %s", cfg.AESTimeout)
	}
	if cfg.AESResultsBaseURL != "http://results.local" || cfg.PoolSheetConcurrency != 8 {
		t.Fatalf("unexpected aes config %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_RejectsUnknownTransport(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("AES_TRANSPORT", "grpc")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown AES_TRANSPORT")
	}
}

func TestLoad_RejectsWideEventWindow(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("EVENTS_DAYS_AHEAD", "400")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for EVENTS_DAYS_AHEAD above limit")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}
