package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                 string
	ServiceName            string
	ServiceVersion         string
	HTTPAddr               string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	LogLevel               logging.Level
	CORSAllowedOrigins     []string
	AESResultsBaseURL      string
	AESEventsBaseURL       string
	AESTransport           string
	AESTimeout             time.Duration
	AESMaxBodyBytes        int64
	AESCircuitEnabled      bool
	AESCircuitFailureCount int
	AESCircuitOpenTimeout  time.Duration
	PoolSheetConcurrency   int
	EventsDaysBack         int
	EventsDaysAhead        int
	PageWorkerPoolSize     int
	MetricsEnabled         bool
	PprofEnabled           bool
	PprofAddr              string
	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "aes-results")),
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:           strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080")),
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		AESResultsBaseURL:  strings.TrimSpace(getEnv("AES_RESULTS_BASE_URL", "https://results.advancedeventsystems.com")),
		AESEventsBaseURL:   strings.TrimSpace(getEnv("AES_EVENTS_BASE_URL", "https://advancedeventsystems.com")),
	}

	if cfg.ReadTimeout, err = time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	if cfg.WriteTimeout, err = time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s")); err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	if err := loadAESConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadPageConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservabilityConfig(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadAESConfig(cfg *Config) error {
	cfg.AESTransport = strings.ToLower(strings.TrimSpace(getEnv("AES_TRANSPORT", TransportNetHTTP)))
	switch cfg.AESTransport {
	case TransportNetHTTP, TransportFastHTTP:
	default:
		return fmt.Errorf("invalid AES_TRANSPORT %q: valid values are %s, %s", cfg.AESTransport, TransportNetHTTP, TransportFastHTTP)
	}

	var err error
	if cfg.AESTimeout, err = time.ParseDuration(getEnv("AES_TIMEOUT", "0s")); err != nil {
		return fmt.Errorf("parse AES_TIMEOUT: %w", err)
	}
	if cfg.AESTimeout < 0 {
		return fmt.Errorf("AES_TIMEOUT must be >= 0")
	}

	maxBodyBytes, err := getEnvAsInt("AES_MAX_BODY_BYTES", 6<<20)
	if err != nil {
		return fmt.Errorf("parse AES_MAX_BODY_BYTES: %w", err)
	}
	if maxBodyBytes <= 0 {
		return fmt.Errorf("AES_MAX_BODY_BYTES must be > 0")
	}
	cfg.AESMaxBodyBytes = int64(maxBodyBytes)

	if cfg.AESCircuitEnabled, err = strconv.ParseBool(getEnv("AES_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse AES_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.AESCircuitFailureCount, err = getEnvAsInt("AES_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return fmt.Errorf("parse AES_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.AESCircuitFailureCount < 1 {
		return fmt.Errorf("AES_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.AESCircuitOpenTimeout, err = time.ParseDuration(getEnv("AES_CIRCUIT_OPEN_TIMEOUT", "30s")); err != nil {
		return fmt.Errorf("parse AES_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.AESCircuitOpenTimeout <= 0 {
		return fmt.Errorf("AES_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	if cfg.PoolSheetConcurrency, err = getEnvAsInt("AES_POOLSHEET_CONCURRENCY", 4); err != nil {
		return fmt.Errorf("parse AES_POOLSHEET_CONCURRENCY: %w", err)
	}
	if cfg.PoolSheetConcurrency < 1 {
		return fmt.Errorf("AES_POOLSHEET_CONCURRENCY must be >= 1")
	}

	return nil
}

func loadPageConfig(cfg *Config) error {
	var err error
	if cfg.EventsDaysBack, err = getEnvAsInt("EVENTS_DAYS_BACK", 30); err != nil {
		return fmt.Errorf("parse EVENTS_DAYS_BACK: %w", err)
	}
	if cfg.EventsDaysBack < 0 || cfg.EventsDaysBack > maxWindowDays {
		return fmt.Errorf("EVENTS_DAYS_BACK must be between 0 and %d", maxWindowDays)
	}
	if cfg.EventsDaysAhead, err = getEnvAsInt("EVENTS_DAYS_AHEAD", 30); err != nil {
		return fmt.Errorf("parse EVENTS_DAYS_AHEAD: %w", err)
	}
	if cfg.EventsDaysAhead < 0 || cfg.EventsDaysAhead > maxWindowDays {
		return fmt.Errorf("EVENTS_DAYS_AHEAD must be between 0 and %d", maxWindowDays)
	}

	if cfg.PageWorkerPoolSize, err = getEnvAsInt("PAGE_WORKER_POOL_SIZE", 64); err != nil {
		return fmt.Errorf("parse PAGE_WORKER_POOL_SIZE: %w", err)
	}
	if cfg.PageWorkerPoolSize < 0 {
		return fmt.Errorf("PAGE_WORKER_POOL_SIZE must be >= 0")
	}
	return nil
}

func loadObservabilityConfig(cfg *Config) error {
	var err error
	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"

	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"

	maxWindowDays = 365
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
