package app

import (
	"fmt"
	"net/http"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/aes-results/external/aes"
	"github.com/riskibarqy/aes-results/internal/config"
	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/interfaces/httpapi"
	"github.com/riskibarqy/aes-results/internal/observability"
	idgen "github.com/riskibarqy/aes-results/internal/platform/id"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
	"github.com/riskibarqy/aes-results/internal/platform/resilience"
	"github.com/riskibarqy/aes-results/internal/usecase"
)

// NewHTTPServer wires the upstream client, services and router. The returned
// cleanup releases the team page worker pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		metrics.InitCircuit("aes")
	}

	client, err := aes.NewClient(aes.ClientConfig{
		Transport:    cfg.AESTransport,
		Timeout:      cfg.AESTimeout,
		MaxBodyBytes: cfg.AESMaxBodyBytes,
		Logger:       logger.Named("aes"),
		Observer:     metrics,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AESCircuitEnabled,
			FailureThreshold: cfg.AESCircuitFailureCount,
			OpenTimeout:      cfg.AESCircuitOpenTimeout,
			HalfOpenMaxReq:   1,
		},
		OnCircuitStateChange: circuitStateLogger(logger, metrics),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build aes client: %w", err)
	}

	var pool *ants.Pool
	if cfg.PageWorkerPoolSize > 0 {
		pool, err = ants.NewPool(cfg.PageWorkerPoolSize, ants.WithNonblocking(true))
		if err != nil {
			return nil, nil, fmt.Errorf("build page worker pool: %w", err)
		}
	}
	cleanup := func() {
		if pool != nil {
			pool.Release()
		}
	}

	endpoints := results.NewEndpoints(cfg.AESResultsBaseURL, cfg.AESEventsBaseURL)
	window := usecase.EventWindow{DaysBack: cfg.EventsDaysBack, DaysAhead: cfg.EventsDaysAhead}

	eventSvc := usecase.NewEventService(client, endpoints, window, logger)
	teamSvc := usecase.NewTeamService(client, endpoints, logger)
	scheduleSvc := usecase.NewScheduleService(client, endpoints, cfg.PoolSheetConcurrency, logger)
	pageSvc := usecase.NewTeamPageService(eventSvc, teamSvc, scheduleSvc, pool, logger)

	handler := httpapi.NewHandler(eventSvc, teamSvc, scheduleSvc, pageSvc, logger.Named("httpapi"))

	routerCfg := httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		IDGenerator:        idgen.NewRandomGenerator(),
	}
	if metrics != nil {
		routerCfg.Metrics = metrics.Handler()
		routerCfg.Observer = metrics
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func circuitStateLogger(logger *logging.Logger, metrics *observability.Metrics) resilience.StateChangeFunc {
	return func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		metrics.CircuitStateChanged(name, from, to)
	}
}
