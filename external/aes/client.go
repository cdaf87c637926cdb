package aes

import (
	"context"
	"net/http"
	"net/url"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
	"github.com/riskibarqy/aes-results/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// Fetch outcomes reported to the FetchObserver.
const (
	OutcomeDocument      = "document"
	OutcomeEmptySequence = "empty_sequence"
	OutcomeTransport     = "transport_error"
	OutcomeStatus        = "status_error"
	OutcomeBodyTooLarge  = "body_too_large"
	OutcomeInvalidJSON   = "invalid_json"
	OutcomeCircuitOpen   = "circuit_open"
	OutcomeCanceled      = "canceled"
)

// emptyBodyLimit is the largest body treated as "no content".
const emptyBodyLimit = 2

// defaultFetchTimeout bounds a shared upstream call when no timeout is set.
const defaultFetchTimeout = time.Minute

// FetchObserver receives one call per upstream fetch attempt.
type FetchObserver interface {
	ObserveFetch(endpoint, outcome string, duration time.Duration)
}

type ClientConfig struct {
	HTTPClient           *http.Client
	Transport            string
	Timeout              time.Duration
	MaxBodyBytes         int64
	Logger               *logging.Logger
	Observer             FetchObserver
	CircuitBreaker       resilience.CircuitBreakerConfig
	OnCircuitStateChange resilience.StateChangeFunc
}

// Client fetches JSON documents from the results service. It implements
// results.Fetcher.
type Client struct {
	transport      Transport
	logger         *logging.Logger
	observer       FetchObserver
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	fetchTimeout   time.Duration
	flight         singleflight.Group
}

var _ results.Fetcher = (*Client)(nil)

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	transport, err := NewTransport(cfg.Transport, cfg.HTTPClient, cfg.Timeout, cfg.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	fetchTimeout := cfg.Timeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	return &Client{
		transport:      transport,
		fetchTimeout:   fetchTimeout,
		logger:         logger,
		observer:       cfg.Observer,
		breaker:        resilience.NewCircuitBreaker("aes", cfg.CircuitBreaker, cfg.OnCircuitStateChange),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}, nil
}

type fetchResult struct {
	payload results.Payload
	outcome string
}

// FetchJSON GETs rawURL once. Any failure collapses into an empty payload:
// transport errors, non-2xx statuses, invalid JSON and an open circuit give
// the empty mapping; a 2xx body of at most two bytes gives the empty sequence.
// Concurrent calls for the same URL share one upstream request. The shared
// request runs detached from every caller, bounded by the fetch timeout, so a
// caller that goes away gets the empty mapping without cutting off the others.
func (c *Client) FetchJSON(ctx context.Context, rawURL string) results.Payload {
	endpoint := results.EndpointLabel(rawURL)
	ctx, span := startSpan(ctx, "aes.Client.FetchJSON")
	defer span.End()
	span.SetAttributes(attribute.String("aes.endpoint", endpoint))

	started := time.Now()
	if err := ctx.Err(); err != nil {
		return c.abandon(ctx, span, endpoint, started, err)
	}

	shared := c.flight.DoChan(rawURL, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		return c.fetch(fetchCtx, rawURL, endpoint), nil
	})

	select {
	case res := <-shared:
		result, ok := res.Val.(fetchResult)
		if !ok {
			return results.EmptyMapping()
		}
		span.SetAttributes(
			attribute.String("aes.outcome", result.outcome),
			attribute.Bool("aes.shared", res.Shared),
		)
		return result.payload
	case <-ctx.Done():
		return c.abandon(ctx, span, endpoint, started, ctx.Err())
	}
}

// abandon answers a caller whose context ended before the upstream did. The
// breaker is left alone because the upstream has not failed.
func (c *Client) abandon(ctx context.Context, span trace.Span, endpoint string, started time.Time, cause error) results.Payload {
	c.logger.DebugContext(ctx, "aes fetch abandoned by caller", "endpoint", endpoint, "error", cause)
	span.SetAttributes(attribute.String("aes.outcome", OutcomeCanceled))
	c.observe(endpoint, OutcomeCanceled, started)
	return results.EmptyMapping()
}

func (c *Client) fetch(ctx context.Context, rawURL, endpoint string) fetchResult {
	started := time.Now()

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "aes circuit breaker rejected request",
				"endpoint", endpoint,
				"state", c.breaker.State(),
			)
			c.observe(endpoint, OutcomeCircuitOpen, started)
			return fetchResult{payload: results.EmptyMapping(), outcome: OutcomeCircuitOpen}
		}
	}

	result, err := c.execute(ctx, rawURL)
	if isCanceled(err) {
		if c.circuitEnabled {
			c.breaker.Release()
		}
		c.logger.DebugContext(ctx, "aes request canceled", "endpoint", endpoint, "error", err)
		c.observe(endpoint, OutcomeCanceled, started)
		return fetchResult{payload: results.EmptyMapping(), outcome: OutcomeCanceled}
	}
	if c.circuitEnabled {
		c.breaker.Record(!isAESCircuitFailure(err))
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "aes request failed",
			"endpoint", endpoint,
			"url", redactURL(rawURL),
			"outcome", result.outcome,
			"error", err,
		)
	}
	c.observe(endpoint, result.outcome, started)
	return result
}

func (c *Client) execute(ctx context.Context, rawURL string) (fetchResult, error) {
	resp, err := c.transport.Get(ctx, rawURL)
	if err != nil {
		outcome := OutcomeTransport
		if crerr.Is(err, errAESBodyTooLarge) {
			outcome = OutcomeBodyTooLarge
		}
		return fetchResult{payload: results.EmptyMapping(), outcome: outcome}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchResult{payload: results.EmptyMapping(), outcome: OutcomeStatus},
			crerr.Wrapf(newStatusError(resp.StatusCode), "status=%d", resp.StatusCode)
	}

	if len(resp.Body) <= emptyBodyLimit {
		c.logger.InfoContext(ctx, "aes url returned no content", "url", redactURL(rawURL))
		return fetchResult{payload: results.EmptySequence(), outcome: OutcomeEmptySequence}, nil
	}

	if !sonic.Valid(resp.Body) {
		return fetchResult{payload: results.EmptyMapping(), outcome: OutcomeInvalidJSON},
			crerr.Wrapf(errAESInvalidJSON, "bytes=%d", len(resp.Body))
	}

	return fetchResult{payload: results.NewDocument(resp.Body), outcome: OutcomeDocument}, nil
}

func (c *Client) observe(endpoint, outcome string, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveFetch(endpoint, outcome, time.Since(started))
}

// redactURL drops the query string.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	return parsed.String()
}
