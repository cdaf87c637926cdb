package aes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/platform/resilience"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveFetch(_ string, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.outcomes) == 0 {
		return ""
	}
	return o.outcomes[len(o.outcomes)-1]
}

func newTestClient(t *testing.T, transport string, observer FetchObserver, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	client, err := NewClient(ClientConfig{
		Transport:      transport,
		Timeout:        2 * time.Second,
		MaxBodyBytes:   1 << 10,
		Observer:       observer,
		CircuitBreaker: breaker,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeFixture(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	if err := jsoniter.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode fixture: %v", err)
	}
}

func TestClientFetchJSON_Sentinels(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/ok", func(w http.ResponseWriter, _ *http.Request) {
		writeFixture(t, w, map[string]any{"Key": "ok", "Name": "Winter Classic"})
	})
	mux.HandleFunc("/api/event/empty-list", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	mux.HandleFunc("/api/event/no-body", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/event/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	mux.HandleFunc("/api/event/broken", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})
	mux.HandleFunc("/api/event/huge", func(w http.ResponseWriter, _ *http.Request) {
		payload := make([]string, 0, 200)
		for i := 0; i < 200; i++ {
			payload = append(payload, "padding-padding")
		}
		writeFixture(t, w, payload)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tests := []struct {
		path    string
		kind    results.Kind
		outcome string
	}{
		{"/api/event/ok", results.KindDocument, OutcomeDocument},
		{"/api/event/empty-list", results.KindEmptySequence, OutcomeEmptySequence},
		{"/api/event/no-body", results.KindEmptySequence, OutcomeEmptySequence},
		{"/api/event/missing", results.KindEmptyMapping, OutcomeStatus},
		{"/api/event/broken", results.KindEmptyMapping, OutcomeInvalidJSON},
		{"/api/event/huge", results.KindEmptyMapping, OutcomeBodyTooLarge},
	}

	for _, transport := range []string{TransportNetHTTP, TransportFastHTTP} {
		observer := &recordingObserver{}
		client := newTestClient(t, transport, observer, resilience.CircuitBreakerConfig{})

		for _, tc := range tests {
			payload := client.FetchJSON(context.Background(), server.URL+tc.path)
			if payload.Kind() != tc.kind {
				t.Fatalf("%s %s: kind=%s want %s", transport, tc.path, payload.Kind(), tc.kind)
			}
			if got := observer.last(); got != tc.outcome {
				t.Fatalf("%s %s: outcome=%s want %s", transport, tc.path, got, tc.outcome)
			}
		}

		var event results.Event
		if err := client.FetchJSON(context.Background(), server.URL+"/api/event/ok").Decode(&event); err != nil {
			t.Fatalf("%s: decode event: %v", transport, err)
		}
		if results.StringValue(event.Name) != "Winter Classic" {
			t.Fatalf("%s: unexpected event name %v", transport, event.Name)
		}
	}
}

func TestClientFetchJSON_TransportFailureIsEmptyMapping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	observer := &recordingObserver{}
	client := newTestClient(t, TransportNetHTTP, observer, resilience.CircuitBreakerConfig{})

	payload := client.FetchJSON(context.Background(), addr+"/api/event/x")
	if payload.Kind() != results.KindEmptyMapping {
		t.Fatalf("expected empty mapping, got %s", payload.Kind())
	}
	if observer.last() != OutcomeTransport {
		t.Fatalf("expected transport outcome, got %s", observer.last())
	}
}

func TestClientFetchJSON_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	observer := &recordingObserver{}
	client := newTestClient(t, TransportNetHTTP, observer, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 3; i++ {
		payload := client.FetchJSON(context.Background(), server.URL+"/api/event/x")
		if payload.Kind() != results.KindEmptyMapping {
			t.Fatalf("call %d: expected empty mapping, got %s", i, payload.Kind())
		}
	}

	if got := hits.Load(); got != 2 {
		t.Fatalf("expected breaker to stop upstream calls after 2 failures, got %d hits", got)
	}
	if observer.last() != OutcomeCircuitOpen {
		t.Fatalf("expected circuit open outcome, got %s", observer.last())
	}
}

func TestClientFetchJSON_ClientErrorsDoNotTripCircuit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "missing", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, TransportNetHTTP, nil, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		_ = client.FetchJSON(context.Background(), server.URL+"/api/event/x")
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected every 404 to reach upstream, got %d hits", got)
	}
}

// blockingServer answers every request with an event document once release
// is called, and reports each arrival on the returned channel.
func blockingServer(t *testing.T) (server *httptest.Server, arrived <-chan struct{}, hits *atomic.Int32, release func()) {
	t.Helper()

	gate := make(chan struct{})
	arrivals := make(chan struct{}, 8)
	var once sync.Once
	var count atomic.Int32

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		select {
		case arrivals <- struct{}{}:
		default:
		}
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
		writeFixture(t, w, map[string]any{"Key": "y", "Name": "Winter Classic"})
	}))
	release = func() { once.Do(func() { close(gate) }) }
	t.Cleanup(server.Close)
	t.Cleanup(release)

	return server, arrivals, &count, release
}

func waitArrival(t *testing.T, arrived <-chan struct{}) {
	t.Helper()

	select {
	case <-arrived:
	case <-time.After(2 * time.Second):
		t.Fatalf("upstream request never arrived")
	}
}

func TestClientFetchJSON_CanceledCallersDoNotTripCircuit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		writeFixture(t, w, map[string]any{"Key": "y", "Name": "Winter Classic"})
	}))
	t.Cleanup(server.Close)

	observer := &recordingObserver{}
	client := newTestClient(t, TransportNetHTTP, observer, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		payload := client.FetchJSON(canceled, server.URL+"/api/event/y")
		if payload.Kind() != results.KindEmptyMapping {
			t.Fatalf("call %d: expected empty mapping, got %s", i, payload.Kind())
		}
		if observer.last() != OutcomeCanceled {
			t.Fatalf("call %d: expected canceled outcome, got %s", i, observer.last())
		}
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected breaker to stay closed, got %s", state)
	}

	var event results.Event
	if err := client.FetchJSON(context.Background(), server.URL+"/api/event/y").Decode(&event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if results.StringValue(event.Name) != "Winter Classic" {
		t.Fatalf("expected live fetch after canceled callers, got %+v", event)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected only the live call to reach upstream, got %d hits", got)
	}
}

func TestClientFetch_CanceledRequestReleasesBreaker(t *testing.T) {
	t.Parallel()

	server, _, _, _ := blockingServer(t)

	for _, transport := range []string{TransportNetHTTP, TransportFastHTTP} {
		observer := &recordingObserver{}
		client := newTestClient(t, transport, observer, resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result := client.fetch(ctx, server.URL+"/api/event/y", "event")
		if result.outcome != OutcomeCanceled || result.payload.Kind() != results.KindEmptyMapping {
			t.Fatalf("%s: unexpected result %+v", transport, result)
		}
		if state := client.breaker.State(); state != resilience.CircuitStateClosed {
			t.Fatalf("%s: expected breaker to stay closed, got %s", transport, state)
		}
	}
}

func TestClientFetchJSON_SharedFetchSurvivesFirstCallerCancel(t *testing.T) {
	t.Parallel()

	server, arrived, hits, release := blockingServer(t)
	client := newTestClient(t, TransportNetHTTP, nil, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	url := server.URL + "/api/event/y"

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan results.Payload, 1)
	go func() { first <- client.FetchJSON(firstCtx, url) }()
	waitArrival(t, arrived)

	second := make(chan results.Payload, 1)
	go func() { second <- client.FetchJSON(context.Background(), url) }()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case payload := <-first:
		if payload.Kind() != results.KindEmptyMapping {
			t.Fatalf("expected canceled caller to get empty mapping, got %s", payload.Kind())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("canceled caller was not released")
	}

	release()
	select {
	case payload := <-second:
		if payload.Kind() != results.KindDocument {
			t.Fatalf("expected live caller to get the document, got %s", payload.Kind())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("live caller never returned")
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one shared upstream request, got %d", got)
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected breaker to stay closed, got %s", state)
	}
}

func TestFastHTTPTransport_CancelDuringRequest(t *testing.T) {
	t.Parallel()

	server, arrived, _, _ := blockingServer(t)
	transport, err := NewTransport(TransportFastHTTP, nil, 0, 0)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := transport.Get(ctx, server.URL+"/api/event/y")
		errs <- err
	}()
	waitArrival(t, arrived)
	cancel()

	select {
	case err := <-errs:
		if !isCanceled(err) {
			t.Fatalf("expected canceled error, got %v", err)
		}
		if isAESCircuitFailure(err) {
			t.Fatalf("canceled request must not count against the breaker")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("fasthttp request ignored cancellation")
	}
}

func TestIsAESCircuitFailure_DeadlineCounts(t *testing.T) {
	t.Parallel()

	err := crerr.Mark(crerr.Wrap(context.DeadlineExceeded, "send request"), errAESTransient)
	if !isAESCircuitFailure(err) {
		t.Fatalf("expected expired fetch deadline to count as a failure")
	}
}

func TestNewTransport_UnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := NewTransport("carrier-pigeon", nil, 0, 0); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://advancedeventsystems.com/odata/events/scheduler?$filter=(EndDate+gt+x)")
	if got != "https://advancedeventsystems.com/odata/events/scheduler" {
		t.Fatalf("unexpected redacted url %q", got)
	}
}
