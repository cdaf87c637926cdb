package aes

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"

	defaultMaxBodyBytes int64 = 6 << 20
)

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs a single GET. It never retries.
type Transport interface {
	Get(ctx context.Context, url string) (Response, error)
}

// NewTransport picks the transport named by kind. A zero timeout keeps the
// transport default.
func NewTransport(kind string, httpClient *http.Client, timeout time.Duration, maxBodyBytes int64) (Transport, error) {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", TransportNetHTTP:
		if httpClient == nil {
			httpClient = &http.Client{
				Timeout:   timeout,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			}
		}
		return &netHTTPTransport{client: httpClient, maxBodyBytes: maxBodyBytes}, nil
	case TransportFastHTTP:
		return &fastHTTPTransport{
			client: &fasthttp.Client{
				Name:                "aes-results",
				MaxResponseBodySize: int(maxBodyBytes),
			},
			timeout: timeout,
		}, nil
	default:
		return nil, crerr.Wrapf(errUnknownTransport, "transport=%q", kind)
	}
}

type netHTTPTransport struct {
	client       *http.Client
	maxBodyBytes int64
}

func (t *netHTTPTransport) Get(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Response{}, crerr.Mark(crerr.Wrap(err, "send request"), errAESTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, t.maxBodyBytes+1)); err != nil {
		return Response{}, crerr.Mark(crerr.Wrap(err, "read response body"), errAESTransient)
	}
	if int64(buf.Len()) > t.maxBodyBytes {
		return Response{}, crerr.Wrapf(errAESBodyTooLarge, "limit=%d", t.maxBodyBytes)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Body:       append([]byte(nil), buf.B...),
	}, nil
}

type fastHTTPTransport struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func (t *fastHTTPTransport) Get(ctx context.Context, url string) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, crerr.Mark(crerr.Wrap(err, "send request"), errAESTransient)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	release := func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	// fasthttp has no context support, so the call races ctx.Done(). On
	// cancellation req and resp are released once the call returns.
	done := make(chan error, 1)
	go func() {
		if deadline, ok := t.deadline(ctx); ok {
			done <- t.client.DoDeadline(req, resp, deadline)
			return
		}
		done <- t.client.Do(req, resp)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		go func() {
			<-done
			release()
		}()
		return Response{}, crerr.Mark(crerr.Wrap(ctx.Err(), "send request"), errAESTransient)
	}
	defer release()

	if err != nil {
		if crerr.Is(err, fasthttp.ErrBodyTooLarge) {
			return Response{}, crerr.Wrap(errAESBodyTooLarge, err.Error())
		}
		return Response{}, crerr.Mark(crerr.Wrap(err, "send request"), errAESTransient)
	}

	return Response{
		StatusCode: resp.StatusCode(),
		Body:       append([]byte(nil), resp.Body()...),
	}, nil
}

// deadline is the earlier of the context deadline and the configured timeout.
func (t *fastHTTPTransport) deadline(ctx context.Context) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if t.timeout > 0 {
		byTimeout := time.Now().Add(t.timeout)
		if !ok || byTimeout.Before(deadline) {
			return byTimeout, true
		}
	}
	return deadline, ok
}
