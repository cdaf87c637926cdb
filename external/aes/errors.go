package aes

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

var (
	errAESTransient     = crerr.New("aes transient failure")
	errAESStatus        = crerr.New("aes unexpected status")
	errAESBodyTooLarge  = crerr.New("aes response body too large")
	errAESInvalidJSON   = crerr.New("aes response is not valid json")
	errUnknownTransport = crerr.New("unknown aes transport")
)

// isAESCircuitFailure reports whether err should count against the breaker.
// Client-side statuses other than 408 and 429 do not, and neither does a
// canceled request. An expired fetch deadline does: the upstream was too slow.
func isAESCircuitFailure(err error) bool {
	if err == nil || isCanceled(err) {
		return false
	}
	if crerr.Is(err, errAESTransient) {
		return true
	}
	var status *statusError
	if crerr.As(err, &status) {
		return isAESRetryableStatus(status.code)
	}
	return false
}

func isCanceled(err error) bool {
	return err != nil && crerr.Is(err, context.Canceled)
}

func isAESRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "aes status " + http.StatusText(e.code)
}

func newStatusError(code int) error {
	return crerr.Mark(&statusError{code: code}, errAESStatus)
}
