package usecase

import (
	"context"

	"github.com/riskibarqy/aes-results/internal/domain/results"
	"github.com/riskibarqy/aes-results/internal/domain/schedule"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

// fetchAs GETs url and decodes the document into a fresh T. Empty payloads
// and documents of the wrong shape both yield the zero T and false.
func fetchAs[T any](ctx context.Context, fetcher results.Fetcher, logger *logging.Logger, url string) (T, bool) {
	var out T

	payload := fetcher.FetchJSON(ctx, url)
	if payload.Empty() {
		logger.DebugContext(ctx, "results payload is empty",
			"endpoint", results.EndpointLabel(url),
			"kind", payload.Kind().String(),
		)
		return out, false
	}

	if err := payload.Decode(&out); err != nil {
		logger.WarnContext(ctx, "results payload has unexpected shape",
			"endpoint", results.EndpointLabel(url),
			"error", err,
		)
		var zero T
		return zero, false
	}
	return out, true
}

// logUnparsedTime notes timestamps that FormatTime passes through unchanged.
func logUnparsedTime(ctx context.Context, logger *logging.Logger, field, raw string) {
	if raw == "" {
		return
	}
	if _, ok := schedule.ParseScheduled(raw); ok {
		return
	}
	logger.DebugContext(ctx, "unable to parse schedule time", "field", field, "value", raw)
}
