package httpapi

import (
	"net/http"

	"github.com/riskibarqy/aes-results/internal/platform/id"
	"github.com/riskibarqy/aes-results/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the HTTP surface.
type RouterConfig struct {
	CORSAllowedOrigins []string
	Metrics            http.Handler
	Observer           RequestObserver
	IDGenerator        id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = id.NewRandomGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerPageRoutes(mux, handler)
	registerAPIRoutes(mux, handler)

	inner := RequestMetrics(cfg.Observer, mux, recoverPanic(logger, mux))
	return RequestTracing(RequestID(cfg.IDGenerator, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, inner))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
