package httpapi

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/xid"

	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

const headerTraceID = "X-Trace-Id"

// recovered logs a handler panic and answers 500.
func recovered(logger *slog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.ErrorContext(r.Context(), "handler panic", "panic", rvr, "stack", string(debug.Stack()))
					writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// logged assigns a trace ID to the request (reusing an inbound one) and
// logs the request once it completes.
func logged(logger *slog.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			tid := r.Header.Get(headerTraceID)
			if tid == "" {
				tid = xid.New().String()
			}
			ctx := logging.WithTraceID(r.Context(), tid)
			w.Header().Set(headerTraceID, tid)

			next.ServeHTTP(w, r.WithContext(ctx))

			logger.DebugContext(ctx, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"from", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
