package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"

	"github.com/damiaoterto/mussurana-cache/internal/apierr"
	"github.com/damiaoterto/mussurana-cache/internal/logger"
)

// RecoverWithSentry recovers from panics in admin handlers, logs them and
// reports them to Sentry when a client is configured.
func RecoverWithSentry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			logger.Error("Panic recovered",
				"error", rec,
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)

			if hub := sentry.CurrentHub(); hub.Client() != nil {
				hub = hub.Clone()
				hub.Scope().SetRequest(r)
				hub.Scope().SetLevel(sentry.LevelError)
				hub.Scope().SetTag("path", r.URL.Path)

				if err, ok := rec.(error); ok {
					hub.CaptureException(err)
				} else {
					hub.CaptureException(fmt.Errorf("panic: %v", rec))
				}
			}

			apierr.WriteError(w, apierr.SystemInternal(""))
		}()

		next.ServeHTTP(w, r)
	})
}
