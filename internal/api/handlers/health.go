package handlers

import (
	"net/http"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

// Health reports ok while every cache still has a running reaper, and 503
// once any of them has been closed.
func Health(caches ...CacheSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reapers := make(map[string]string, len(caches))
		status, code := "ok", http.StatusOK
		for _, c := range caches {
			state := c.State()
			reapers[c.Name()] = state.String()
			if state == cache.ReaperStopped {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		writeJSON(w, code, map[string]any{
			"status":  status,
			"reapers": reapers,
		})
	}
}
