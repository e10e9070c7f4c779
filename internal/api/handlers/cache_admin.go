package handlers

import (
	"net/http"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/damiaoterto/mussurana-cache/internal/apierr"
	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

// CacheSource is the read-only view of a cache the handlers need.
type CacheSource interface {
	Name() string
	Stats() cache.Stats
	State() cache.ReaperState
}

// CacheAdminHandler serves read-only cache statistics. It never exposes
// cache contents or mutations.
type CacheAdminHandler struct {
	caches map[string]CacheSource
}

// NewCacheAdminHandler creates a handler over the given caches, keyed by name.
func NewCacheAdminHandler(caches ...CacheSource) *CacheAdminHandler {
	h := &CacheAdminHandler{caches: make(map[string]CacheSource, len(caches))}
	for _, c := range caches {
		h.caches[c.Name()] = c
	}
	return h
}

type statsResponse struct {
	Name        string  `json:"name"`
	Reaper      string  `json:"reaper"`
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	HitRatio    float64 `json:"hitRatio"`
	Evictions   uint64  `json:"evictions"`
	Expirations uint64  `json:"expirations"`
	Rejections  uint64  `json:"rejections"`
	Repairs     uint64  `json:"repairs"`
	Items       int     `json:"items"`
	MaxItems    int     `json:"maxItems"`
	MemoryUsed  int64   `json:"memoryUsed"`
	MaxMemory   int64   `json:"maxMemory"`
}

func toResponse(c CacheSource) statsResponse {
	s := c.Stats()
	return statsResponse{
		Name:        c.Name(),
		Reaper:      c.State().String(),
		Hits:        s.Hits,
		Misses:      s.Misses,
		HitRatio:    s.HitRatio(),
		Evictions:   s.Evictions,
		Expirations: s.Expirations,
		Rejections:  s.Rejections,
		Repairs:     s.Repairs,
		Items:       s.Items,
		MaxItems:    s.MaxItems,
		MemoryUsed:  s.MemoryUsed,
		MaxMemory:   s.MaxMemory,
	}
}

// ListCacheStats returns statistics for every cache, ordered by name.
// GET /cache/stats
func (h *CacheAdminHandler) ListCacheStats(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(h.caches))
	for name := range h.caches {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]statsResponse, 0, len(names))
	for _, name := range names {
		out = append(out, toResponse(h.caches[name]))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCacheStats returns statistics for one cache.
// GET /cache/{name}/stats
func (h *CacheAdminHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	c, ok := h.caches[name]
	if !ok {
		apierr.WriteError(w, apierr.CacheNotFound(name))
		return
	}
	writeJSON(w, http.StatusOK, toResponse(c))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
