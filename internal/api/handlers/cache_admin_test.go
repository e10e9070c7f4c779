package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

func TestListCacheStats(t *testing.T) {
	a := newTestCache(t, "b-sessions")
	b := newTestCache(t, "a-tokens")
	a.Set("k", []byte("value1"), cache.NoExpiration, 0)
	a.Get("k")
	a.Get("missing")

	h := NewCacheAdminHandler(a, b)
	rr := httptest.NewRecorder()
	h.ListCacheStats(rr, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var out []statsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].Name != "a-tokens" || out[1].Name != "b-sessions" {
		t.Fatalf("unexpected listing: %+v", out)
	}

	s := out[1]
	if s.Items != 1 || s.Hits != 1 || s.Misses != 1 || s.HitRatio != 0.5 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.MemoryUsed != cache.EntrySize("k", []byte("value1")) {
		t.Fatalf("memoryUsed = %d, want %d", s.MemoryUsed, cache.EntrySize("k", []byte("value1")))
	}
}

func TestGetCacheStats(t *testing.T) {
	c := newTestCache(t, "sessions")
	h := NewCacheAdminHandler(c)

	tests := []struct {
		name string
		code int
	}{
		{"sessions", http.StatusOK},
		{"nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cache/"+tt.name+"/stats", nil)
			req = mux.SetURLVars(req, map[string]string{"name": tt.name})
			rr := httptest.NewRecorder()

			h.GetCacheStats(rr, req)

			if rr.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("unexpected content type %q", ct)
			}
		})
	}
}
