package apierr

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
)

func TestNew(t *testing.T) {
	err := New(ErrSystemInternal, "boom", http.StatusInternalServerError)
	if err.Code != ErrSystemInternal {
		t.Errorf("expected code %s, got %s", ErrSystemInternal, err.Code)
	}
	if err.Message != "boom" {
		t.Errorf("expected message 'boom', got '%s'", err.Message)
	}
	if err.Status() != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, err.Status())
	}
}

func TestErrorInterface(t *testing.T) {
	err := RouteNotFound()
	expected := "ROUTE_NOT_FOUND: Route not found"
	if err.Error() != expected {
		t.Errorf("expected error string %s, got %s", expected, err.Error())
	}
}

func TestSystemInternalDefaultMessage(t *testing.T) {
	if got := SystemInternal("").Message; got != "Internal server error" {
		t.Errorf("expected default message, got '%s'", got)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, CacheNotFound("sessions"))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Code != ErrCacheNotFound {
		t.Errorf("expected code %s, got %s", ErrCacheNotFound, resp.Error.Code)
	}
	if resp.Error.Details["name"] != "sessions" {
		t.Errorf("expected name detail 'sessions', got %v", resp.Error.Details["name"])
	}
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name    string
		handler http.Handler
		status  int
		code    ErrorCode
	}{
		{"not found", NotFoundHandler(), http.StatusNotFound, ErrRouteNotFound},
		{"method not allowed", MethodNotAllowedHandler(), http.StatusMethodNotAllowed, ErrRouteMethodNotAllow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, resp.Error.Code)
			}
		})
	}
}
