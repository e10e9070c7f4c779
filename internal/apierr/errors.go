package apierr

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// ErrorCode represents a structured error code
type ErrorCode string

// Error code constants organized by category
const (
	// CACHE_ - Cache lookup errors
	ErrCacheNotFound ErrorCode = "CACHE_NOT_FOUND"

	// ROUTE_ - Routing errors
	ErrRouteNotFound       ErrorCode = "ROUTE_NOT_FOUND"
	ErrRouteMethodNotAllow ErrorCode = "ROUTE_METHOD_NOT_ALLOWED"

	// SYSTEM_ - System and server errors
	ErrSystemInternal ErrorCode = "SYSTEM_INTERNAL"
)

// Error represents a structured API error
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	status  int            // HTTP status code (not serialized)
}

// ErrorResponse is the top-level error response wrapper
type ErrorResponse struct {
	Error *Error `json:"error"`
}

// New creates a new API error
func New(code ErrorCode, message string, status int) *Error {
	return &Error{
		Code:    code,
		Message: message,
		status:  status,
	}
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Status returns the HTTP status code
func (e *Error) Status() int {
	return e.status
}

// WriteError writes a structured error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status())
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err})
}

// CacheNotFound reports an unknown cache name
func CacheNotFound(name string) *Error {
	return New(ErrCacheNotFound, "Unknown cache", http.StatusNotFound).
		WithDetails(map[string]any{"name": name})
}

// RouteNotFound creates a not found error for unrouted paths
func RouteNotFound() *Error {
	return New(ErrRouteNotFound, "Route not found", http.StatusNotFound)
}

// MethodNotAllowed creates an error for a known path hit with the wrong method
func MethodNotAllowed(method string) *Error {
	return New(ErrRouteMethodNotAllow, "Method not allowed", http.StatusMethodNotAllowed).
		WithDetails(map[string]any{"method": method})
}

// SystemInternal creates an internal server error
func SystemInternal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(ErrSystemInternal, message, http.StatusInternalServerError)
}

// NotFoundHandler answers unrouted requests with a structured 404
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, RouteNotFound())
	})
}

// MethodNotAllowedHandler answers wrong-method requests with a structured 405
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, MethodNotAllowed(r.Method))
	})
}
