package errorreporting

import (
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"

	"github.com/damiaoterto/mussurana-cache/internal/cache"
)

// capturingHub returns a hub whose events end up in the returned slice
// instead of on the network.
func capturingHub(t *testing.T) (*sentry.Hub, func() []*sentry.Event) {
	t.Helper()

	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("sentry client: %v", err)
	}
	return sentry.NewHub(client, sentry.NewScope()), func() []*sentry.Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]*sentry.Event(nil), events...)
	}
}

func TestInitWithoutDSNIsNoop(t *testing.T) {
	if err := Init(Options{}); err != nil {
		t.Fatalf("expected no error without DSN, got %v", err)
	}
}

func TestInitRejectsMalformedDSN(t *testing.T) {
	if err := Init(Options{DSN: "not-a-url"}); err == nil {
		t.Fatal("expected malformed DSN to be rejected")
	}
}

func TestValidateDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		wantErr bool
	}{
		{"https://key@sentry.io/123", false},
		{"http://key@localhost/1", false},
		{"ftp://key@sentry.io/123", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			err := ValidateDSN(tt.dsn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDSN(%q) error = %v, wantErr %v", tt.dsn, err, tt.wantErr)
			}
		})
	}
}

func TestReporterCapturesInconsistency(t *testing.T) {
	hub, events := capturingHub(t)
	r := NewReporter(hub, "sessions")

	r.Rejected("secret-key", 4096)
	r.Inconsistency(errors.New("drift"))
	r.Inconsistency(nil)

	got := events()
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	ev := got[0]
	if ev.Tags["cache"] != "sessions" {
		t.Errorf("cache tag = %q, want sessions", ev.Tags["cache"])
	}
	if ev.Level != sentry.LevelWarning {
		t.Errorf("level = %q, want warning", ev.Level)
	}
	if len(ev.Breadcrumbs) != 1 {
		t.Fatalf("expected the rejection breadcrumb, got %d", len(ev.Breadcrumbs))
	}
	if msg := ev.Breadcrumbs[0].Message; msg != "entry of 4096 bytes rejected" {
		t.Errorf("breadcrumb = %q", msg)
	}
}

func TestReporterIgnoresOtherEvents(t *testing.T) {
	hub, events := capturingHub(t)
	var obs cache.Observer = NewReporter(hub, "sessions")

	obs.Removed("k", cache.ReasonEvicted)
	obs.SweepFinished(3, 0)

	if n := len(events()); n != 0 {
		t.Fatalf("expected no events, got %d", n)
	}
}
