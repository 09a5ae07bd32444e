package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/seating"
	"github.com/matzehuels/seatplan/pkg/session"
)

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func newPreview(t *testing.T, path string) http.Handler {
	t.Helper()
	c := New(io.Discard, log.ErrorLevel)
	logger := newLogger(io.Discard, log.ErrorLevel)
	r := pipeline.NewRunner(nil, nil, nil, logger)
	return c.previewRouter(r, path, logger)
}

func writeSession(t *testing.T) string {
	t.Helper()
	p := plan.New(nil)
	p.Class, p.Room = "3A", "T117"
	p.Add(seating.NewEntity("Ann", nil), seating.NewEntity("Ben", nil))
	path := filepath.Join(t.TempDir(), "3a.json")
	if err := session.Save(path, p.Snapshot()); err != nil {
		t.Fatal(err)
	}
	return path
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPreviewIndex(t *testing.T) {
	h := newPreview(t, writeSession(t))

	rec := get(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Class 3A", "Room T117", "2/30 seats taken", `src="/plan.svg"`} {
		if !strings.Contains(body, want) {
			t.Errorf("GET / body missing %q", want)
		}
	}
}

func TestPreviewArtifacts(t *testing.T) {
	h := newPreview(t, writeSession(t))

	tests := []struct {
		target      string
		status      int
		contentType string
		contains    string
	}{
		{"/plan.svg", http.StatusOK, "image/svg+xml", `id="slot-0"`},
		{"/plan.json", http.StatusOK, "application/json", `"name": "Ann"`},
		{"/plan.csv", http.StatusOK, "text/csv; charset=utf-8", "slot,name,source"},
		{"/plan.pdf", http.StatusOK, "application/pdf", "%PDF-"},
		{"/plan.gif", http.StatusNotFound, "", ""},
		{"/healthz", http.StatusNoContent, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(h, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("GET %s status = %d, want %d", tt.target, rec.Code, tt.status)
			}
			if tt.contentType != "" {
				if got := rec.Header().Get("Content-Type"); got != tt.contentType {
					t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
				}
			}
			if tt.contains != "" && !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("GET %s body missing %q", tt.target, tt.contains)
			}
		})
	}
}

func TestPreviewMissingSession(t *testing.T) {
	h := newPreview(t, filepath.Join(t.TempDir(), "none.json"))

	if rec := get(h, "/plan.svg"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /plan.svg status = %d, want 404", rec.Code)
	}
}

func TestPreviewHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	h := newPreview(t, writeSession(t))
	get(h, "/healthz")
	get(h, "/plan.gif")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusNoContent || hooks.statuses[1] != http.StatusNotFound {
		t.Errorf("recorded statuses = %v, want [204 404]", hooks.statuses)
	}
}
