package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mediagrid/pkg/cache"
	"github.com/matzehuels/mediagrid/pkg/config"
	errs "github.com/matzehuels/mediagrid/pkg/errors"
	"github.com/matzehuels/mediagrid/pkg/observability"
	"github.com/matzehuels/mediagrid/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, config.Default(), logger)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return v
}

const threeItems = `[
	{"id":"a","width":1600,"height":900},
	{"id":"b","width":1600,"height":900},
	{"id":"c","width":900,"height":1600}
]`

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[HealthResponse](t, rec)
	if resp.Status != "ok" || resp.Build.Version == "" {
		t.Errorf("health = %+v", resp)
	}
	if _, err := uuid.Parse(rec.Header().Get(HeaderRequestID)); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", rec.Header().Get(HeaderRequestID))
	}
}

func TestRequestIDReused(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	// Malformed ids are replaced
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed request id should be replaced, got %q", got)
	}
}

func TestPresets(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v1/presets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[PresetsResponse](t, rec)
	if resp.Default != config.PresetDefault {
		t.Errorf("default = %q", resp.Default)
	}
	if _, ok := resp.Presets[config.PresetCompact]; !ok {
		t.Errorf("presets = %v, missing compact", resp.Presets)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/layout", `{"items":`+threeItems+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[LayoutResponse](t, rec)
	if resp.Layout == nil {
		t.Fatal("layout is null")
	}
	if resp.Cached {
		t.Error("first request should not be cached")
	}
	if len(resp.Layout.Tiles) != 3 || resp.Layout.Tiles[2].Element.ID != "c" {
		t.Errorf("tiles = %+v", resp.Layout.Tiles)
	}
	if resp.Layout.Width > 1000 {
		t.Errorf("width %d exceeds default max width", resp.Layout.Width)
	}
	if resp.RequestID != rec.Header().Get(HeaderRequestID) {
		t.Errorf("request_id %q != header %q", resp.RequestID, rec.Header().Get(HeaderRequestID))
	}

	rec = do(t, s, http.MethodPost, "/v1/layout", `{"items":`+threeItems+`}`)
	if resp := decode[LayoutResponse](t, rec); !resp.Cached {
		t.Error("second request should be served from cache")
	}
}

func TestLayoutPresetAndOverride(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/layout", `{"preset":"compact","constraints":{"gap":3},"items":`+threeItems+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[LayoutResponse](t, rec)
	if resp.Constraints.MaxWidth != 320 || resp.Constraints.Gap != 3 {
		t.Errorf("constraints = %+v, want compact with gap 3", resp.Constraints)
	}
	if resp.Layout.Width > 320 {
		t.Errorf("width %d exceeds compact max width", resp.Layout.Width)
	}
}

func TestLayoutSingleItem(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/layout", `{"items":[{"id":"solo","width":10,"height":10}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["layout"]) != "null" {
		t.Errorf("layout = %s, want null", raw["layout"])
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errs.Code
	}{
		{"malformed", `{"items":`, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"unknown field", `{"colour":"red","items":[]}`, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"missing items", `{}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"duplicate ids", `{"items":[{"id":"a","width":1,"height":1},{"id":"a","width":1,"height":1}]}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"zero size", `{"items":[{"id":"a","width":0,"height":1},{"id":"b","width":1,"height":1}]}`, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"bad constraints", `{"constraints":{"max_width":-1},"items":` + threeItems + `}`, http.StatusBadRequest, errs.ErrCodeInvalidConstraints},
		{"bad preset name", `{"preset":"Nope!","items":` + threeItems + `}`, http.StatusBadRequest, errs.ErrCodeInvalidPreset},
		{"unknown preset", `{"preset":"nope","items":` + threeItems + `}`, http.StatusNotFound, errs.ErrCodePresetNotFound},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/layout", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			resp := decode[ErrorResponse](t, rec)
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", resp.Code, tt.code, resp.Error)
			}
		})
	}
}

func TestLayoutBodyTooLarge(t *testing.T) {
	body := `{"items":[` + strings.Repeat(`{"width":1,"height":1},`, maxBodyBytes/20) + `{"width":1,"height":1}]}`
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestNotFoundAndMethod(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/nothing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/v1/layout", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/layout status = %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.New(errs.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{errs.New(errs.ErrCodeInvalidConstraints, "x"), http.StatusBadRequest},
		{errs.New(errs.ErrCodePresetNotFound, "x"), http.StatusNotFound},
		{errs.New(errs.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errs.New(errs.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	h.statuses = append(h.statuses, status)
	h.mu.Unlock()
}

func TestHTTPHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodGet, "/missing", "")

	if len(h.statuses) != 2 || h.statuses[0] != http.StatusOK || h.statuses[1] != http.StatusNotFound {
		t.Errorf("statuses = %v, want [200 404]", h.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
