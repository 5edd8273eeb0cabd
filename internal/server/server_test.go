package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/internal/config"
	"github.com/chazu/casework/internal/studio"
	"github.com/chazu/casework/pkg/cabinet"
)

func newTestServer(t *testing.T, delay time.Duration) (*Server, *studio.Studio) {
	t.Helper()
	cfg := config.Default()
	cfg.Workspace.Delay.Duration = delay
	cfg.Render.MeshCells = 24
	logger := log.New(io.Discard)
	st := studio.New(cfg, logger)
	return New(st, logger), st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type cabinetBody struct {
	Model struct {
		ID          string       `json:"id"`
		Spec        cabinet.Spec `json:"spec"`
		Color       string       `json:"color"`
		Descriptors []struct {
			Role string `json:"role"`
		} `json:"descriptors"`
		Measurements []struct {
			Label string `json:"label"`
		} `json:"measurements"`
	} `json:"model"`
	Summary string `json:"summary"`
	Meshes  []struct {
		PartName string `json:"partName"`
		Color    string `json:"color"`
	} `json:"meshes"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := do(t, srv, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

func TestCreateFromPrompt(t *testing.T) {
	srv, st := newTestServer(t, 0)
	rec := do(t, srv, http.MethodPost, "/api/cabinets", `{"prompt": "cherry vanity 30 wide with 2 drawers and 1 door"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	body := decode[cabinetBody](t, rec)

	spec := body.Model.Spec
	if spec.Type != cabinet.TypeVanity || spec.Width != 30 || spec.Drawers != 2 || spec.Doors != 1 || spec.Material != "cherry" {
		t.Errorf("spec = %+v", spec)
	}
	if body.Model.ID != st.Current().ID().String() {
		t.Error("response should describe the installed model")
	}
	if len(body.Model.Measurements) != 3 {
		t.Errorf("measurements = %d", len(body.Model.Measurements))
	}
	if !strings.HasPrefix(body.Summary, "Vanity,") {
		t.Errorf("summary = %q", body.Summary)
	}
	if body.Meshes != nil {
		t.Error("meshes are only sent on request")
	}
}

func TestCreateFromSpecClamps(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	rec := do(t, srv, http.MethodPost, "/api/cabinets",
		`{"spec": {"width": 300, "height": 30, "depth": 24, "shelves": 1, "doors": 2, "drawers": 0, "material": "oak", "finish": "natural", "type": "base"}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	body := decode[cabinetBody](t, rec)
	if body.Model.Spec.Width != 120 {
		t.Errorf("width = %g, want 120", body.Model.Spec.Width)
	}
	// 5 carcass + 1 shelf + 2 leaves + 2 frames + 2 handles
	if n := len(body.Model.Descriptors); n != 12 {
		t.Errorf("descriptors = %d, want 12", n)
	}
}

func TestCreateFromSourceWithMeshes(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	rec := do(t, srv, http.MethodPost, "/api/cabinets", `{"source": "(cabinet :doors 1 :shelves 0)", "meshes": true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	body := decode[cabinetBody](t, rec)
	if len(body.Meshes) != len(body.Model.Descriptors) {
		t.Errorf("meshes = %d, descriptors = %d", len(body.Meshes), len(body.Model.Descriptors))
	}
	for _, m := range body.Meshes {
		if m.PartName == "handle-1" && m.Color != "#888888" {
			t.Errorf("handle color = %q", m.Color)
		}
	}
}

func TestCreateSourceErrors(t *testing.T) {
	srv, st := newTestServer(t, 0)
	rec := do(t, srv, http.MethodPost, "/api/cabinets", `{"source": "(cabinet :width"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	body := decode[errorResponse](t, rec)
	if len(body.Errors) == 0 {
		t.Error("expected eval errors in the response")
	}
	if st.Current() != nil {
		t.Error("a failed request must not install a model")
	}
}

func TestCreateBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"prompt":`},
		{"unknown field", `{"promt": "oak"}`},
		{"nothing given", `{}`},
		{"two given", `{"prompt": "oak", "source": "(cabinet)"}`},
		{"blank prompt", `{"prompt": "   "}`},
		{"missing material", `{"spec": {"width": 36, "height": 30, "depth": 24, "finish": "natural", "type": "base"}}`},
		{"unknown type", `{"spec": {"width": 36, "height": 30, "depth": 24, "material": "oak", "finish": "natural", "type": "igloo"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, 0)
			rec := do(t, srv, http.MethodPost, "/api/cabinets", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			if body := decode[errorResponse](t, rec); body.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestCreateSuperseded(t *testing.T) {
	srv, st := newTestServer(t, time.Hour)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(t, srv, http.MethodPost, "/api/cabinets", `{"prompt": "walnut wall cabinet"}`)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for st.Workspace().Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("request never became pending")
		}
		time.Sleep(time.Millisecond)
	}

	m, err := st.Generate(cabinet.Default())
	if err != nil {
		t.Fatal(err)
	}

	rec := <-done
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if st.Current() != m {
		t.Error("superseded request must not replace the model")
	}
}

func TestCurrentLifecycle(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	if rec := do(t, srv, http.MethodGet, "/api/cabinets/current", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("empty workspace status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodPost, "/api/cabinets", `{"prompt": "pine bookshelf with 4 shelves"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}

	rec := do(t, srv, http.MethodGet, "/api/cabinets/current?meshes=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("current status = %d", rec.Code)
	}
	body := decode[cabinetBody](t, rec)
	if body.Model.Spec.Type != cabinet.TypeBookshelf || body.Model.Spec.Height != cabinet.TallMinHeight {
		t.Errorf("spec = %+v", body.Model.Spec)
	}
	if len(body.Meshes) == 0 {
		t.Error("meshes=true should include meshes")
	}

	if rec := do(t, srv, http.MethodDelete, "/api/cabinets/current", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/api/cabinets/current", ""); rec.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/api/cabinets/current", ""); rec.Code != http.StatusNotFound {
		t.Errorf("after delete status = %d", rec.Code)
	}
}

func TestToggleMeasurements(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	for _, want := range []bool{true, false} {
		rec := do(t, srv, http.MethodPost, "/api/cabinets/current/measurements", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode[map[string]bool](t, rec)["visible"]; got != want {
			t.Errorf("visible = %v, want %v", got, want)
		}
	}
}

func TestPropertiesAndExport(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	if rec := do(t, srv, http.MethodGet, "/api/cabinets/current/export", ""); rec.Code != http.StatusNotFound {
		t.Errorf("export without cabinet status = %d", rec.Code)
	}
	if rec := do(t, srv, http.MethodGet, "/api/cabinets/current/properties", ""); rec.Code != http.StatusNotFound {
		t.Errorf("properties without cabinet status = %d", rec.Code)
	}

	if rec := do(t, srv, http.MethodPost, "/api/cabinets", `{"prompt": "maple cabinet with 3 drawers and 2 doors"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}

	rec := do(t, srv, http.MethodGet, "/api/cabinets/current/properties", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("properties status = %d", rec.Code)
	}
	props := decode[[]struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}](t, rec)
	if len(props) != 7 || props[2].Name != "Material" || props[2].Value != "Maple" {
		t.Errorf("properties = %+v", props)
	}

	rec = do(t, srv, http.MethodGet, "/api/cabinets/current/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "cabinet-design-") {
		t.Errorf("content disposition = %q", cd)
	}
	text := rec.Body.String()
	for _, want := range []string{"Cabinet Design Specifications", "- Hinges: 4 pieces", "- Handles: 5 pieces", "- Drawer slides: 3 pieces"} {
		if !strings.Contains(text, want) {
			t.Errorf("export missing %q:\n%s", want, text)
		}
	}
}

func TestMaterials(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	rec := do(t, srv, http.MethodGet, "/api/materials", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	mats := decode[[]materialPayload](t, rec)
	if len(mats) == 0 || mats[0].Key != "oak" || mats[0].Color != "#c19a6b" {
		t.Errorf("materials = %+v", mats)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
