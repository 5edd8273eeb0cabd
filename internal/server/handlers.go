package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chazu/casework/internal/studio"
	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/engine"
	"github.com/chazu/casework/pkg/kernel"
	"github.com/chazu/casework/pkg/model"
	"github.com/chazu/casework/pkg/prompt"
	"github.com/chazu/casework/pkg/report"
	"github.com/chazu/casework/pkg/workspace"
)

// cabinetRequest names the cabinet in exactly one way.
type cabinetRequest struct {
	Spec   *cabinet.Spec `json:"spec,omitempty"`
	Prompt string        `json:"prompt,omitempty"`
	Source string        `json:"source,omitempty"`
	Meshes bool          `json:"meshes,omitempty"`
}

type cabinetResponse struct {
	Model        *model.Model   `json:"model"`
	Summary      string         `json:"summary"`
	Measurements bool           `json:"measurements_visible"`
	Meshes       []*kernel.Mesh `json:"meshes,omitempty"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Errors []engine.EvalError `json:"errors,omitempty"`
}

type materialPayload struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Edge  string `json:"edge_color"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	mats := s.studio.Materials()
	out := make([]materialPayload, len(mats))
	for i, m := range mats {
		out[i] = materialPayload{Key: m.Key, Name: m.Name, Color: m.Hex(), Edge: m.EdgeHex()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req cabinetRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	spec, evalErrs, err := s.resolve(req)
	if len(evalErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "source has errors", Errors: evalErrs})
		return
	}
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	m, err := s.studio.Submit(r.Context(), spec)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeCabinet(r.Context(), w, http.StatusCreated, m, req.Meshes)
}

// resolve turns a request into a spec. Exactly one of spec, prompt and
// source must be given.
func (s *Server) resolve(req cabinetRequest) (cabinet.Spec, []engine.EvalError, error) {
	given := 0
	for _, ok := range []bool{req.Spec != nil, req.Prompt != "", req.Source != ""} {
		if ok {
			given++
		}
	}
	if given != 1 {
		return cabinet.Spec{}, nil, errBadRequest("give exactly one of spec, prompt or source")
	}

	switch {
	case req.Spec != nil:
		return *req.Spec, nil, nil
	case req.Prompt != "":
		spec, err := s.studio.ParsePrompt(req.Prompt)
		return spec, nil, err
	default:
		return s.studio.EvaluateSource(req.Source)
	}
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	m := s.studio.Current()
	if m == nil {
		writeError(w, http.StatusNotFound, studio.ErrNoCabinet.Error())
		return
	}
	meshes, _ := strconv.ParseBool(r.URL.Query().Get("meshes"))
	s.writeCabinet(r.Context(), w, http.StatusOK, m, meshes)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.studio.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleMeasurements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"visible": s.studio.ToggleMeasurements()})
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.studio.Properties()
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	text, err := s.studio.Export()
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (s *Server) writeCabinet(ctx context.Context, w http.ResponseWriter, status int, m *model.Model, withMeshes bool) {
	resp := cabinetResponse{
		Model:        m,
		Summary:      prompt.Summary(m.Spec()),
		Measurements: s.studio.MeasurementsVisible(),
	}
	if withMeshes {
		meshes, err := s.studio.Meshes(ctx, m)
		if err != nil {
			s.writeFailure(w, err)
			return
		}
		resp.Meshes = meshes
	}
	writeJSON(w, status, resp)
}

// badRequest marks request-shape errors.
type badRequest string

func (e badRequest) Error() string { return string(e) }

func errBadRequest(msg string) error { return badRequest(msg) }

// writeFailure maps an error to a status code: 400 for problems with the
// request, 404 when nothing is installed, 409 when a newer request won and
// 500 otherwise.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	var br badRequest
	switch {
	case errors.As(err, &br), studio.IsUserError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, studio.ErrNoCabinet):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workspace.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
