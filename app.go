package main

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/internal/config"
	"github.com/chazu/casework/internal/studio"
	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/kernel"
	"github.com/chazu/casework/pkg/model"
	"github.com/chazu/casework/pkg/prompt"
	"github.com/chazu/casework/pkg/report"
	"github.com/chazu/casework/pkg/workspace"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	studio *studio.Studio
	logger *log.Logger
}

// EvalErrorData is a JSON-serializable error for the frontend. Line and Col
// are zero for errors that are not tied to Lisp source.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// GenerateResult is the full result returned to the frontend.
type GenerateResult struct {
	Meshes           []*kernel.Mesh      `json:"meshes"`
	Errors           []EvalErrorData     `json:"errors"`
	Summary          string              `json:"summary"`
	Properties       []report.Property   `json:"properties"`
	Measurements     []model.Measurement `json:"measurements"`
	ShowMeasurements bool                `json:"showMeasurements"`
	// Superseded is set when a newer request replaced this one before it
	// ran. The frontend should ignore the result.
	Superseded bool `json:"superseded"`
}

// ExportResult carries the design document and a suggested file name.
type ExportResult struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
	Error    string `json:"error,omitempty"`
}

// MaterialData describes one catalog entry for the material picker.
type MaterialData struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewApp creates a new App over a studio built from cfg.
func NewApp(cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		ctx:    context.Background(),
		studio: studio.New(cfg, logger),
		logger: logger,
	}
}

// startup is called by Wails on app startup. The context is saved so that
// pending layouts end with the app.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Generate lays out the cabinet described by a free-text prompt. Calls made
// while an earlier one is still waiting out the workspace delay supersede it.
func (a *App) Generate(text string) GenerateResult {
	spec, err := a.studio.ParsePrompt(text)
	if err != nil {
		return a.failure(err)
	}
	return a.submit(spec)
}

// GenerateSource lays out the last cabinet defined by Lisp source.
func (a *App) GenerateSource(source string) GenerateResult {
	spec, evalErrs, err := a.studio.EvaluateSource(source)
	if err != nil {
		a.logger.Error("evaluate failed", "err", err)
		return a.failure(err)
	}
	if len(evalErrs) > 0 {
		result := newResult()
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	return a.submit(spec)
}

// GenerateSpec lays out an explicit spec, as edited in the property panel.
func (a *App) GenerateSpec(spec cabinet.Spec) GenerateResult {
	return a.submit(spec)
}

// Export returns the design document of the current cabinet.
func (a *App) Export() ExportResult {
	text, err := a.studio.Export()
	if err != nil {
		return ExportResult{Error: err.Error()}
	}
	return ExportResult{FileName: report.FileName(time.Now()), Content: text}
}

// Clear removes the current cabinet.
func (a *App) Clear() {
	a.studio.Clear()
}

// ToggleMeasurements flips the dimension labels and returns the new state.
func (a *App) ToggleMeasurements() bool {
	return a.studio.ToggleMeasurements()
}

// Materials lists the selectable materials.
func (a *App) Materials() []MaterialData {
	mats := a.studio.Materials()
	out := make([]MaterialData, len(mats))
	for i, m := range mats {
		out[i] = MaterialData{Key: m.Key, Name: m.Name, Color: m.Hex()}
	}
	return out
}

func (a *App) submit(spec cabinet.Spec) GenerateResult {
	m, err := a.studio.Submit(a.ctx, spec)
	if err != nil {
		if errors.Is(err, workspace.ErrSuperseded) {
			result := newResult()
			result.Superseded = true
			return result
		}
		if !studio.IsUserError(err) {
			a.logger.Error("generate failed", "err", err)
		}
		return a.failure(err)
	}

	// Step 1: Tessellate every part.
	meshes, err := a.studio.Meshes(a.ctx, m)
	if err != nil {
		a.logger.Error("tessellate failed", "err", err)
		return a.failure(err)
	}

	// Step 2: Attach the property sheet and labels.
	result := newResult()
	if meshes != nil {
		result.Meshes = meshes
	}
	result.Summary = prompt.Summary(m.Spec())
	result.Properties = report.Properties(m.Spec(), a.studio.Catalog())
	result.Measurements = m.Measurements()
	result.ShowMeasurements = a.studio.MeasurementsVisible()
	return result
}

func (a *App) failure(err error) GenerateResult {
	result := newResult()
	result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
	return result
}

// newResult returns a result whose slices encode as [] rather than null.
func newResult() GenerateResult {
	return GenerateResult{
		Meshes:       []*kernel.Mesh{},
		Errors:       []EvalErrorData{},
		Properties:   []report.Property{},
		Measurements: []model.Measurement{},
	}
}
