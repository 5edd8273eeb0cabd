// Package studio ties the cabinet pipeline together for the front ends.
//
// A Studio owns one workspace and turns prompts, Lisp source or plain specs
// into installed models, meshes and reports. The CLI, the HTTP server and
// the desktop app all drive the same Studio type.
package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/internal/config"
	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/engine"
	"github.com/chazu/casework/pkg/kernel"
	"github.com/chazu/casework/pkg/kernel/sdfx"
	"github.com/chazu/casework/pkg/layout"
	"github.com/chazu/casework/pkg/material"
	"github.com/chazu/casework/pkg/model"
	"github.com/chazu/casework/pkg/prompt"
	"github.com/chazu/casework/pkg/report"
	"github.com/chazu/casework/pkg/tessellate"
	"github.com/chazu/casework/pkg/workspace"
)

// ErrNoCabinet is returned by operations that need an installed model when
// none is installed.
var ErrNoCabinet = errors.New("no cabinet generated")

// Studio is safe for concurrent use.
type Studio struct {
	cfg     config.Config
	logger  *log.Logger
	catalog *material.Catalog
	parser  *prompt.Parser
	engine  *engine.Engine
	kernel  kernel.Kernel
	ws      *workspace.Workspace
}

// New builds a studio from cfg. A nil logger means log.Default().
func New(cfg config.Config, logger *log.Logger) *Studio {
	if logger == nil {
		logger = log.Default()
	}
	catalog := material.New(material.WithLogger(logger))
	gen := layout.NewGenerator(
		layout.WithParams(cfg.Layout),
		layout.WithCatalog(catalog),
		layout.WithLogger(logger),
	)
	return &Studio{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		parser:  prompt.New(prompt.WithCatalog(catalog)),
		engine:  engine.NewEngine(engine.WithLogger(logger)),
		kernel:  sdfx.New(sdfx.WithMeshCells(cfg.Render.MeshCells)),
		ws: workspace.New(
			workspace.WithGenerator(gen),
			workspace.WithLogger(logger),
			workspace.WithDelay(cfg.Workspace.Delay.Duration),
		),
	}
}

// Config returns the configuration the studio was built with.
func (s *Studio) Config() config.Config { return s.cfg }

// Catalog returns the material catalog.
func (s *Studio) Catalog() *material.Catalog { return s.catalog }

// Workspace returns the underlying workspace.
func (s *Studio) Workspace() *workspace.Workspace { return s.ws }

// ParsePrompt extracts a spec from a free-text description.
func (s *Studio) ParsePrompt(text string) (cabinet.Spec, error) {
	spec, err := s.parser.Parse(text)
	if err != nil {
		return cabinet.Spec{}, err
	}
	s.logger.Debug("parsed prompt", "summary", prompt.Summary(spec))
	return spec, nil
}

// EvaluateSource runs a Lisp cabinet description and returns its last
// cabinet. Syntax and evaluation problems come back as EvalErrors.
func (s *Studio) EvaluateSource(source string) (cabinet.Spec, []engine.EvalError, error) {
	return s.engine.Last(source)
}

// Generate clamps spec, lays it out immediately and installs the model.
func (s *Studio) Generate(spec cabinet.Spec) (*model.Model, error) {
	spec = spec.Clamp()
	return s.ws.Generate(&spec)
}

// Submit is Generate after the workspace delay. A newer request supersedes
// it with workspace.ErrSuperseded.
func (s *Studio) Submit(ctx context.Context, spec cabinet.Spec) (*model.Model, error) {
	spec = spec.Clamp()
	return s.ws.Submit(ctx, &spec)
}

// Current returns the installed model, or nil.
func (s *Studio) Current() *model.Model { return s.ws.Current() }

// Clear releases the installed model.
func (s *Studio) Clear() { s.ws.Clear() }

// ToggleMeasurements flips the measurement overlay and returns its new state.
func (s *Studio) ToggleMeasurements() bool { return s.ws.ToggleMeasurements() }

// MeasurementsVisible reports the measurement overlay state.
func (s *Studio) MeasurementsVisible() bool { return s.ws.MeasurementsVisible() }

// Meshes tessellates m. It returns no meshes when rendering is disabled.
func (s *Studio) Meshes(ctx context.Context, m *model.Model) ([]*kernel.Mesh, error) {
	if !s.cfg.Render.Enabled {
		return nil, nil
	}
	meshes, err := tessellate.Tessellate(ctx, m, s.kernel, tessellate.Options{
		Scale:   s.cfg.Render.Scale,
		Workers: s.cfg.Render.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("tessellate: %w", err)
	}
	return meshes, nil
}

// Properties returns the property sheet of the installed model.
func (s *Studio) Properties() ([]report.Property, error) {
	m := s.ws.Current()
	if m == nil {
		return nil, ErrNoCabinet
	}
	return report.Properties(m.Spec(), s.catalog), nil
}

// Export returns the design report of the installed model.
func (s *Studio) Export() (string, error) {
	m := s.ws.Current()
	if m == nil {
		return "", ErrNoCabinet
	}
	return report.Export(m.Spec(), s.catalog), nil
}

// Materials returns the catalog entries in catalog order.
func (s *Studio) Materials() []material.Info {
	keys := s.catalog.Keys()
	out := make([]material.Info, 0, len(keys))
	for _, k := range keys {
		if info, ok := s.catalog.Lookup(k); ok {
			out = append(out, info)
		}
	}
	return out
}

// IsUserError reports whether err was caused by the request rather than by
// the studio: a bad spec, impossible geometry or an empty prompt.
func IsUserError(err error) bool {
	return layout.IsUserError(err) || errors.Is(err, prompt.ErrEmptyPrompt)
}
