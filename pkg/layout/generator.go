package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/material"
	"github.com/chazu/casework/pkg/model"
)

// Generator runs complete layout passes. It holds only configuration, so a
// single Generator may be shared between goroutines.
type Generator struct {
	params  Params
	catalog *material.Catalog
	logger  *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithParams overrides the construction constants.
func WithParams(p Params) Option {
	return func(g *Generator) { g.params = p }
}

// WithCatalog sets the material catalog.
func WithCatalog(c *material.Catalog) Option {
	return func(g *Generator) {
		if c != nil {
			g.catalog = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator returns a Generator with DefaultParams and the standard
// catalog unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		params: DefaultParams(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.catalog == nil {
		g.catalog = material.New(material.WithLogger(g.logger))
	}
	return g
}

// Params returns the generator's construction constants.
func (g *Generator) Params() Params { return g.params }

// Catalog returns the generator's material catalog.
func (g *Generator) Catalog() *material.Catalog { return g.catalog }

// Generate runs carcass, shelves, doors, drawers, hardware and measurements
// in dependency order and returns a new model. It is all-or-nothing: on any
// error no model is returned.
//
// Errors:
//   - *cabinet.InvalidSpecError when spec is nil or malformed
//   - *InvalidGeometryError when any computed dimension is degenerate
func (g *Generator) Generate(spec *cabinet.Spec) (*model.Model, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := g.params.Validate(); err != nil {
		return nil, err
	}
	s := *spec
	mat := g.catalog.Resolve(s.Material)

	o, err := Opening(s, g.params)
	if err != nil {
		return nil, err
	}

	carcass, err := Carcass(s.Width, s.Height, s.Depth, g.params, mat.Key)
	if err != nil {
		return nil, err
	}

	descs := make([]model.Descriptor, 0, len(carcass)+s.Shelves+2*s.Doors+2*s.Drawers+s.Doors)
	descs = append(descs, carcass...)
	descs = append(descs, Shelves(s.Width, s.Height, s.Depth, s.Shelves, g.params, mat.Key)...)
	descs = append(descs, Doors(o, mat.Key)...)
	descs = append(descs, Drawers(o, mat.Key)...)
	descs = append(descs, Hardware(o, g.params)...)

	findings := model.Validate(descs)
	if errs := model.Errors(findings); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, &InvalidGeometryError{Component: "model", Message: strings.Join(msgs, "; ")}
	}

	for _, w := range model.Warnings(findings) {
		g.logger.Warn("thin part", "part", w.Name, "detail", w.Message)
	}

	m := model.New(s, mat, model.Vec3{Y: s.Height / 2}, descs, Measurements(s))
	g.logger.Debug("generated cabinet",
		"id", m.ID(),
		"descriptors", m.Len(),
		"shelves", s.Shelves,
		"doors", s.Doors,
		"drawers", s.Drawers,
		"material", mat.Key,
	)
	return m, nil
}

// IsUserError reports whether err came from the spec or its geometry, as
// opposed to a misconfigured generator.
func IsUserError(err error) bool {
	return errors.Is(err, cabinet.ErrInvalidSpec) || errors.Is(err, ErrInvalidGeometry)
}

// Describe summarizes a model in one line, for logs and CLI output.
func Describe(m *model.Model) string {
	parts := make([]string, 0, len(model.Roles))
	for _, r := range model.Roles {
		if n := m.Count(r); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, r))
		}
	}
	return fmt.Sprintf("%d descriptors (%s)", m.Len(), strings.Join(parts, ", "))
}
