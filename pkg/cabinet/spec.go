// Package cabinet defines the cabinet specification consumed by the layout
// engine. A Spec is plain data: extractors (prompt parser, Lisp front end,
// CLI flags, HTTP bodies) produce one, clamp it, and hand it to layout.
package cabinet

import (
	"fmt"
	"math"
	"strings"
)

// Type is the cabinet style.
type Type string

const (
	TypeBase      Type = "base"
	TypeWall      Type = "wall"
	TypeTall      Type = "tall"
	TypeVanity    Type = "vanity"
	TypeBookshelf Type = "bookshelf"
	TypeDisplay   Type = "display"
)

// Types lists every known style in display order.
var Types = []Type{TypeBase, TypeWall, TypeTall, TypeVanity, TypeBookshelf, TypeDisplay}

// DisplayName returns the human-readable style name. Unknown types read as
// a base cabinet.
func (t Type) DisplayName() string {
	switch t {
	case TypeWall:
		return "Wall Cabinet"
	case TypeTall:
		return "Tall Cabinet"
	case TypeVanity:
		return "Vanity"
	case TypeBookshelf:
		return "Bookshelf"
	case TypeDisplay:
		return "Display Cabinet"
	default:
		return "Base Cabinet"
	}
}

// Valid reports whether t is one of Types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Finish is the surface finish.
type Finish string

const (
	FinishNatural Finish = "natural"
	FinishPainted Finish = "painted"
	FinishStained Finish = "stained"
)

// Valid reports whether f is a known finish.
func (f Finish) Valid() bool {
	switch f {
	case FinishNatural, FinishPainted, FinishStained:
		return true
	}
	return false
}

// Title returns the finish with its first letter upper-cased.
func (f Finish) Title() string {
	if f == "" {
		return ""
	}
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) clamp(v float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Clamp ranges guaranteed by every extractor.
var (
	WidthBounds  = Bounds{12, 120}
	HeightBounds = Bounds{12, 96}
	DepthBounds  = Bounds{12, 36}
	ShelfBounds  = Bounds{0, 10}
	DoorBounds   = Bounds{0, 4}
	DrawerBounds = Bounds{0, 6}
)

// DefaultMaterial is the catalog key used when a spec names no material.
const DefaultMaterial = "oak"

// Spec is a validated cabinet specification. Dimensions are in inches.
type Spec struct {
	Width    float64 `json:"width" toml:"width"`
	Height   float64 `json:"height" toml:"height"`
	Depth    float64 `json:"depth" toml:"depth"`
	Shelves  int     `json:"shelves" toml:"shelves"`
	Doors    int     `json:"doors" toml:"doors"`
	Drawers  int     `json:"drawers" toml:"drawers"`
	Material string  `json:"material" toml:"material"`
	Finish   Finish  `json:"finish" toml:"finish"`
	Type     Type    `json:"type" toml:"type"`
}

// Default returns the specification used when an extractor finds nothing.
func Default() Spec {
	return Spec{
		Width:    36,
		Height:   30,
		Depth:    24,
		Shelves:  2,
		Doors:    2,
		Drawers:  0,
		Material: DefaultMaterial,
		Finish:   FinishNatural,
		Type:     TypeBase,
	}
}

// Height limits implied by cabinet type.
const (
	TallMinHeight = 60
	WallMaxHeight = 36
)

// FitType returns a copy of s with the height adjusted for its type: tall
// cabinets and bookshelves are at least TallMinHeight, wall cabinets at most
// WallMaxHeight.
func (s Spec) FitType() Spec {
	switch s.Type {
	case TypeTall, TypeBookshelf:
		s.Height = math.Max(s.Height, TallMinHeight)
	case TypeWall:
		s.Height = math.Min(s.Height, WallMaxHeight)
	}
	return s
}

// Clamp returns a copy of s with every dimension and count forced into its
// bounds. Empty enum fields are filled from Default.
func (s Spec) Clamp() Spec {
	s.Width = WidthBounds.clamp(s.Width)
	s.Height = HeightBounds.clamp(s.Height)
	s.Depth = DepthBounds.clamp(s.Depth)
	s.Shelves = int(ShelfBounds.clamp(float64(s.Shelves)))
	s.Doors = int(DoorBounds.clamp(float64(s.Doors)))
	s.Drawers = int(DrawerBounds.clamp(float64(s.Drawers)))

	def := Default()
	if s.Material == "" {
		s.Material = def.Material
	}
	if s.Finish == "" {
		s.Finish = def.Finish
	}
	if s.Type == "" {
		s.Type = def.Type
	}
	return s
}

// Validate checks that s is structurally usable. It never clamps: a
// dimension below the clamp range is still accepted here and left for the
// layout engine to judge geometrically.
func (s *Spec) Validate() error {
	if s == nil {
		return &InvalidSpecError{Reason: "spec is nil"}
	}
	dims := []struct {
		field string
		v     float64
	}{
		{"width", s.Width},
		{"height", s.Height},
		{"depth", s.Depth},
	}
	for _, d := range dims {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return &InvalidSpecError{Field: d.field, Reason: "must be a finite number"}
		}
		if d.v <= 0 {
			return &InvalidSpecError{Field: d.field, Reason: fmt.Sprintf("must be positive, got %g", d.v)}
		}
	}
	counts := []struct {
		field string
		v     int
	}{
		{"shelves", s.Shelves},
		{"doors", s.Doors},
		{"drawers", s.Drawers},
	}
	for _, c := range counts {
		if c.v < 0 {
			return &InvalidSpecError{Field: c.field, Reason: fmt.Sprintf("must not be negative, got %d", c.v)}
		}
	}
	if s.Material == "" {
		return &InvalidSpecError{Field: "material", Reason: "is required"}
	}
	if s.Finish != "" && !s.Finish.Valid() {
		return &InvalidSpecError{Field: "finish", Reason: fmt.Sprintf("unknown finish %q", s.Finish)}
	}
	if s.Type != "" && !s.Type.Valid() {
		return &InvalidSpecError{Field: "type", Reason: fmt.Sprintf("unknown type %q", s.Type)}
	}
	return nil
}
