package layout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/model"
)

func TestGenerateScenarioA(t *testing.T) {
	spec := cabinet.Spec{Width: 36, Height: 30, Depth: 24, Shelves: 2, Doors: 2, Drawers: 0, Material: "oak"}
	m, err := NewGenerator().Generate(&spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if m.Len() != 13 {
		t.Fatalf("expected 13 descriptors, got %d: %s", m.Len(), Describe(m))
	}
	counts := map[model.Role]int{
		model.RoleShelf:     2,
		model.RoleDoorPanel: 2,
		model.RoleDoorFrame: 2,
		model.RoleHandle:    2,
	}
	for role, want := range counts {
		if got := m.Count(role); got != want {
			t.Errorf("Count(%v) = %d, want %d", role, got, want)
		}
	}

	descs := m.Descriptors()
	for i, r := range []model.Role{model.RoleBottom, model.RoleTop, model.RoleLeft, model.RoleRight, model.RoleBack} {
		if descs[i].Role != r {
			t.Errorf("descriptor %d role = %v, want %v", i, descs[i].Role, r)
		}
	}
	if m.Origin() != (model.Vec3{Y: 15}) {
		t.Errorf("Origin = %v, want (0, 15, 0)", m.Origin())
	}
	if len(m.Measurements()) != 3 {
		t.Errorf("expected 3 measurements, got %d", len(m.Measurements()))
	}
	bill := Bill(m.Spec())
	if bill.Hinges != 4 || bill.Handles != 2 {
		t.Errorf("bill = %+v, want 4 hinges 2 handles", bill)
	}
}

func TestGenerateScenarioB(t *testing.T) {
	spec := cabinet.Default()
	spec.Shelves, spec.Doors, spec.Drawers = 0, 0, 3
	m, err := NewGenerator().Generate(&spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if m.Len() != 11 {
		t.Fatalf("expected 11 descriptors, got %d: %s", m.Len(), Describe(m))
	}
	if m.Count(model.RoleDoorPanel) != 0 || m.Count(model.RoleDoorFrame) != 0 || m.Count(model.RoleShelf) != 0 {
		t.Errorf("unexpected parts: %s", Describe(m))
	}

	fronts := m.ByRole(model.RoleDrawerFront)
	if len(fronts) != 3 {
		t.Fatalf("expected 3 drawer fronts, got %d", len(fronts))
	}
	if m.Count(model.RoleHandle) != 3 {
		t.Errorf("expected 3 handles, got %d", m.Count(model.RoleHandle))
	}
	// Interior midpoint is y=0. With two of five bands reserved, drawer
	// centers never rise above it.
	for i, f := range fronts {
		if i > 0 && !(f.Position.Y > fronts[i-1].Position.Y) {
			t.Errorf("drawer offsets not increasing at %d", i)
		}
		if f.Position.Y > eps {
			t.Errorf("drawer %d center %g above the interior midpoint", i, f.Position.Y)
		}
	}
}

func TestGenerateHandleCountProperty(t *testing.T) {
	g := NewGenerator()
	for doors := 0; doors <= 4; doors++ {
		for drawers := 0; drawers <= 6; drawers++ {
			spec := specWith(1, doors, drawers)
			spec.Width = 60
			spec.Height = 60
			m, err := g.Generate(&spec)
			if err != nil {
				t.Fatalf("doors=%d drawers=%d: %v", doors, drawers, err)
			}
			if got := m.Count(model.RoleHandle); got != doors+drawers {
				t.Errorf("doors=%d drawers=%d: %d handles", doors, drawers, got)
			}
			if got := m.Count(model.RoleDoorPanel); got != doors {
				t.Errorf("doors=%d: %d leaves", doors, got)
			}
			if got := m.Count(model.RoleDrawerFront); got != drawers {
				t.Errorf("drawers=%d: %d fronts", drawers, got)
			}
		}
	}
}

func TestGenerateInvalidSpec(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Generate(nil); !errors.Is(err, cabinet.ErrInvalidSpec) {
		t.Errorf("nil spec: expected InvalidSpecError, got %v", err)
	}
	spec := cabinet.Spec{Width: 36, Height: 30, Depth: 24}
	m, err := g.Generate(&spec)
	if !errors.Is(err, cabinet.ErrInvalidSpec) {
		t.Errorf("missing material: expected InvalidSpecError, got %v", err)
	}
	if m != nil {
		t.Error("no model may be returned on error")
	}
}

func TestGenerateDegenerateGeometry(t *testing.T) {
	p := DefaultParams()
	p.Thickness = 7
	spec := cabinet.Spec{Width: 14, Height: 14, Depth: 14, Material: "oak"}
	m, err := NewGenerator(WithParams(p)).Generate(&spec)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected InvalidGeometryError, got %v", err)
	}
	if m != nil {
		t.Error("no model may be returned on error")
	}
	if !IsUserError(err) {
		t.Error("geometry errors are user errors")
	}
}

func TestGenerateBadParams(t *testing.T) {
	p := DefaultParams()
	p.HandleRadius = 0
	spec := cabinet.Default()
	_, err := NewGenerator(WithParams(p)).Generate(&spec)
	if err == nil {
		t.Fatal("expected error")
	}
	if IsUserError(err) {
		t.Errorf("params error should not be a user error: %v", err)
	}
}

func TestGenerateUnknownMaterialFallsBack(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(WithLogger(log.New(&buf)))
	spec := cabinet.Default()
	spec.Material = "unobtainium"

	m, err := g.Generate(&spec)
	if err != nil {
		t.Fatalf("unknown material must not fail: %v", err)
	}
	if m.Material().Key != "oak" {
		t.Errorf("material = %q, want oak", m.Material().Key)
	}
	for _, d := range m.ByRole(model.RoleShelf) {
		if d.Material != "oak" {
			t.Errorf("shelf material = %q, want oak", d.Material)
		}
	}
	if !strings.Contains(buf.String(), "unknown material") {
		t.Errorf("expected soft warning, log = %q", buf.String())
	}
}

func TestGenerateWarnsOnThinStock(t *testing.T) {
	var buf bytes.Buffer
	p := DefaultParams()
	p.Thickness = 0.3
	g := NewGenerator(WithParams(p), WithLogger(log.New(&buf)))
	spec := cabinet.Default()

	if _, err := g.Generate(&spec); err != nil {
		t.Fatalf("thin stock must not fail: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "thin part") || !strings.Contains(out, "door-frame-1") {
		t.Errorf("expected a thin part warning for the door frame, log = %q", out)
	}
	if strings.Contains(out, "door-panel-1") {
		t.Errorf("door panel is thick enough, log = %q", out)
	}
}

func TestGenerateDoesNotMutateSpec(t *testing.T) {
	spec := cabinet.Default()
	before := spec
	if _, err := NewGenerator().Generate(&spec); err != nil {
		t.Fatal(err)
	}
	if spec != before {
		t.Errorf("spec mutated: %+v", spec)
	}
}

func TestDescribe(t *testing.T) {
	spec := cabinet.Default()
	m, err := NewGenerator().Generate(&spec)
	if err != nil {
		t.Fatal(err)
	}
	got := Describe(m)
	if !strings.HasPrefix(got, "13 descriptors") || !strings.Contains(got, "2 shelf") {
		t.Errorf("Describe() = %q", got)
	}
}
