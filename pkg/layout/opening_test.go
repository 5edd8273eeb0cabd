package layout

import (
	"errors"
	"testing"

	"github.com/chazu/casework/pkg/model"
)

func TestOpeningDoors(t *testing.T) {
	o, err := Opening(specWith(0, 2, 0), DefaultParams())
	if err != nil {
		t.Fatalf("Opening: %v", err)
	}
	g := o.Doors
	// (36 - 1.5)/2 - 0.5*2 = 16.25
	if !approx(g.LeafWidth, 16.25) {
		t.Errorf("LeafWidth = %g, want 16.25", g.LeafWidth)
	}
	// 30 - 1.5 - 1.0 = 27.5
	if !approx(g.LeafHeight, 27.5) {
		t.Errorf("LeafHeight = %g, want 27.5", g.LeafHeight)
	}
	if !approx(g.FrameWidth, 14.25) || !approx(g.FrameHeight, 25.5) {
		t.Errorf("frame = %g x %g, want 14.25 x 25.5", g.FrameWidth, g.FrameHeight)
	}
	// -18 + 0.75 + 8.125 + 0.25 = -8.875; step 16.25 + 0.5
	want := []float64{-8.875, 7.875}
	for i, x := range want {
		if !approx(g.Centers[i], x) {
			t.Errorf("center %d = %g, want %g", i, g.Centers[i], x)
		}
	}
	if !approx(o.FaceZ, 12.1875) {
		t.Errorf("FaceZ = %g, want 12.1875", o.FaceZ)
	}
	if !approx(o.HandleZ, 13) {
		t.Errorf("HandleZ = %g, want 13", o.HandleZ)
	}
}

func TestOpeningDrawers(t *testing.T) {
	o, err := Opening(specWith(0, 0, 3), DefaultParams())
	if err != nil {
		t.Fatalf("Opening: %v", err)
	}
	g := o.Drawers
	// 28.5 / 5
	if !approx(g.Band, 5.7) {
		t.Errorf("Band = %g, want 5.7", g.Band)
	}
	if !approx(g.FrontWidth, 33.5) || !approx(g.FrontHeight, 4.7) {
		t.Errorf("front = %g x %g, want 33.5 x 4.7", g.FrontWidth, g.FrontHeight)
	}
	want := []float64{-11.4, -5.7, 0}
	for i, y := range want {
		if !approx(g.Centers[i], y) {
			t.Errorf("center %d = %g, want %g", i, g.Centers[i], y)
		}
	}
}

func TestOpeningEmpty(t *testing.T) {
	o, err := Opening(specWith(3, 0, 0), DefaultParams())
	if err != nil {
		t.Fatalf("Opening: %v", err)
	}
	if o.Doors.Count != 0 || o.Doors.Centers != nil {
		t.Errorf("expected no doors, got %+v", o.Doors)
	}
	if o.Drawers.Count != 0 || o.Drawers.Centers != nil {
		t.Errorf("expected no drawers, got %+v", o.Drawers)
	}
}

func TestOpeningDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		doors     int
		drawers   int
		component string
	}{
		{"too many doors", 36, 5, 0, "doors"},
		{"narrow four-door frame", 12, 4, 0, "doors"},
		{"leaf consumed by gap term", 4, 4, 0, "doors"},
		{"envelope", 1, 0, 0, "carcass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := specWith(0, tt.doors, tt.drawers)
			s.Width = tt.width
			_, err := Opening(s, DefaultParams())
			var ge *InvalidGeometryError
			if !errors.As(err, &ge) {
				t.Fatalf("expected *InvalidGeometryError, got %v", err)
			}
			if ge.Component != tt.component {
				t.Errorf("Component = %q, want %q", ge.Component, tt.component)
			}
		})
	}
}

func TestOpeningShortDrawerBand(t *testing.T) {
	s := specWith(0, 0, 6)
	s.Height = 8 // interior 6.5, band 0.8125 < margin
	_, err := Opening(s, DefaultParams())
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("expected InvalidGeometryError, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Doors
// ---------------------------------------------------------------------------

func TestDoorsLeafAndFrame(t *testing.T) {
	for k := 0; k <= 4; k++ {
		s := specWith(0, k, 0)
		s.Width = 72
		o, err := Opening(s, DefaultParams())
		if err != nil {
			t.Fatalf("k=%d: Opening: %v", k, err)
		}
		doors := Doors(o, "oak")

		var leaves, frames []model.Descriptor
		for _, d := range doors {
			switch d.Role {
			case model.RoleDoorPanel:
				leaves = append(leaves, d)
			case model.RoleDoorFrame:
				frames = append(frames, d)
			default:
				t.Errorf("unexpected role %v", d.Role)
			}
		}
		if len(leaves) != k || len(frames) != k {
			t.Fatalf("k=%d: %d leaves, %d frames", k, len(leaves), len(frames))
		}
		for i := 1; i < len(leaves); i++ {
			if leaves[i].Size.X != leaves[0].Size.X {
				t.Errorf("k=%d: leaf %d width %g != %g", k, i, leaves[i].Size.X, leaves[0].Size.X)
			}
			if !(leaves[i].Position.X > leaves[i-1].Position.X) {
				t.Errorf("k=%d: leaves not ordered left to right", k)
			}
		}
		for i, f := range frames {
			if f.Tone != model.ToneEdge {
				t.Errorf("frame tone = %q, want edge", f.Tone)
			}
			if f.Position.Z <= leaves[i].Position.Z {
				t.Errorf("frame %d should sit in front of its leaf", i)
			}
			if f.Position.X != leaves[i].Position.X {
				t.Errorf("frame %d x = %g, leaf x = %g", i, f.Position.X, leaves[i].Position.X)
			}
		}
	}
}

func TestDoorsStayInsideOpening(t *testing.T) {
	o, err := Opening(specWith(0, 3, 0), DefaultParams())
	if err != nil {
		t.Fatalf("Opening: %v", err)
	}
	left := -o.Width/2 + o.Thickness
	right := o.Width/2 - o.Thickness
	for _, d := range Doors(o, "oak") {
		if d.Min().X < left-eps || d.Max().X > right+eps {
			t.Errorf("%s spans [%g, %g], outside opening [%g, %g]", d.Name(), d.Min().X, d.Max().X, left, right)
		}
	}
}

// ---------------------------------------------------------------------------
// Drawers
// ---------------------------------------------------------------------------

func TestDrawersStackInLowerBand(t *testing.T) {
	p := DefaultParams()
	for n := 1; n <= 6; n++ {
		o, err := Opening(specWith(0, 0, n), p)
		if err != nil {
			t.Fatalf("n=%d: Opening: %v", n, err)
		}
		fronts := Drawers(o, "oak")
		if len(fronts) != n {
			t.Fatalf("n=%d: %d fronts", n, len(fronts))
		}
		floor := -o.Height/2 + o.Thickness
		ceiling := floor + float64(n)*o.Drawers.Band
		for i, f := range fronts {
			if i > 0 && !(f.Position.Y > fronts[i-1].Position.Y) {
				t.Errorf("n=%d: drawer %d not above drawer %d", n, i, i-1)
			}
			if f.Max().Y > ceiling+eps || f.Min().Y < floor-eps {
				t.Errorf("n=%d: drawer %d spans [%g, %g] outside band [%g, %g]", n, i, f.Min().Y, f.Max().Y, floor, ceiling)
			}
			if f.Position.X != 0 {
				t.Errorf("drawer %d not centered: x=%g", i, f.Position.X)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Hardware
// ---------------------------------------------------------------------------

func TestHardwareMatchesOpening(t *testing.T) {
	p := DefaultParams()
	o, err := Opening(specWith(0, 2, 3), p)
	if err != nil {
		t.Fatalf("Opening: %v", err)
	}
	handles := Hardware(o, p)
	if len(handles) != 5 {
		t.Fatalf("expected 5 handles, got %d", len(handles))
	}

	third := o.Doors.LeafWidth / 3
	if !approx(handles[0].Position.X, o.Doors.Centers[0]+third) {
		t.Errorf("first door handle x = %g, want %g", handles[0].Position.X, o.Doors.Centers[0]+third)
	}
	if !approx(handles[1].Position.X, o.Doors.Centers[1]-third) {
		t.Errorf("second door handle x = %g, want %g", handles[1].Position.X, o.Doors.Centers[1]-third)
	}
	for i, h := range handles[:2] {
		if h.Length() != p.DoorHandleLength || h.Position.Y != 0 {
			t.Errorf("door handle %d = %+v", i, h)
		}
	}
	for i, h := range handles[2:] {
		if h.Position.Y != o.Drawers.Centers[i] || h.Position.X != 0 {
			t.Errorf("drawer handle %d at %v, want y=%g", i, h.Position, o.Drawers.Centers[i])
		}
		if !approx(h.Length(), 9) {
			t.Errorf("drawer handle length = %g, want 9", h.Length())
		}
	}
	for i, h := range handles {
		if h.Shape != model.ShapeCylinder || h.Axis != model.AxisX || h.Index != i {
			t.Errorf("handle %d shape/axis/index = %v/%v/%d", i, h.Shape, h.Axis, h.Index)
		}
		if h.Position.Z != o.HandleZ {
			t.Errorf("handle %d z = %g, want %g", i, h.Position.Z, o.HandleZ)
		}
	}
}

func TestHardwareOddDoorCount(t *testing.T) {
	p := DefaultParams()
	s := specWith(0, 3, 0)
	s.Width = 60
	o, err := Opening(s, p)
	if err != nil {
		t.Fatalf("Opening: %v", err)
	}
	handles := Hardware(o, p)
	// i < 1.5: leaves 0 and 1 offset right, leaf 2 offset left
	signs := []float64{1, 1, -1}
	for i, h := range handles {
		off := h.Position.X - o.Doors.Centers[i]
		if off*signs[i] <= 0 {
			t.Errorf("handle %d offset %g has wrong side", i, off)
		}
	}
}
