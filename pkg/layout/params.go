package layout

import "fmt"

// Params are the fixed construction constants of a layout pass.
type Params struct {
	Thickness         float64 `toml:"thickness"`           // panel stock thickness
	DoorGap           float64 `toml:"door_gap"`            // gap on each side of a door leaf
	DoorGapFactor     float64 `toml:"door_gap_factor"`     // leaf width shrinks by factor × door count
	DoorClearance     float64 `toml:"door_clearance"`      // subtracted from the opening height
	FrameInset        float64 `toml:"frame_inset"`         // frame is this much smaller than its leaf
	DrawerMargin      float64 `toml:"drawer_margin"`       // subtracted from drawer front width and height
	HandleRadius      float64 `toml:"handle_radius"`       // handle bar radius
	DoorHandleLength  float64 `toml:"door_handle_length"`  // door handle bar length
	DrawerHandleRatio float64 `toml:"drawer_handle_ratio"` // drawer handle length as a fraction of width
	HandleStandoff    float64 `toml:"handle_standoff"`     // handle distance in front of the carcass face
	MaxDoors          int     `toml:"max_doors"`
}

// DefaultParams returns 3/4" stock with the standard reveal and hardware
// sizes.
func DefaultParams() Params {
	return Params{
		Thickness:         0.75,
		DoorGap:           0.25,
		DoorGapFactor:     0.5,
		DoorClearance:     1.0,
		FrameInset:        2.0,
		DrawerMargin:      1.0,
		HandleRadius:      0.2,
		DoorHandleLength:  3.0,
		DrawerHandleRatio: 0.25,
		HandleStandoff:    1.0,
		MaxDoors:          4,
	}
}

// Validate rejects parameter sets no cabinet could be built with.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"thickness", p.Thickness},
		{"handle_radius", p.HandleRadius},
		{"door_handle_length", p.DoorHandleLength},
		{"drawer_handle_ratio", p.DrawerHandleRatio},
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return fmt.Errorf("layout params: %s must be positive, got %g", f.name, f.v)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"door_gap", p.DoorGap},
		{"door_gap_factor", p.DoorGapFactor},
		{"door_clearance", p.DoorClearance},
		{"frame_inset", p.FrameInset},
		{"drawer_margin", p.DrawerMargin},
		{"handle_standoff", p.HandleStandoff},
	}
	for _, f := range nonNegative {
		if f.v < 0 {
			return fmt.Errorf("layout params: %s must not be negative, got %g", f.name, f.v)
		}
	}
	if p.MaxDoors < 1 {
		return fmt.Errorf("layout params: max_doors must be at least 1, got %d", p.MaxDoors)
	}
	return nil
}
