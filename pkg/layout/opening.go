package layout

import "github.com/chazu/casework/pkg/cabinet"

// OpeningGeometry is the single source of truth for everything mounted on
// the front opening. Doors, drawers and hardware all read the same value, so
// a handle can never drift from the leaf or band it belongs to.
type OpeningGeometry struct {
	Width, Height, Depth float64 // outer envelope
	Thickness            float64

	InteriorWidth  float64 // width - 2t
	InteriorHeight float64 // height - 2t

	FaceZ   float64 // center plane of door leaves and drawer fronts
	HandleZ float64 // center plane of handles

	Doors   DoorGeometry
	Drawers DrawerGeometry
}

// DoorGeometry holds leaf sizes and horizontal leaf centers.
type DoorGeometry struct {
	Count       int
	LeafWidth   float64
	LeafHeight  float64
	FrameWidth  float64
	FrameHeight float64
	Centers     []float64 // x of each leaf center, left to right
}

// DrawerGeometry holds the band unit and vertical drawer centers.
type DrawerGeometry struct {
	Count       int
	Band        float64 // u = interior height / (count + 2)
	FrontWidth  float64
	FrontHeight float64
	Centers     []float64 // y of each drawer center, bottom to top
}

// Opening computes the opening geometry for spec. It fails with
// *InvalidGeometryError when the envelope is degenerate, when the door count
// exceeds p.MaxDoors, or when any leaf, frame or drawer front would end up
// with a non-positive size.
func Opening(spec cabinet.Spec, p Params) (OpeningGeometry, error) {
	w, h, d, t := spec.Width, spec.Height, spec.Depth, p.Thickness
	if err := checkEnvelope(w, h, d, t); err != nil {
		return OpeningGeometry{}, err
	}

	o := OpeningGeometry{
		Width:          w,
		Height:         h,
		Depth:          d,
		Thickness:      t,
		InteriorWidth:  w - 2*t,
		InteriorHeight: h - 2*t,
		FaceZ:          d/2 + t/4,
		HandleZ:        d/2 + p.HandleStandoff,
	}

	doors, err := doorGeometry(o, spec.Doors, p)
	if err != nil {
		return OpeningGeometry{}, err
	}
	o.Doors = doors

	drawers, err := drawerGeometry(o, spec.Drawers, p)
	if err != nil {
		return OpeningGeometry{}, err
	}
	o.Drawers = drawers

	return o, nil
}

// doorGeometry splits the opening into equal leaves. The leaf width shrinks
// by DoorGapFactor × count; leaves step by leafWidth + 2·gap starting one
// gap in from the left opening edge.
func doorGeometry(o OpeningGeometry, count int, p Params) (DoorGeometry, error) {
	if count <= 0 {
		return DoorGeometry{}, nil
	}
	if count > p.MaxDoors {
		return DoorGeometry{}, geometryErrorf("doors", "%d doors exceeds the maximum of %d", count, p.MaxDoors)
	}

	n := float64(count)
	g := DoorGeometry{
		Count:      count,
		LeafWidth:  o.InteriorWidth/n - p.DoorGapFactor*n,
		LeafHeight: o.InteriorHeight - p.DoorClearance,
	}
	g.FrameWidth = g.LeafWidth - p.FrameInset
	g.FrameHeight = g.LeafHeight - p.FrameInset

	switch {
	case g.LeafWidth <= 0:
		return DoorGeometry{}, geometryErrorf("doors", "leaf width %.4f is not positive for %d doors in a %.4f opening", g.LeafWidth, count, o.InteriorWidth)
	case g.LeafHeight <= 0:
		return DoorGeometry{}, geometryErrorf("doors", "leaf height %.4f is not positive", g.LeafHeight)
	case g.FrameWidth <= 0 || g.FrameHeight <= 0:
		return DoorGeometry{}, geometryErrorf("doors", "frame %.4f x %.4f is not positive after a %.4f inset", g.FrameWidth, g.FrameHeight, p.FrameInset)
	}

	left := -o.Width/2 + o.Thickness
	g.Centers = make([]float64, count)
	for i := range g.Centers {
		g.Centers[i] = left + g.LeafWidth/2 + p.DoorGap + float64(i)*(g.LeafWidth+2*p.DoorGap)
	}
	return g, nil
}

// drawerGeometry stacks drawer bands from the bottom panel up. Two extra
// bands are reserved, so drawers fill only count/(count+2) of the interior.
func drawerGeometry(o OpeningGeometry, count int, p Params) (DrawerGeometry, error) {
	if count <= 0 {
		return DrawerGeometry{}, nil
	}

	u := o.InteriorHeight / float64(count+2)
	g := DrawerGeometry{
		Count:       count,
		Band:        u,
		FrontWidth:  o.InteriorWidth - p.DrawerMargin,
		FrontHeight: u - p.DrawerMargin,
	}
	if g.FrontWidth <= 0 || g.FrontHeight <= 0 {
		return DrawerGeometry{}, geometryErrorf("drawers", "drawer front %.4f x %.4f is not positive for %d drawers", g.FrontWidth, g.FrontHeight, count)
	}

	bottom := -o.Height/2 + o.Thickness
	g.Centers = make([]float64, count)
	for i := range g.Centers {
		g.Centers[i] = bottom + u/2 + float64(i)*u
	}
	return g, nil
}
