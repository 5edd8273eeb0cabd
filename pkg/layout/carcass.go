package layout

import "github.com/chazu/casework/pkg/model"

// checkEnvelope rejects an envelope too small to hold two panels per axis.
func checkEnvelope(w, h, d, t float64) error {
	dims := []struct {
		name string
		v    float64
	}{
		{"width", w},
		{"height", h},
		{"depth", d},
	}
	for _, dim := range dims {
		if !(dim.v > 2*t) {
			return geometryErrorf("carcass", "%s %.4f must exceed twice the panel thickness (%.4f)", dim.name, dim.v, 2*t)
		}
	}
	return nil
}

// Carcass returns the five structural panels in order bottom, top, left,
// right, back. Bottom and top span the full width and depth; the sides span
// the full height and depth; the back is half thickness, fitted between the
// other four at the rear.
func Carcass(w, h, d float64, p Params, mat string) ([]model.Descriptor, error) {
	t := p.Thickness
	if err := checkEnvelope(w, h, d, t); err != nil {
		return nil, err
	}

	return []model.Descriptor{
		model.Box(model.RoleBottom, 0,
			model.Vec3{X: w, Y: t, Z: d},
			model.Vec3{Y: -h/2 + t/2},
			mat, model.ToneFace),
		model.Box(model.RoleTop, 0,
			model.Vec3{X: w, Y: t, Z: d},
			model.Vec3{Y: h/2 - t/2},
			mat, model.ToneFace),
		model.Box(model.RoleLeft, 0,
			model.Vec3{X: t, Y: h, Z: d},
			model.Vec3{X: -w/2 + t/2},
			mat, model.ToneFace),
		model.Box(model.RoleRight, 0,
			model.Vec3{X: t, Y: h, Z: d},
			model.Vec3{X: w/2 - t/2},
			mat, model.ToneFace),
		model.Box(model.RoleBack, 0,
			model.Vec3{X: w - 2*t, Y: h - 2*t, Z: t / 2},
			model.Vec3{Z: -d/2 + t/4},
			mat, model.ToneFace),
	}, nil
}
