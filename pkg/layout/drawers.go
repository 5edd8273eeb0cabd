package layout

import "github.com/chazu/casework/pkg/model"

// Drawers emits one centered front per drawer band, bottom to top.
func Drawers(o OpeningGeometry, mat string) []model.Descriptor {
	g := o.Drawers
	if g.Count == 0 {
		return nil
	}

	fronts := make([]model.Descriptor, 0, g.Count)
	for i, y := range g.Centers {
		fronts = append(fronts, model.Box(model.RoleDrawerFront, i,
			model.Vec3{X: g.FrontWidth, Y: g.FrontHeight, Z: o.Thickness / 2},
			model.Vec3{Y: y, Z: o.FaceZ},
			mat, model.ToneFace))
	}
	return fronts
}
