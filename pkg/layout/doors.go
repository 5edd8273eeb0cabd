package layout

import "github.com/chazu/casework/pkg/model"

// Doors emits a leaf and an overlaid frame for each door in o. The frame
// sits on the leaf's front face.
func Doors(o OpeningGeometry, mat string) []model.Descriptor {
	g := o.Doors
	if g.Count == 0 {
		return nil
	}
	t := o.Thickness

	doors := make([]model.Descriptor, 0, 2*g.Count)
	for i, x := range g.Centers {
		doors = append(doors,
			model.Box(model.RoleDoorPanel, i,
				model.Vec3{X: g.LeafWidth, Y: g.LeafHeight, Z: t / 2},
				model.Vec3{X: x, Z: o.FaceZ},
				mat, model.ToneFace),
			model.Box(model.RoleDoorFrame, i,
				model.Vec3{X: g.FrameWidth, Y: g.FrameHeight, Z: t / 3},
				model.Vec3{X: x, Z: o.FaceZ + t/4},
				mat, model.ToneEdge),
		)
	}
	return doors
}
