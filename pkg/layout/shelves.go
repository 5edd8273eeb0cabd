package layout

import "github.com/chazu/casework/pkg/model"

// Shelves spaces count shelves evenly through the interior height. A count
// of zero or less yields nothing.
func Shelves(w, h, d float64, count int, p Params, mat string) []model.Descriptor {
	if count <= 0 {
		return nil
	}
	t := p.Thickness
	spacing := (h - 2*t) / float64(count+1)

	shelves := make([]model.Descriptor, 0, count)
	for i := 1; i <= count; i++ {
		shelves = append(shelves, model.Box(model.RoleShelf, i-1,
			model.Vec3{X: w - 2*t, Y: t, Z: d - t},
			model.Vec3{Y: -h/2 + t + spacing*float64(i), Z: -t / 2},
			mat, model.ToneFace))
	}
	return shelves
}
