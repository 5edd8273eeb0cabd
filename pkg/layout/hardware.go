package layout

import (
	"github.com/chazu/casework/pkg/material"
	"github.com/chazu/casework/pkg/model"
)

// Hardware places one handle per door leaf and one per drawer, reading the
// same opening geometry as Doors and Drawers.
//
// Door handles sit a third of the leaf width off the leaf center: leaves in
// the first half of the run are offset toward +X, the rest toward -X, so a
// pair of doors gets mirrored handles. Drawer handles are centered and scale
// with the cabinet width.
func Hardware(o OpeningGeometry, p Params) []model.Descriptor {
	handles := make([]model.Descriptor, 0, o.Doors.Count+o.Drawers.Count)

	half := float64(o.Doors.Count) / 2
	for i, x := range o.Doors.Centers {
		offset := o.Doors.LeafWidth / 3
		if float64(i) >= half {
			offset = -offset
		}
		handles = append(handles, model.Cylinder(model.RoleHandle, len(handles),
			p.DoorHandleLength, p.HandleRadius, model.AxisX,
			model.Vec3{X: x + offset, Z: o.HandleZ},
			material.HardwareKey))
	}

	length := o.Width * p.DrawerHandleRatio
	for _, y := range o.Drawers.Centers {
		handles = append(handles, model.Cylinder(model.RoleHandle, len(handles),
			length, p.HandleRadius, model.AxisX,
			model.Vec3{Y: y, Z: o.HandleZ},
			material.HardwareKey))
	}
	return handles
}
