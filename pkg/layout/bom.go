package layout

import "github.com/chazu/casework/pkg/cabinet"

// BillOfMaterials is the hardware count derived from a spec.
type BillOfMaterials struct {
	Hinges       int `json:"hinges"`
	Handles      int `json:"handles"`
	DrawerSlides int `json:"drawer_slides"`
}

// Bill derives hardware counts: two hinges per door, one handle per door
// and drawer, one slide per drawer.
func Bill(spec cabinet.Spec) BillOfMaterials {
	return BillOfMaterials{
		Hinges:       2 * spec.Doors,
		Handles:      spec.Doors + spec.Drawers,
		DrawerSlides: spec.Drawers,
	}
}
