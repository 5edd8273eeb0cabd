package layout

import (
	"strconv"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/model"
)

// Measurements labels the overall width, height and depth from the raw spec
// numbers, e.g. `36"`.
func Measurements(spec cabinet.Spec) []model.Measurement {
	return []model.Measurement{
		{Label: inches(spec.Width), Kind: model.DimensionWidth},
		{Label: inches(spec.Height), Kind: model.DimensionHeight},
		{Label: inches(spec.Depth), Kind: model.DimensionDepth},
	}
}

func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + `"`
}
