package layout

import "github.com/chazu/casework/pkg/material"

func catalogDefault() material.Info {
	return material.New().Default()
}
