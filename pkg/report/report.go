// Package report formats a cabinet spec for people: an ordered property
// sheet for display and the plain-text export document.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/casework/pkg/cabinet"
	"github.com/chazu/casework/pkg/layout"
	"github.com/chazu/casework/pkg/material"
)

// Property is one labeled row of the property sheet.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Properties returns the property sheet rows in display order. The
// material is resolved through catalog, so an unknown key shows the
// default material's name.
func Properties(spec cabinet.Spec, catalog *material.Catalog) []Property {
	if catalog == nil {
		catalog = material.New()
	}
	return []Property{
		{"Type", spec.Type.DisplayName()},
		{"Dimensions", Dimensions(spec)},
		{"Material", catalog.Resolve(spec.Material).Name},
		{"Finish", spec.Finish.Title()},
		{"Shelves", strconv.Itoa(spec.Shelves)},
		{"Doors", strconv.Itoa(spec.Doors)},
		{"Drawers", strconv.Itoa(spec.Drawers)},
	}
}

// Dimensions renders the envelope as `36" W × 30" H × 24" D`.
func Dimensions(spec cabinet.Spec) string {
	return fmt.Sprintf(`%s" W × %s" H × %s" D`, num(spec.Width), num(spec.Height), num(spec.Depth))
}

// Export renders the plain-text design document: header, property sheet
// and material requirements.
func Export(spec cabinet.Spec, catalog *material.Catalog) string {
	var b strings.Builder
	b.WriteString("Cabinet Design Specifications\n")
	b.WriteString("================================\n\n")
	for _, p := range Properties(spec, catalog) {
		fmt.Fprintf(&b, "%s: %s\n", p.Name, p.Value)
	}

	bill := layout.Bill(spec)
	b.WriteString("\n\nMaterial Requirements:\n")
	b.WriteString("- Plywood sheets: Based on dimensions\n")
	b.WriteString("- Edge banding: Perimeter of all visible edges\n")
	fmt.Fprintf(&b, "- Hinges: %d pieces\n", bill.Hinges)
	fmt.Fprintf(&b, "- Handles: %d pieces\n", bill.Handles)
	fmt.Fprintf(&b, "- Drawer slides: %d pieces\n", bill.DrawerSlides)
	b.WriteString("- Wood screws and fasteners\n")
	return b.String()
}

// FileName returns the export file name for a document written at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("cabinet-design-%d.txt", t.UnixMilli())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
