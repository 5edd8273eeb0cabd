package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/casework/internal/studio"
	"github.com/chazu/casework/pkg/cabinet"
)

// specFlags are the cabinet options shared by every command that lays out
// a cabinet.
type specFlags struct {
	lisp     string
	width    float64
	height   float64
	depth    float64
	shelves  int
	doors    int
	drawers  int
	material string
	finish   string
	kind     string
}

func addSpecFlags(cmd *cobra.Command, f *specFlags) {
	d := cabinet.Default()
	cmd.Flags().StringVar(&f.lisp, "lisp", "", "read the cabinet from a Lisp description file")
	cmd.Flags().Float64Var(&f.width, "width", d.Width, "width in inches")
	cmd.Flags().Float64Var(&f.height, "height", d.Height, "height in inches")
	cmd.Flags().Float64Var(&f.depth, "depth", d.Depth, "depth in inches")
	cmd.Flags().IntVar(&f.shelves, "shelves", d.Shelves, "number of shelves")
	cmd.Flags().IntVar(&f.doors, "doors", d.Doors, "number of doors")
	cmd.Flags().IntVar(&f.drawers, "drawers", d.Drawers, "number of drawers")
	cmd.Flags().StringVarP(&f.material, "material", "m", d.Material, "wood species")
	cmd.Flags().StringVar(&f.finish, "finish", string(d.Finish), "finish: natural, painted, stained")
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(d.Type), "cabinet type: base, wall, tall, vanity, bookshelf, display")
}

// resolveSpec builds a spec from a Lisp file or prompt words, then applies
// any flag the user set explicitly. The result is clamped.
func resolveSpec(cmd *cobra.Command, st *studio.Studio, args []string, f *specFlags) (cabinet.Spec, error) {
	spec := cabinet.Default()

	switch {
	case f.lisp != "" && len(args) > 0:
		return cabinet.Spec{}, errors.New("give either a prompt or --lisp, not both")
	case f.lisp != "":
		src, err := os.ReadFile(f.lisp)
		if err != nil {
			return cabinet.Spec{}, fmt.Errorf("read %s: %w", f.lisp, err)
		}
		s, evalErrs, err := st.EvaluateSource(string(src))
		if err != nil {
			return cabinet.Spec{}, fmt.Errorf("evaluate %s: %w", f.lisp, err)
		}
		if len(evalErrs) > 0 {
			return cabinet.Spec{}, fmt.Errorf("%s: %w", f.lisp, evalErrs[0])
		}
		spec = s
	case len(args) > 0:
		s, err := st.ParsePrompt(strings.Join(args, " "))
		if err != nil {
			return cabinet.Spec{}, err
		}
		spec = s
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		spec.Width = f.width
	}
	if flags.Changed("height") {
		spec.Height = f.height
	}
	if flags.Changed("depth") {
		spec.Depth = f.depth
	}
	if flags.Changed("shelves") {
		spec.Shelves = f.shelves
	}
	if flags.Changed("doors") {
		spec.Doors = f.doors
	}
	if flags.Changed("drawers") {
		spec.Drawers = f.drawers
	}
	if flags.Changed("material") {
		spec.Material = strings.ToLower(f.material)
	}
	if flags.Changed("finish") {
		spec.Finish = cabinet.Finish(strings.ToLower(f.finish))
	}
	if flags.Changed("type") {
		spec.Type = cabinet.Type(strings.ToLower(f.kind))
		spec = spec.FitType()
	}
	return spec.Clamp(), nil
}
