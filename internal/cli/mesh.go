package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/casework/internal/studio"
	"github.com/chazu/casework/pkg/tessellate"
)

// meshCommand creates the mesh command, which tessellates every part of a
// cabinet and reports the triangle counts.
func (c *CLI) meshCommand() *cobra.Command {
	var (
		flags  specFlags
		output string
		cells  int
		scale  float64
	)

	cmd := &cobra.Command{
		Use:   "mesh [prompt...]",
		Short: "Tessellate a cabinet into triangle meshes",
		Long: `Tessellate a cabinet into triangle meshes, one per part, placed in scene
units and standing on the ground plane. With -o the meshes are written as
JSON in the same form the desktop viewer consumes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg := c.cfg
			cfg.Workspace.Delay.Duration = 0
			cfg.Render.Enabled = true
			if cmd.Flags().Changed("mesh-cells") {
				cfg.Render.MeshCells = cells
			}
			if cmd.Flags().Changed("scale") {
				cfg.Render.Scale = scale
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			st := studio.New(cfg, c.Logger)

			spec, err := resolveSpec(cmd, st, args, &flags)
			if err != nil {
				return err
			}
			m, err := st.Generate(spec)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Tessellating %d parts...", m.Len()))
			spinner.Start()

			meshes, err := st.Meshes(ctx, m)
			if err != nil {
				spinner.StopWithError("Tessellation failed")
				return err
			}
			spinner.Stop()
			if ctx.Err() != nil {
				return ctx.Err()
			}

			stats := tessellate.Summarize(meshes)
			prog.done(fmt.Sprintf("Tessellated %d parts", stats.Parts))

			printSuccess(out, "Meshed %d parts", stats.Parts)
			printKeyValue(out, "Vertices", StyleNumber.Render(fmt.Sprint(stats.Vertices)))
			printKeyValue(out, "Triangles", StyleNumber.Render(fmt.Sprint(stats.Triangles)))

			if output != "" {
				data, err := json.Marshal(meshes)
				if err != nil {
					return fmt.Errorf("encode meshes: %w", err)
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write output %s: %w", output, err)
				}
				printFile(out, output)
			}
			return nil
		},
	}

	addSpecFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the meshes as JSON to this file")
	cmd.Flags().IntVar(&cells, "mesh-cells", 0, "marching cubes resolution (default from config)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "scene units per inch (default from config)")

	return cmd
}
