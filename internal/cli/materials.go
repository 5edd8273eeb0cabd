package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// materialsCommand lists the wood species the layout recognizes.
func (c *CLI) materialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the available materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := c.newStudio()
			fmt.Fprintln(out, StyleTitle.Render("Materials"))
			for _, m := range st.Materials() {
				fmt.Fprintf(out, "%s %s %s\n", swatch(m.Hex()), styleKey.Render(m.Key), StyleDim.Render(m.Hex()))
			}
			return nil
		},
	}
}
