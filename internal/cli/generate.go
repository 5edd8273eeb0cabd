package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/casework/pkg/layout"
	"github.com/chazu/casework/pkg/prompt"
)

// generateCommand creates the generate command, which lays out a cabinet
// and prints its property sheet.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags        specFlags
		output       string
		measurements bool
	)

	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Lay out a cabinet from a description",
		Long: `Lay out a cabinet from a description.

The cabinet comes from the prompt words, a --lisp file, or the defaults, and
any explicit flag overrides it. With -o the full layout (every part with its
size, position and material) is written as JSON.`,
		Example: `  casework generate 48 wide walnut kitchen cabinet with 3 drawers
  casework generate --type tall --shelves 5 -o pantry.json
  casework generate --lisp examples/vanity.lisp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := c.newStudio()

			spec, err := resolveSpec(cmd, st, args, &flags)
			if err != nil {
				return err
			}
			m, err := st.Generate(spec)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			if _, ok := st.Catalog().Lookup(spec.Material); !ok {
				printWarning(out, "unknown material %q, using %s", spec.Material, m.Material().Name)
			}
			printSuccess(out, "Generated %s", prompt.Summary(m.Spec()))
			printDetail(out, "%s", layout.Describe(m))

			if measurements {
				for _, ms := range m.Measurements() {
					printKeyValue(out, string(ms.Kind), ms.Label)
				}
			}

			if output != "" {
				data, err := json.MarshalIndent(m, "", "  ")
				if err != nil {
					return fmt.Errorf("encode model: %w", err)
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
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&measurements, "measurements", false, "print the dimension labels")

	return cmd
}

// propertiesCommand creates the properties command.
func (c *CLI) propertiesCommand() *cobra.Command {
	var flags specFlags

	cmd := &cobra.Command{
		Use:   "properties [prompt...]",
		Short: "Show the property sheet of a cabinet",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := c.newStudio()

			spec, err := resolveSpec(cmd, st, args, &flags)
			if err != nil {
				return err
			}
			if _, err := st.Generate(spec); err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			props, err := st.Properties()
			if err != nil {
				return err
			}
			printProperties(out, "Cabinet Properties", props)
			return nil
		},
	}

	addSpecFlags(cmd, &flags)
	return cmd
}
