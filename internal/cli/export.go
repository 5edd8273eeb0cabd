package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/casework/pkg/report"
)

// exportCommand creates the export command, which writes the plain-text
// design document with its material requirements.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags  specFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [prompt...]",
		Short: "Write the design document for a cabinet",
		Long: `Write the design document for a cabinet: its properties and the material
requirements (plywood, edge banding, hinges, handles, drawer slides).

The document is written to cabinet-design-<timestamp>.txt unless -o names a
file; -o - writes it to stdout.`,
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
			text, err := st.Export()
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := io.WriteString(out, text)
				return err
			}
			path := output
			if path == "" {
				path = report.FileName(time.Now())
			}
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}
			printSuccess(out, "Exported design")
			printFile(out, path)
			return nil
		},
	}

	addSpecFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: cabinet-design-<timestamp>.txt)")

	return cmd
}
