package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/classgen/internal/adapters/cli"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/wire"
)

// InspectCmd returns the inspect command
func InspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the resolved class specification",
		Long: `Resolve a class specification exactly as generate would, including the
virtuals derived from its base classes, and print it without writing files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			s, err := commandSettings(cmd)
			if err != nil {
				return err
			}
			adapter, err := wire.GeneratorAdapterWithOutput(s, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Inspect(cmd.Context(), primary.InspectRequest{SpecSource: specSource(cmd, s)}, format)
			return err
		},
	}

	addSpecFlags(cmd)
	cmd.Flags().String("format", cliadapter.FormatYAML, "Output format (yaml, json)")

	return cmd
}
