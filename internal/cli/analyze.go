package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/wire"
)

// AnalyzeCmd returns the analyze command
func AnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "List the virtual methods a subclass can override",
		Long: `Analyze base-class headers and print, per file, the class name and the
virtual method signatures that are not in the private region.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := commandSettings(cmd)
			if err != nil {
				return err
			}
			adapter, err := wire.GeneratorAdapterWithOutput(s, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Analyze(cmd.Context(), primary.AnalyzeRequest{
				Paths:   args,
				BaseDir: s.BaseDir,
			})
			return err
		},
	}

	cmd.Flags().String("base-dir", "", "Directory the file paths are relative to")

	return cmd
}
