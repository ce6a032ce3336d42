package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write an example spec file and a classgen.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			s, err := commandSettings(cmd)
			if err != nil {
				return err
			}
			adapter, err := wire.GeneratorAdapterWithOutput(s, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Init(cmd.Context(), primary.InitRequest{Dir: dir, Force: force})
			return err
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite existing files")

	return cmd
}
