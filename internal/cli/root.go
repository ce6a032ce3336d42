// Package cli contains the classgen cobra commands.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/classgen/internal/config"
	"github.com/example/classgen/internal/logging"
	"github.com/example/classgen/internal/version"
)

// NewRootCmd builds the classgen command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "classgen",
		Short:   "Generate C++ class skeletons",
		Version: version.String(),
		Long: `classgen writes a matching declaration (<Class>.h) and definition
(<Class>.cpp) file from a compact class specification. Virtual methods of
the named base classes are re-derived from their source on every run.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Log progress at debug level")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default: classgen.yaml searched upward)")

	rootCmd.AddCommand(GenerateCmd())
	rootCmd.AddCommand(InspectCmd())
	rootCmd.AddCommand(AnalyzeCmd())
	rootCmd.AddCommand(InitCmd())

	return rootCmd
}

// setup resolves settings, configures logging and stores the settings on
// the command context for RunE.
func setup(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")

	s, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}

	if err := logging.Initialize(logging.Options{Debug: s.Debug, JSON: s.LogJSON}); err != nil {
		return err
	}
	if s.ConfigFile != "" {
		logging.Logger.Debugw("loaded settings", "file", s.ConfigFile)
	}
	for _, w := range s.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.New(color.FgYellow).Sprint("!"), w)
	}

	cmd.SetContext(config.NewContext(cmd.Context(), s))
	return nil
}

// commandSettings returns the settings setup resolved for cmd.
func commandSettings(cmd *cobra.Command) (*config.Settings, error) {
	return config.FromContext(cmd.Context())
}
