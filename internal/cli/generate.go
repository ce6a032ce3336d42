package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/classgen/internal/config"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/scaffold"
	"github.com/example/classgen/internal/watch"
	"github.com/example/classgen/internal/wire"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the declaration and definition files of a class",
		Long: `Generate <Class>.h and <Class>.cpp in the output directory.

Inline spec values come first; sections of the --spec-file are appended
after them. Formatting, compile and syntax checks are optional and never
undo the written files.

Examples:
  classgen generate -n NS::Widget -a "public:count:int=0" -f "public:getCount:int:[]::[const]"
  classgen generate -n Circle -b Shape.h -o Google --compile-check
  classgen generate -n Widget -k widget.cfg --watch`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addSpecFlags(cmd)
	cmd.Flags().StringP("clang-format", "o", "", "Format the output with this clang-format style (LLVM, Google, Chromium, Mozilla, WebKit, None)")
	cmd.Flags().Bool("compile-check", false, "Smoke-compile the definition file")
	cmd.Flags().Bool("syntax-check", false, "Check both files with the built-in C++ parser")
	cmd.Flags().String("output-dir", "", "Directory the files are written to")
	cmd.Flags().Bool("watch", false, "Regenerate whenever the spec file or a base class changes")
	cmd.Flags().Bool("dry-run", false, "Print the files instead of writing them")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := commandSettings(cmd)
	if err != nil {
		return err
	}
	adapter, err := wire.GeneratorAdapterWithOutput(s, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	req := generateRequest(cmd, s)
	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		_, err := adapter.Generate(cmd.Context(), req)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return watch.New().Run(ctx, watchPaths(req.SpecSource), func(ctx context.Context) error {
		_, err := adapter.Generate(ctx, req)
		if err != nil {
			PrintError(cmd.ErrOrStderr(), err)
		}
		return err
	})
}

func generateRequest(cmd *cobra.Command, s *config.Settings) primary.GenerateRequest {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	req := primary.GenerateRequest{
		SpecSource:   specSource(cmd, s),
		OutputDir:    s.OutputDir,
		CompileCheck: s.CompileCheck,
		SyntaxCheck:  s.SyntaxCheck,
		DryRun:       dryRun,
	}
	if s.FormatStyle != nil {
		req.FormatStyle = string(*s.FormatStyle)
	}
	return req
}

// watchPaths lists the files a generation reads: the spec file and every
// base class named inline or in the spec file.
func watchPaths(src primary.SpecSource) []string {
	var paths []string
	bases := src.Raw.BaseClasses

	if src.SpecFile != "" {
		paths = append(paths, src.SpecFile)
		if content, err := os.ReadFile(src.SpecFile); err == nil {
			if fileSpec, err := scaffold.ParseSpecFile(string(content)); err == nil {
				bases = append(append([]string{}, bases...), fileSpec.BaseClasses...)
			}
		}
	}

	for _, b := range bases {
		for _, p := range scaffold.ParseCommaList(b) {
			if src.BaseDir != "" && !filepath.IsAbs(p) {
				p = filepath.Join(src.BaseDir, p)
			}
			paths = append(paths, p)
		}
	}
	return paths
}
