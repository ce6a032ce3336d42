package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/classgen/internal/config"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/scaffold"
)

// addSpecFlags registers the flags that describe a class.
func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Class name, optionally namespaced (NS::Widget)")
	cmd.Flags().StringArrayP("baseclass", "b", nil, "Base-class header file (repeatable or comma separated)")
	cmd.Flags().StringP("attributes", "a", "", "Attributes: visibility:name:type[=default], ...")
	cmd.Flags().StringP("functions", "f", "", "Functions: visibility:name:returntype:[params]:[pre]:[post]:[template], ...")
	cmd.Flags().StringP("template", "t", "", "Class template parameters (T,int N)")
	cmd.Flags().StringArrayP("include", "i", nil, "Extra include (repeatable or comma separated)")
	cmd.Flags().StringP("spec-file", "k", "", "Spec config file with --baseclass, --attributes and --functions sections")
	cmd.Flags().BoolP("empty", "e", false, "Do not generate the default special members")
	cmd.Flags().Bool("no-header", false, "Do not generate the declaration file")
	cmd.Flags().Bool("no-source", false, "Do not generate the definition file")
	cmd.Flags().String("base-dir", "", "Directory base-class paths are relative to")
	cmd.Flags().Bool("strict", false, "Fail on a malformed attribute, function or spec file section")
}

// rawSpec reads the spec flags. Settings-backed flags (base-dir, strict)
// are read from the resolved settings instead.
func rawSpec(cmd *cobra.Command) scaffold.RawSpec {
	f := cmd.Flags()
	name, _ := f.GetString("name")
	bases, _ := f.GetStringArray("baseclass")
	attrs, _ := f.GetString("attributes")
	funcs, _ := f.GetString("functions")
	tmpl, _ := f.GetString("template")
	includes, _ := f.GetStringArray("include")
	empty, _ := f.GetBool("empty")
	noHeader, _ := f.GetBool("no-header")
	noSource, _ := f.GetBool("no-source")

	return scaffold.RawSpec{
		Name:        name,
		BaseClasses: bases,
		Attributes:  attrs,
		Functions:   funcs,
		Template:    tmpl,
		Includes:    includes,
		NoHeader:    noHeader,
		NoSource:    noSource,
		Empty:       empty,
	}
}

func specSource(cmd *cobra.Command, s *config.Settings) primary.SpecSource {
	specFile, _ := cmd.Flags().GetString("spec-file")
	return primary.SpecSource{
		Raw:      rawSpec(cmd),
		SpecFile: specFile,
		BaseDir:  s.BaseDir,
		Strict:   s.Strict,
	}
}
