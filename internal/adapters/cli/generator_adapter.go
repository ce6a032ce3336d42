package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/scaffold"
)

// Inspect output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// GeneratorAdapter is a thin adapter that translates CLI operations to GeneratorService calls.
// It depends only on the GeneratorService interface, enabling easy testing with mocks.
type GeneratorAdapter struct {
	service primary.GeneratorService
	out     io.Writer
}

// NewGeneratorAdapter creates a new GeneratorAdapter with the given service.
func NewGeneratorAdapter(service primary.GeneratorService, out io.Writer) *GeneratorAdapter {
	return &GeneratorAdapter{
		service: service,
		out:     out,
	}
}

// Generate runs one generation and prints what was written, the warnings
// and the outcome of every validation. A dry run prints the documents.
func (a *GeneratorAdapter) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	resp, err := a.service.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	a.printWarnings(resp.Warnings)

	if req.DryRun {
		for _, f := range resp.Files {
			fmt.Fprintf(a.out, "// ---- %s ----\n", f.Path)
			fmt.Fprint(a.out, f.Content)
			fmt.Fprintln(a.out)
		}
		return resp, nil
	}

	for _, path := range resp.Written {
		fmt.Fprintf(a.out, "%s wrote %s\n", okMark(), path)
	}
	for _, v := range resp.Validations {
		if v.Passed {
			fmt.Fprintf(a.out, "%s %s %s\n", okMark(), v.Tool, v.Path)
			continue
		}
		fmt.Fprintf(a.out, "%s %s %s\n", failMark(), v.Tool, v.Path)
		for _, line := range strings.Split(strings.TrimSpace(v.Detail), "\n") {
			fmt.Fprintf(a.out, "    %s\n", line)
		}
	}
	return resp, nil
}

// Inspect prints the resolved class as YAML or JSON.
func (a *GeneratorAdapter) Inspect(ctx context.Context, req primary.InspectRequest, format string) (*primary.InspectResponse, error) {
	resp, err := a.service.Inspect(ctx, req)
	if err != nil {
		return nil, err
	}

	a.printWarnings(resp.Warnings)
	if err := a.encode(resp.Class, format); err != nil {
		return nil, err
	}
	return resp, nil
}

func (a *GeneratorAdapter) encode(class *scaffold.ClassSpec, format string) error {
	switch strings.ToLower(format) {
	case "", FormatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(class); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(class); err != nil {
			return errors.Wrap(err, "failed to encode json")
		}
		return nil
	default:
		return errors.WithHint(errors.Newf("unknown output format %q", format), "use yaml or json")
	}
}

// Analyze prints the accessible virtuals of each base-class file.
func (a *GeneratorAdapter) Analyze(ctx context.Context, req primary.AnalyzeRequest) (*primary.AnalyzeResponse, error) {
	resp, err := a.service.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	for i, info := range resp.BaseClasses {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "%s (class %s)\n", info.FilePath, info.ClassName)
		if len(info.AccessibleVirtuals) == 0 {
			fmt.Fprintln(a.out, "    (no accessible virtuals)")
			continue
		}
		for _, sig := range info.AccessibleVirtuals {
			fmt.Fprintf(a.out, "    %s\n", sig)
		}
	}
	return resp, nil
}

// Init writes the starter files and lists what it did.
func (a *GeneratorAdapter) Init(ctx context.Context, req primary.InitRequest) (*primary.InitResponse, error) {
	resp, err := a.service.Init(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, path := range resp.Written {
		fmt.Fprintf(a.out, "%s created %s\n", okMark(), path)
	}
	for _, path := range resp.Skipped {
		fmt.Fprintf(a.out, "%s kept %s (exists, use --force to overwrite)\n", skipMark(), path)
	}
	if len(resp.Written) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Next:")
		fmt.Fprintln(a.out, "  classgen generate -n Widget -k example.cfg")
	}
	return resp, nil
}

func (a *GeneratorAdapter) printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(a.out, "%s %s\n", warnMark(), w)
	}
}

// Marks are rendered per call so color.NoColor is honored when set late.
func okMark() string   { return color.New(color.FgGreen).Sprint("✓") }
func warnMark() string { return color.New(color.FgYellow).Sprint("!") }
func failMark() string { return color.New(color.FgRed).Sprint("✗") }
func skipMark() string { return color.New(color.FgBlue).Sprint("-") }
