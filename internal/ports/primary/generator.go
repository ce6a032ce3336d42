package primary

import (
	"context"

	"github.com/example/classgen/internal/scaffold"
)

// GeneratorService defines the primary port for class generation.
type GeneratorService interface {
	// Generate parses a specification, analyzes its base classes and writes
	// the declaration and definition files.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Inspect resolves a specification without writing anything.
	Inspect(ctx context.Context, req InspectRequest) (*InspectResponse, error)

	// Analyze reports the accessible virtuals of base-class files.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// Init writes an example spec file and a settings file.
	Init(ctx context.Context, req InitRequest) (*InitResponse, error)
}

// SpecSource is a specification as given by the user: inline values plus an
// optional spec config file appended after them.
type SpecSource struct {
	Raw      scaffold.RawSpec
	SpecFile string // optional
	BaseDir  string // base-class paths are relative to this directory
	Strict   bool
}

// GenerateRequest contains parameters for a generation run.
type GenerateRequest struct {
	SpecSource
	OutputDir    string
	FormatStyle  string // "" disables formatting; "None" uses the nearest .clang-format
	CompileCheck bool
	SyntaxCheck  bool
	DryRun       bool
}

// ValidationResult is the outcome of one optional check on one file.
type ValidationResult struct {
	Tool   string
	Path   string
	Passed bool
	Detail string
}

// GenerateResponse contains the result of a generation run.
type GenerateResponse struct {
	Class       *scaffold.ClassSpec
	Files       []scaffold.GeneratedFile
	Written     []string // empty on a dry run
	Warnings    []string
	Validations []ValidationResult
}

// InspectRequest contains parameters for resolving a specification.
type InspectRequest struct {
	SpecSource
}

// InspectResponse contains a resolved specification.
type InspectResponse struct {
	Class    *scaffold.ClassSpec
	Warnings []string
}

// AnalyzeRequest contains the base-class files to analyze.
type AnalyzeRequest struct {
	Paths   []string
	BaseDir string
}

// AnalyzeResponse contains one entry per analyzed file, in request order.
type AnalyzeResponse struct {
	BaseClasses []scaffold.BaseClassInfo
}

// InitRequest contains parameters for writing starter files.
type InitRequest struct {
	Dir   string
	Force bool
}

// InitResponse lists what Init wrote and what it left alone.
type InitResponse struct {
	Written []string
	Skipped []string
}
