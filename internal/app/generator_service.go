package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/example/classgen/internal/core/baseclass"
	"github.com/example/classgen/internal/core/generation"
	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/logging"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/ports/secondary"
	"github.com/example/classgen/internal/scaffold"
	"github.com/example/classgen/internal/templates"
)

// GeneratorServiceImpl implements the GeneratorService interface.
type GeneratorServiceImpl struct {
	workspace secondary.Workspace
	executor  EffectExecutor
	generator *scaffold.Generator
}

// NewGeneratorService creates a new GeneratorService with injected dependencies.
func NewGeneratorService(workspace secondary.Workspace, executor EffectExecutor) *GeneratorServiceImpl {
	return &GeneratorServiceImpl{
		workspace: workspace,
		executor:  executor,
		generator: scaffold.NewGenerator(),
	}
}

// Generate resolves the spec, composes both documents and writes them.
func (s *GeneratorServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.GenerateResponse, error) {
	// 1. Resolve spec and analyze base classes
	spec, warnings, err := s.resolve(ctx, req.SpecSource)
	if err != nil {
		return nil, err
	}

	// 2. Guard check
	guardCtx := generation.GenerateContext{
		ClassName:      spec.Name,
		GenerateHeader: spec.GenerateHeader,
		GenerateSource: spec.GenerateSource,
		OutputDir:      req.OutputDir,
	}
	if result := generation.CanGenerate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 3. Compose
	logging.Logger.Debugw("composing class", "class", spec.Name, "namespace", spec.Namespace)
	result, err := s.generator.Generate(spec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compose output")
	}
	warnings = append(warnings, result.Warnings...)

	resp := &primary.GenerateResponse{
		Class:    spec,
		Files:    result.Files,
		Warnings: warnings,
	}
	if req.DryRun {
		return resp, nil
	}

	// 4. Plan writes and validation
	compileCheck := false
	if req.CompileCheck {
		check := generation.CanCompile(generation.ValidationContext{
			GenerateSource: spec.GenerateSource,
			CompileCheck:   true,
		})
		if check.Allowed {
			compileCheck = true
		} else {
			resp.Warnings = append(resp.Warnings, check.Reason)
		}
	}

	plan := generation.GeneratePlan(generation.PlanInput{
		OutputDir:    req.OutputDir,
		BaseDir:      req.BaseDir,
		Files:        result.Files,
		FormatStyle:  req.FormatStyle,
		CompileCheck: compileCheck,
		SyntaxCheck:  req.SyntaxCheck,
	})

	// 5. Execute
	report, err := s.executor.Execute(ctx, plan.Effects())
	if err != nil {
		return nil, errors.Wrap(err, "failed to write generated files")
	}
	resp.Written = plan.Written
	if report != nil {
		resp.Validations = report.Validations
	}

	return resp, nil
}

// Inspect resolves the spec without writing anything.
func (s *GeneratorServiceImpl) Inspect(ctx context.Context, req primary.InspectRequest) (*primary.InspectResponse, error) {
	spec, warnings, err := s.resolve(ctx, req.SpecSource)
	if err != nil {
		return nil, err
	}
	return &primary.InspectResponse{Class: spec, Warnings: warnings}, nil
}

// Analyze reports the accessible virtuals of each file.
func (s *GeneratorServiceImpl) Analyze(ctx context.Context, req primary.AnalyzeRequest) (*primary.AnalyzeResponse, error) {
	if len(req.Paths) == 0 {
		return nil, errors.WithHint(errors.New("no base-class files given"), "pass one or more header paths")
	}

	infos, err := s.analyzeBases(ctx, req.BaseDir, req.Paths)
	if err != nil {
		return nil, err
	}
	return &primary.AnalyzeResponse{BaseClasses: infos}, nil
}

// Init writes the starter spec config and settings files.
func (s *GeneratorServiceImpl) Init(ctx context.Context, req primary.InitRequest) (*primary.InitResponse, error) {
	dir := req.Dir
	if dir == "" {
		dir = "."
	}

	spec, err := templates.GetExampleSpec()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load example spec template")
	}
	settings, err := templates.GetSettingsFile()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings template")
	}
	files := []generation.StarterFile{
		{Name: "example.cfg", Content: spec},
		{Name: "classgen.yaml", Content: settings},
	}

	existing := make(map[string]bool)
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		exists, err := s.workspace.FileExists(ctx, path)
		if err != nil {
			return nil, err
		}
		existing[path] = exists
	}

	plan := generation.GenerateInitPlan(generation.InitPlanInput{
		Dir:      dir,
		Files:    files,
		Existing: existing,
		Force:    req.Force,
	})
	if _, err := s.executor.Execute(ctx, plan.Effects()); err != nil {
		return nil, errors.Wrap(err, "failed to write starter files")
	}

	return &primary.InitResponse{Written: plan.Written, Skipped: plan.Skipped}, nil
}

// resolve merges the inline spec with the spec config file, builds the
// ClassSpec and fills in the analyzed base classes.
func (s *GeneratorServiceImpl) resolve(ctx context.Context, src primary.SpecSource) (*scaffold.ClassSpec, []string, error) {
	var warnings []string

	raw := src.Raw
	if src.SpecFile != "" {
		fileSpec, err := s.readSpecFile(ctx, src.SpecFile)
		switch {
		case err == nil:
			raw = raw.Merge(fileSpec)
		case src.Strict || !errors.Is(err, errors.ErrStructural):
			return nil, nil, err
		default:
			warnings = append(warnings, fmt.Sprintf("spec file ignored: %v", err))
		}
	}

	spec, buildWarnings, err := scaffold.BuildClassSpec(raw, scaffold.BuildOptions{Strict: src.Strict})
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, buildWarnings...)

	paths := make([]string, len(spec.BaseClasses))
	for i, b := range spec.BaseClasses {
		paths[i] = b.FilePath
	}
	infos, err := s.analyzeBases(ctx, src.BaseDir, paths)
	if err != nil {
		return nil, nil, err
	}

	return spec.WithBaseClasses(infos), warnings, nil
}

func (s *GeneratorServiceImpl) readSpecFile(ctx context.Context, path string) (scaffold.RawSpec, error) {
	logging.Logger.Debugw("reading spec file", "path", path)
	content, err := s.workspace.ReadFile(ctx, path)
	if err != nil {
		return scaffold.RawSpec{}, errors.WithHint(
			errors.Mark(errors.Wrapf(err, "spec file %s could not be read", path), errors.ErrStructural),
			"check the --spec-file path",
		)
	}
	spec, err := scaffold.ParseSpecFile(string(content))
	if err != nil {
		return scaffold.RawSpec{}, errors.Wrapf(err, "spec file %s", path)
	}
	return spec, nil
}

// analyzeBases reads and analyzes every base-class file. Any failure is
// fatal for the run.
func (s *GeneratorServiceImpl) analyzeBases(ctx context.Context, baseDir string, paths []string) ([]scaffold.BaseClassInfo, error) {
	infos := make([]scaffold.BaseClassInfo, 0, len(paths))
	for _, p := range paths {
		full := resolveBasePath(baseDir, p)

		logging.Logger.Debugw("reading base class", "path", full)
		content, err := s.workspace.ReadFile(ctx, full)
		if err != nil {
			return nil, errors.WithHint(errors.BaseClass(err, p), "base-class paths are relative to base_dir")
		}

		logging.Logger.Debugw("computing access parameter areas", "path", full)
		analysis, err := baseclass.Analyze(content)
		if err != nil {
			return nil, errors.BaseClass(err, p)
		}
		logging.Logger.Debugw("base class analyzed",
			"class", analysis.ClassName,
			"virtuals", len(analysis.Virtuals),
			"accessible", len(analysis.Signatures),
		)

		infos = append(infos, analysis.Info(p))
	}
	return infos, nil
}

func resolveBasePath(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Ensure GeneratorServiceImpl implements the interface
var _ primary.GeneratorService = (*GeneratorServiceImpl)(nil)
