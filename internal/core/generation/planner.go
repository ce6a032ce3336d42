package generation

import (
	"fmt"
	"path/filepath"

	"github.com/example/classgen/internal/core/effects"
	"github.com/example/classgen/internal/scaffold"
)

// PlanInput contains the composed documents and the resolved validation
// settings for one run.
type PlanInput struct {
	OutputDir    string
	BaseDir      string
	Files        []scaffold.GeneratedFile
	FormatStyle  string // "" disables formatting
	CompileCheck bool   // already guarded by CanCompile
	SyntaxCheck  bool
}

// Plan represents the planned effects for a generation run.
type Plan struct {
	OutputDir     string
	Written       []string
	FilesystemOps []effects.FileEffect
	ValidationOps []effects.ValidationEffect
	LogOps        []effects.LogEffect
}

// Effects returns all effects as a flat slice for execution. Writes come
// first so validation always runs against files that are on disk.
func (p Plan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.LogOps)+len(p.FilesystemOps)+len(p.ValidationOps))
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	for _, e := range p.FilesystemOps {
		result = append(result, e)
	}
	for _, e := range p.ValidationOps {
		result = append(result, e)
	}
	return result
}

// GeneratePlan creates the plan for writing and validating generated files.
// This is a pure function; the documents are already composed.
func GeneratePlan(input PlanInput) Plan {
	plan := Plan{OutputDir: input.OutputDir}

	if len(input.Files) == 0 {
		return plan
	}

	plan.FilesystemOps = append(plan.FilesystemOps, effects.FileEffect{
		Operation: "mkdir",
		Path:      input.OutputDir,
		Mode:      0755,
	})

	var sources []string
	for _, f := range input.Files {
		path := filepath.Join(input.OutputDir, f.Path)
		plan.LogOps = append(plan.LogOps, effects.LogEffect{
			Level:   "debug",
			Message: fmt.Sprintf("generating %s", f.Kind),
			Fields:  map[string]any{"path": path},
		})
		plan.FilesystemOps = append(plan.FilesystemOps, effects.FileEffect{
			Operation: "write",
			Path:      path,
			Content:   []byte(f.Content),
			Mode:      0644,
		})
		plan.Written = append(plan.Written, path)
		if f.Kind == "source" {
			sources = append(sources, path)
		}
	}

	if input.FormatStyle != "" {
		plan.ValidationOps = append(plan.ValidationOps, effects.ValidationEffect{
			Tool:  effects.ToolFormat,
			Paths: plan.Written,
			Style: input.FormatStyle,
		})
	}

	if input.CompileCheck && len(sources) > 0 {
		plan.ValidationOps = append(plan.ValidationOps, effects.ValidationEffect{
			Tool:        effects.ToolCompile,
			Paths:       sources,
			IncludeDirs: includeDirs(input.BaseDir, input.OutputDir),
		})
	}

	if input.SyntaxCheck {
		plan.ValidationOps = append(plan.ValidationOps, effects.ValidationEffect{
			Tool:  effects.ToolSyntax,
			Paths: plan.Written,
		})
	}

	return plan
}

func includeDirs(baseDir, outputDir string) []string {
	dirs := []string{outputDir}
	if baseDir != "" && filepath.Clean(baseDir) != filepath.Clean(outputDir) {
		dirs = append(dirs, baseDir)
	}
	return dirs
}

// StarterFile is one file written by init.
type StarterFile struct {
	Name    string
	Content string
}

// InitPlanInput contains pre-fetched data for writing starter files.
type InitPlanInput struct {
	Dir      string
	Files    []StarterFile
	Existing map[string]bool // keyed by full path
	Force    bool
}

// InitPlan represents the planned effects for init.
type InitPlan struct {
	Written       []string
	Skipped       []string
	FilesystemOps []effects.FileEffect
}

// Effects returns all effects as a flat slice for execution.
func (p InitPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.FilesystemOps))
	for _, e := range p.FilesystemOps {
		result = append(result, e)
	}
	return result
}

// GenerateInitPlan plans the starter files. Existing files are kept unless
// Force is set.
func GenerateInitPlan(input InitPlanInput) InitPlan {
	var plan InitPlan
	for _, f := range input.Files {
		path := filepath.Join(input.Dir, f.Name)
		if input.Existing[path] && !input.Force {
			plan.Skipped = append(plan.Skipped, path)
			continue
		}
		plan.FilesystemOps = append(plan.FilesystemOps, effects.FileEffect{
			Operation: "write",
			Path:      path,
			Content:   []byte(f.Content),
			Mode:      0644,
		})
		plan.Written = append(plan.Written, path)
	}
	if len(plan.FilesystemOps) > 0 {
		plan.FilesystemOps = append([]effects.FileEffect{{Operation: "mkdir", Path: input.Dir, Mode: 0755}}, plan.FilesystemOps...)
	}
	return plan
}
