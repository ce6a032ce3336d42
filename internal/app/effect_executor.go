// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/example/classgen/internal/core/effects"
	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/logging"
	"github.com/example/classgen/internal/ports/primary"
	"github.com/example/classgen/internal/ports/secondary"
)

// ExecutionReport collects the outcome of validation effects.
type ExecutionReport struct {
	Validations []primary.ValidationResult
}

// EffectExecutor interprets and executes effects.
// This is the only place generation I/O happens.
type EffectExecutor interface {
	// Execute runs effects in order. File effects stop execution on the
	// first failure; validation failures are reported, never returned.
	Execute(ctx context.Context, effs []effects.Effect) (*ExecutionReport, error)
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	workspace secondary.Workspace
	toolchain secondary.Toolchain     // may be nil
	syntax    secondary.SyntaxChecker // may be nil
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(workspace secondary.Workspace, toolchain secondary.Toolchain, syntax secondary.SyntaxChecker) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		workspace: workspace,
		toolchain: toolchain,
		syntax:    syntax,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) (*ExecutionReport, error) {
	report := &ExecutionReport{}
	if err := e.execute(ctx, effs, report); err != nil {
		return report, err
	}
	return report, nil
}

func (e *DefaultEffectExecutor) execute(ctx context.Context, effs []effects.Effect, report *ExecutionReport) error {
	for _, eff := range effs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.executeOne(ctx, eff, report); err != nil {
			return errors.Wrapf(err, "failed to execute %s effect", eff.EffectType())
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect, report *ExecutionReport) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.ValidationEffect:
		report.Validations = append(report.Validations, e.executeValidation(ctx, typed)...)
		return nil
	case effects.CompositeEffect:
		return e.execute(ctx, typed.Effects, report)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case "mkdir":
		return e.workspace.CreateDirectory(ctx, eff.Path, os.FileMode(eff.Mode))
	case "write":
		return e.workspace.WriteFile(ctx, eff.Path, eff.Content, os.FileMode(eff.Mode))
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeValidation(ctx context.Context, eff effects.ValidationEffect) []primary.ValidationResult {
	results := make([]primary.ValidationResult, 0, len(eff.Paths))
	for _, path := range eff.Paths {
		var err error
		switch eff.Tool {
		case effects.ToolFormat:
			err = e.format(ctx, path, eff.Style)
		case effects.ToolCompile:
			err = e.compile(ctx, path, eff.IncludeDirs)
		case effects.ToolSyntax:
			err = e.checkSyntax(ctx, path)
		default:
			err = fmt.Errorf("unknown validation tool: %s", eff.Tool)
		}

		result := primary.ValidationResult{Tool: eff.Tool, Path: path, Passed: err == nil}
		if err != nil {
			err = errors.Validation(err, eff.Tool)
			result.Detail = describe(err)
			logging.Logger.Warnw("validation failed", "tool", eff.Tool, "path", path, "error", err)
		}
		results = append(results, result)
	}
	return results
}

func (e *DefaultEffectExecutor) format(ctx context.Context, path, style string) error {
	if e.toolchain == nil {
		return errors.New("no toolchain configured")
	}
	return e.toolchain.Format(ctx, path, style)
}

func (e *DefaultEffectExecutor) compile(ctx context.Context, path string, includeDirs []string) error {
	if e.toolchain == nil {
		return errors.New("no toolchain configured")
	}
	return e.toolchain.Compile(ctx, path, includeDirs)
}

func (e *DefaultEffectExecutor) checkSyntax(ctx context.Context, path string) error {
	if e.syntax == nil {
		return errors.New("no syntax checker configured")
	}
	// Read back from disk: the formatter may have rewritten the file.
	content, err := e.workspace.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	report, err := e.syntax.CheckSyntax(ctx, path, content)
	if err != nil {
		return err
	}
	if len(report.Errors) == 0 {
		return nil
	}

	first := report.Errors[0]
	return errors.Newf("%d syntax error(s), first at %d:%d near %q",
		len(report.Errors), first.Line, first.Column, first.Snippet)
}

func executeLog(eff effects.LogEffect) {
	kv := make([]any, 0, 2*len(eff.Fields))
	for k, v := range eff.Fields {
		kv = append(kv, k, v)
	}
	switch eff.Level {
	case "debug":
		logging.Logger.Debugw(eff.Message, kv...)
	case "warn":
		logging.Logger.Warnw(eff.Message, kv...)
	case "error":
		logging.Logger.Errorw(eff.Message, kv...)
	default:
		logging.Logger.Infow(eff.Message, kv...)
	}
}

// describe renders a validation error with the tool output attached as details.
func describe(err error) string {
	msg := err.Error()
	if details := strings.TrimSpace(errors.FlattenDetails(err)); details != "" {
		msg += "\n" + details
	}
	return msg
}
