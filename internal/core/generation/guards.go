// Package generation contains the pure planning logic for a generation run.
// Guards are pure functions that evaluate preconditions without side effects.
package generation

import (
	"fmt"

	"github.com/example/classgen/internal/errors"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return errors.Mark(errors.Newf("%s", r.Reason), errors.ErrStructural)
}

// GenerateContext provides context for generation guards.
type GenerateContext struct {
	ClassName      string
	GenerateHeader bool
	GenerateSource bool
	OutputDir      string
}

// CanGenerate evaluates whether a generation run can write anything.
func CanGenerate(ctx GenerateContext) GuardResult {
	if ctx.ClassName == "" {
		return GuardResult{Allowed: false, Reason: "a class name has to be provided"}
	}
	if !ctx.GenerateHeader && !ctx.GenerateSource {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("nothing to generate for %s: both header and source output are disabled", ctx.ClassName),
		}
	}
	if ctx.OutputDir == "" {
		return GuardResult{Allowed: false, Reason: "output directory is empty"}
	}
	return GuardResult{Allowed: true}
}

// ValidationContext provides context for the optional validation guards.
type ValidationContext struct {
	GenerateSource bool
	CompileCheck   bool
}

// CanCompile evaluates whether the compile check can run.
func CanCompile(ctx ValidationContext) GuardResult {
	if !ctx.CompileCheck {
		return GuardResult{Allowed: false, Reason: "compile check not requested"}
	}
	if !ctx.GenerateSource {
		return GuardResult{Allowed: false, Reason: "compile check skipped: no definition file is generated"}
	}
	return GuardResult{Allowed: true}
}
