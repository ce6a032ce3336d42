// Package toolchain runs the external C++ formatter and compiler.
package toolchain

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/logging"
	"github.com/example/classgen/internal/ports/secondary"
)

// StyleFile selects the nearest .clang-format file instead of a named style.
const StyleFile = "None"

// Adapter implements secondary.Toolchain with exec.CommandContext.
type Adapter struct {
	formatter []string
	compiler  []string
}

// NewAdapter parses the formatter and compiler command templates. Either
// may be empty, in which case the matching operation fails when called.
func NewAdapter(formatterCmd, compilerCmd string) (*Adapter, error) {
	formatter, err := shellquote.Split(formatterCmd)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid formatter command %q", formatterCmd)
	}
	compiler, err := shellquote.Split(compilerCmd)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid compiler command %q", compilerCmd)
	}
	return &Adapter{formatter: formatter, compiler: compiler}, nil
}

// StyleArg maps a style name to the clang-format flag.
func StyleArg(style string) string {
	if style == StyleFile {
		return "-style=file"
	}
	return "-style=" + style
}

// Format runs the formatter in place on path.
func (a *Adapter) Format(ctx context.Context, path, style string) error {
	if len(a.formatter) == 0 {
		return errors.New("no formatter command configured")
	}

	args := append(append([]string{}, a.formatter[1:]...), "-i", StyleArg(style), path)
	logging.Logger.Debugw("calling formatter", "cmd", a.formatter[0], "args", args)

	return run(exec.CommandContext(ctx, a.formatter[0], args...))
}

// Compile compiles path inside a throwaway directory so the object file is
// removed together with it.
func (a *Adapter) Compile(ctx context.Context, path string, includeDirs []string) error {
	if len(a.compiler) == 0 {
		return errors.New("no compiler command configured")
	}

	src, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}

	tmpDir, err := os.MkdirTemp("", "classgen-compile-*")
	if err != nil {
		return errors.Wrap(err, "failed to create compile directory")
	}
	defer os.RemoveAll(tmpDir)

	args := append([]string{}, a.compiler[1:]...)
	for _, dir := range includeDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve include dir %s", dir)
		}
		args = append(args, "-I"+abs)
	}
	obj := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".o"
	args = append(args, src, "-o", filepath.Join(tmpDir, obj))

	logging.Logger.Debugw("compile test", "cmd", a.compiler[0], "args", args)

	cmd := exec.CommandContext(ctx, a.compiler[0], args...)
	cmd.Dir = tmpDir
	return run(cmd)
}

func run(cmd *exec.Cmd) error {
	output, err := cmd.CombinedOutput()
	if err != nil {
		out := strings.TrimSpace(string(output))
		if out == "" {
			return errors.Wrapf(err, "%s failed", filepath.Base(cmd.Path))
		}
		return errors.WithDetail(errors.Wrapf(err, "%s failed", filepath.Base(cmd.Path)), out)
	}
	return nil
}

// Ensure Adapter implements the interface
var _ secondary.Toolchain = (*Adapter)(nil)
