// Package wire provides dependency injection for classgen.
// Shared adapters are created lazily; services are built per settings value.
package wire

import (
	"io"
	"sync"

	cliadapter "github.com/example/classgen/internal/adapters/cli"
	"github.com/example/classgen/internal/adapters/filesystem"
	"github.com/example/classgen/internal/adapters/toolchain"
	"github.com/example/classgen/internal/adapters/treesitter"
	"github.com/example/classgen/internal/app"
	"github.com/example/classgen/internal/config"
	"github.com/example/classgen/internal/ports/primary"
)

var (
	workspace *filesystem.WorkspaceAdapter
	syntax    *treesitter.Checker
	once      sync.Once
)

// initShared creates the adapters that do not depend on settings.
// This is called once via sync.Once.
func initShared() {
	workspace = filesystem.NewWorkspaceAdapter()
	syntax = treesitter.NewChecker()
}

// GeneratorService returns a GeneratorService built from s. The toolchain
// follows s; the workspace and syntax checker are shared singletons.
func GeneratorService(s *config.Settings) (primary.GeneratorService, error) {
	once.Do(initShared)

	formatter, compiler := config.DefaultFormatter, config.DefaultCompiler
	if s != nil {
		formatter, compiler = s.Formatter, s.Compiler
	}
	tools, err := toolchain.NewAdapter(formatter, compiler)
	if err != nil {
		return nil, err
	}

	// Effect executor owns all generation I/O
	executor := app.NewEffectExecutor(workspace, tools, syntax)

	return app.NewGeneratorService(workspace, executor), nil
}

// GeneratorAdapterWithOutput returns a new GeneratorAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func GeneratorAdapterWithOutput(s *config.Settings, out io.Writer) (*cliadapter.GeneratorAdapter, error) {
	service, err := GeneratorService(s)
	if err != nil {
		return nil, err
	}
	return cliadapter.NewGeneratorAdapter(service, out), nil
}
