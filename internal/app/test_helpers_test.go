package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/example/classgen/internal/core/effects"
	"github.com/example/classgen/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.Workspace     = (*mockWorkspace)(nil)
	_ secondary.Toolchain     = (*mockToolchain)(nil)
	_ secondary.SyntaxChecker = (*mockSyntaxChecker)(nil)
	_ EffectExecutor          = (*mockEffectExecutor)(nil)
)

// mockWorkspace implements secondary.Workspace over an in-memory file map.
type mockWorkspace struct {
	files     map[string][]byte
	dirs      map[string]bool
	readErr   error
	writeErr  error
	mkdirErr  error
	existsErr error
}

func newMockWorkspace() *mockWorkspace {
	return &mockWorkspace{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *mockWorkspace) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return content, nil
}

func (m *mockWorkspace) FileExists(ctx context.Context, path string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.files[filepath.Clean(path)]
	return ok, nil
}

func (m *mockWorkspace) CreateDirectory(ctx context.Context, path string, mode os.FileMode) error {
	if m.mkdirErr != nil {
		return m.mkdirErr
	}
	m.dirs[filepath.Clean(path)] = true
	return nil
}

func (m *mockWorkspace) WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[filepath.Clean(path)] = content
	return nil
}

// mockToolchain records every formatter and compiler invocation.
type mockToolchain struct {
	formatted  []string
	compiled   []string
	includes   []string
	formatErr  error
	compileErr error
}

func newMockToolchain() *mockToolchain {
	return &mockToolchain{}
}

func (m *mockToolchain) Format(ctx context.Context, path, style string) error {
	m.formatted = append(m.formatted, path)
	return m.formatErr
}

func (m *mockToolchain) Compile(ctx context.Context, path string, includeDirs []string) error {
	m.compiled = append(m.compiled, path)
	m.includes = includeDirs
	return m.compileErr
}

// mockSyntaxChecker returns a fixed report for every file.
type mockSyntaxChecker struct {
	checked []string
	report  secondary.SyntaxReport
	err     error
}

func (m *mockSyntaxChecker) CheckSyntax(ctx context.Context, path string, content []byte) (*secondary.SyntaxReport, error) {
	m.checked = append(m.checked, path)
	if m.err != nil {
		return nil, m.err
	}
	report := m.report
	return &report, nil
}

// mockEffectExecutor records effects and applies file effects to a
// workspace so the service sees its own writes.
type mockEffectExecutor struct {
	executedEffects []effects.Effect
	executeErr      error
	workspace       *mockWorkspace
}

func newMockEffectExecutor(ws *mockWorkspace) *mockEffectExecutor {
	return &mockEffectExecutor{
		executedEffects: []effects.Effect{},
		workspace:       ws,
	}
}

func (m *mockEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) (*ExecutionReport, error) {
	if m.executeErr != nil {
		return nil, m.executeErr
	}
	m.executedEffects = append(m.executedEffects, effs...)
	for _, eff := range effs {
		if f, ok := eff.(effects.FileEffect); ok && f.Operation == "write" && m.workspace != nil {
			m.workspace.files[filepath.Clean(f.Path)] = f.Content
		}
	}
	return &ExecutionReport{}, nil
}

func (m *mockEffectExecutor) fileEffects(op string) []effects.FileEffect {
	var out []effects.FileEffect
	for _, eff := range m.executedEffects {
		if f, ok := eff.(effects.FileEffect); ok && f.Operation == op {
			out = append(out, f)
		}
	}
	return out
}

func (m *mockEffectExecutor) validationEffects() []effects.ValidationEffect {
	var out []effects.ValidationEffect
	for _, eff := range m.executedEffects {
		if v, ok := eff.(effects.ValidationEffect); ok {
			out = append(out, v)
		}
	}
	return out
}

var errMock = errors.New("mock failure")
