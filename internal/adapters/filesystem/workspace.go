// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"os"
	"path/filepath"

	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/ports/secondary"
)

// WorkspaceAdapter implements secondary.Workspace on the local filesystem.
type WorkspaceAdapter struct{}

// NewWorkspaceAdapter creates a new filesystem workspace adapter.
func NewWorkspaceAdapter() *WorkspaceAdapter {
	return &WorkspaceAdapter{}
}

// ReadFile reads path fully.
func (a *WorkspaceAdapter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return content, nil
}

// FileExists checks if a regular file exists at path.
func (a *WorkspaceAdapter) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to check %s", path)
	}
	return info.Mode().IsRegular(), nil
}

// CreateDirectory creates a directory with all parent directories.
func (a *WorkspaceAdapter) CreateDirectory(ctx context.Context, path string, mode os.FileMode) error {
	if err := os.MkdirAll(path, mode); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}
	return nil
}

// WriteFile writes content to a temporary file next to path and renames it
// into place, so an interrupted run never leaves a truncated file.
func (a *WorkspaceAdapter) WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to set mode on %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.Workspace = (*WorkspaceAdapter)(nil)
