// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import (
	"context"
	"os"
)

// Workspace defines the secondary port for reading inputs and writing
// generated files.
type Workspace interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	FileExists(ctx context.Context, path string) (bool, error)

	// CreateDirectory creates path and any missing parents.
	CreateDirectory(ctx context.Context, path string, mode os.FileMode) error

	// WriteFile replaces path atomically: readers see the old content or
	// the new content, never a partial write.
	WriteFile(ctx context.Context, path string, content []byte, mode os.FileMode) error
}
