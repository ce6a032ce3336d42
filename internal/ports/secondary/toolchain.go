package secondary

import "context"

// Toolchain defines the secondary port for the external C++ tools.
type Toolchain interface {
	// Format reformats path in place with the given clang-format style.
	Format(ctx context.Context, path, style string) error

	// Compile smoke-compiles path without leaving artifacts behind.
	Compile(ctx context.Context, path string, includeDirs []string) error
}

// SyntaxError is one error or missing node reported by the parser.
type SyntaxError struct {
	Line    int // 1-based
	Column  int // 1-based
	Snippet string
}

// SyntaxReport is the result of an in-process syntax check.
type SyntaxReport struct {
	Errors []SyntaxError
}

// SyntaxChecker defines the secondary port for in-process syntax checks.
type SyntaxChecker interface {
	CheckSyntax(ctx context.Context, path string, content []byte) (*SyntaxReport, error)
}
