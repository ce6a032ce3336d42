// Package effects defines effect types as data structures representing I/O operations.
// Planners in the core return effects; the app layer interprets them.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // "mkdir" or "write"
	Path      string
	Content   []byte // For write operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// Validation tools.
const (
	ToolFormat  = "format"
	ToolCompile = "compile"
	ToolSyntax  = "syntax"
)

// ValidationEffect runs a checker over generated files. A failing
// validation never undoes the writes that preceded it.
type ValidationEffect struct {
	Tool        string   // ToolFormat, ToolCompile or ToolSyntax
	Paths       []string // files to check
	Style       string   // formatter style, ToolFormat only
	IncludeDirs []string // compiler -I directories, ToolCompile only
}

func (e ValidationEffect) EffectType() string { return "validation" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
