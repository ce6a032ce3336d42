// Package scaffold parses the class specification language and composes the
// generated C++ declaration and definition files.
package scaffold

// Visibility is a C++ access level.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Visibilities lists the buckets in the order they appear in a class body.
var Visibilities = []Visibility{Public, Protected, Private}

// Valid reports whether v is one of the three access levels.
func (v Visibility) Valid() bool {
	return v == Public || v == Protected || v == Private
}

// FieldSpec is one class attribute.
type FieldSpec struct {
	Visibility Visibility `json:"visibility" yaml:"visibility"`
	Name       string     `json:"name" yaml:"name"`
	Type       string     `json:"type" yaml:"type"`
	Default    *string    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Parameter is one entry of a function parameter list.
type Parameter struct {
	Type    string  `json:"type" yaml:"type"`
	Name    string  `json:"name" yaml:"name"`
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// FunctionSpec is one member function.
type FunctionSpec struct {
	Visibility     Visibility  `json:"visibility" yaml:"visibility"`
	Name           string      `json:"name" yaml:"name"`
	ReturnType     string      `json:"return_type" yaml:"return_type"`
	Parameters     []Parameter `json:"parameters" yaml:"parameters"`
	PreModifiers   []string    `json:"pre_modifiers" yaml:"pre_modifiers"`
	PostModifiers  []string    `json:"post_modifiers" yaml:"post_modifiers"`
	TemplateParams []string    `json:"template_params" yaml:"template_params"`
}

// BaseClassInfo is what the analyzer derives from one base-class file.
// AccessibleVirtuals is recomputed on every run.
type BaseClassInfo struct {
	FilePath           string   `json:"file_path" yaml:"file_path"`
	ClassName          string   `json:"class_name" yaml:"class_name"`
	AccessibleVirtuals []string `json:"accessible_virtuals" yaml:"accessible_virtuals"`
}

// ClassSpec is the complete, immutable description of one generated class.
type ClassSpec struct {
	Name                    string          `json:"name" yaml:"name"`
	Namespace               string          `json:"namespace,omitempty" yaml:"namespace,omitempty"` // "A::B" for nested
	TemplateParams          []string        `json:"template_params" yaml:"template_params"`
	BaseClasses             []BaseClassInfo `json:"base_classes" yaml:"base_classes"`
	Attributes              []FieldSpec     `json:"attributes" yaml:"attributes"`
	Functions               []FunctionSpec  `json:"functions" yaml:"functions"`
	Includes                []string        `json:"includes" yaml:"includes"`
	GenerateHeader          bool            `json:"generate_header" yaml:"generate_header"`
	GenerateSource          bool            `json:"generate_source" yaml:"generate_source"`
	GenerateStandardMembers bool            `json:"generate_standard_members" yaml:"generate_standard_members"`
}

// HeaderFile returns the declaration file name.
func (c *ClassSpec) HeaderFile() string { return c.Name + ".h" }

// SourceFile returns the definition file name.
func (c *ClassSpec) SourceFile() string { return c.Name + ".cpp" }

// RawSpec holds the unparsed specification strings as given on the command
// line or in a spec config file.
type RawSpec struct {
	Name        string   // "Widget" or "NS::Widget"
	BaseClasses []string // header paths
	Attributes  string   // "public:count:int=0, private:name:std::string"
	Functions   string   // "public:getCount:int:[]::[const]"
	Template    string   // "T,U"
	Includes    []string
	NoHeader    bool
	NoSource    bool
	Empty       bool // no standard members
}

// Merge appends the sections of other after those of r. Command-line values
// come first, spec config file values after them.
func (r RawSpec) Merge(other RawSpec) RawSpec {
	out := r
	out.BaseClasses = append(append([]string{}, r.BaseClasses...), other.BaseClasses...)
	out.Attributes = joinSections(r.Attributes, other.Attributes)
	out.Functions = joinSections(r.Functions, other.Functions)
	return out
}

func joinSections(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "," + b
	}
}

// GeneratedFile is one composed output document.
type GeneratedFile struct {
	Path    string // relative to the output directory
	Content string
	Kind    string // "header" or "source"
}

// GeneratorResult contains the composed documents of one run.
type GeneratorResult struct {
	Files    []GeneratedFile
	Warnings []string
}
