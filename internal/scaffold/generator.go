package scaffold

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	scaffoldtmpl "github.com/example/classgen/internal/templates/scaffold"
)

// Generator composes declaration and definition files from a ClassSpec.
type Generator struct {
	funcs template.FuncMap
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{
		funcs: scaffoldtmpl.TemplateFuncs(),
	}
}

type section struct {
	Label string
	Lines []string
}

type headerData struct {
	Guard          string
	Includes       []string
	NamespaceOpen  []string
	NamespaceClose []string
	TemplateLine   string
	ClassHeader    string
	Sections       []section
}

type sourceData struct {
	Header         string
	NamespaceOpen  []string
	NamespaceClose []string
	Definitions    []string
}

// Generate renders the files requested by spec. Paths are relative to the
// output directory.
func (g *Generator) Generate(spec *ClassSpec) (*GeneratorResult, error) {
	result := &GeneratorResult{}

	if spec.GenerateHeader {
		content, err := g.RenderHeader(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", spec.HeaderFile(), err)
		}
		result.Files = append(result.Files, GeneratedFile{Path: spec.HeaderFile(), Content: content, Kind: "header"})
	}

	if spec.GenerateSource {
		content, err := g.RenderSource(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", spec.SourceFile(), err)
		}
		result.Files = append(result.Files, GeneratedFile{Path: spec.SourceFile(), Content: content, Kind: "source"})
	}

	for _, b := range spec.BaseClasses {
		if b.ClassName == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("base class file %s was not analyzed; inheriting without overrides", b.FilePath))
		}
	}

	return result, nil
}

// RenderHeader renders the declaration file.
func (g *Generator) RenderHeader(spec *ClassSpec) (string, error) {
	data := headerData{
		Guard:          "_" + strings.ToUpper(spec.Name) + "_H_",
		NamespaceOpen:  namespaceOpen(spec.Namespace),
		NamespaceClose: namespaceClose(spec.Namespace),
		TemplateLine:   RenderTemplateParams(spec.TemplateParams),
		ClassHeader:    classHeader(spec),
	}

	for _, b := range spec.BaseClasses {
		data.Includes = append(data.Includes, `#include "`+b.FilePath+`"`)
	}
	for _, inc := range spec.Includes {
		data.Includes = append(data.Includes, IncludeDirective(inc))
	}

	for _, vis := range Visibilities {
		var lines []string
		if vis == Public {
			if spec.GenerateStandardMembers {
				lines = append(lines, RenderStandardMembers(spec)...)
			}
			for _, b := range spec.BaseClasses {
				for _, sig := range b.AccessibleVirtuals {
					lines = append(lines, RenderVirtualDeclaration(sig))
				}
			}
		}
		for _, fn := range spec.Functions {
			if fn.Visibility == vis {
				lines = append(lines, RenderDeclaration(fn))
			}
		}
		for _, attr := range spec.Attributes {
			if attr.Visibility == vis {
				lines = append(lines, RenderAttribute(attr))
			}
		}
		if len(lines) > 0 {
			data.Sections = append(data.Sections, section{Label: string(vis), Lines: lines})
		}
	}

	tmpl, err := scaffoldtmpl.GetHeaderTemplate()
	if err != nil {
		return "", err
	}
	return g.renderTemplate("header", tmpl, data)
}

// RenderSource renders the definition file.
func (g *Generator) RenderSource(spec *ClassSpec) (string, error) {
	data := sourceData{
		Header:         spec.HeaderFile(),
		NamespaceOpen:  namespaceOpen(spec.Namespace),
		NamespaceClose: namespaceClose(spec.Namespace),
	}

	for _, fn := range spec.Functions {
		if def := RenderDefinition(spec, fn); def != "" {
			data.Definitions = append(data.Definitions, def)
		}
	}
	for _, b := range spec.BaseClasses {
		for _, sig := range b.AccessibleVirtuals {
			if def := RenderVirtualDefinition(spec, sig); def != "" {
				data.Definitions = append(data.Definitions, def)
			}
		}
	}

	tmpl, err := scaffoldtmpl.GetSourceTemplate()
	if err != nil {
		return "", err
	}
	return g.renderTemplate("source", tmpl, data)
}

// renderTemplate renders a C++ template and normalizes the output to end
// in exactly one newline.
func (g *Generator) renderTemplate(name, content string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(g.funcs).Parse(content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

func classHeader(spec *ClassSpec) string {
	if len(spec.BaseClasses) == 0 {
		return "class " + spec.Name + " {"
	}
	bases := make([]string, 0, len(spec.BaseClasses))
	for _, b := range spec.BaseClasses {
		name := b.ClassName
		if name == "" {
			name = baseNameFromPath(b.FilePath)
		}
		bases = append(bases, "public "+name)
	}
	return "class " + spec.Name + " : " + strings.Join(bases, ", ") + " {"
}

// baseNameFromPath guesses a class name from a header path: "lib/Base.h" -> "Base".
func baseNameFromPath(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.Index(path, "."); i >= 0 {
		path = path[:i]
	}
	return path
}

func namespaceOpen(ns string) []string {
	if ns == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(ns, "::") {
		out = append(out, "namespace "+part+" {")
	}
	return out
}

func namespaceClose(ns string) []string {
	if ns == "" {
		return nil
	}
	parts := strings.Split(ns, "::")
	out := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		out = append(out, "} // namespace "+parts[i])
	}
	return out
}
