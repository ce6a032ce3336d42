// Package scaffold provides the C++ templates used by the output composer.
package scaffold

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed cpp/*.tmpl
var cppTemplates embed.FS

// GetHeaderTemplate returns the declaration file template.
func GetHeaderTemplate() (string, error) {
	return getCppTemplate("header.h")
}

// GetSourceTemplate returns the definition file template.
func GetSourceTemplate() (string, error) {
	return getCppTemplate("source.cpp")
}

func getCppTemplate(name string) (string, error) {
	content, err := cppTemplates.ReadFile("cpp/" + name + ".tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// TemplateFuncs returns the template function map for the C++ templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"indent": indent,
		"join":   strings.Join,
	}
}

// indent prefixes every line of s with four spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}
