package scaffold

import (
	"fmt"
	"regexp"
	"strings"
)

// inClassOnly lists specifiers that are valid in a class body but not on an
// out-of-line definition.
var inClassOnly = map[string]bool{
	"virtual":  true,
	"static":   true,
	"explicit": true,
	"friend":   true,
	"override": true,
	"final":    true,
}

var (
	pureRe    = regexp.MustCompile(`=\s*0$`)
	defaultRe = regexp.MustCompile(`=\s*default$`)
	deletedRe = regexp.MustCompile(`=\s*delete$`)
)

// IsPureOrDefault reports whether a declaration ends in "= 0" or
// "= default" and therefore gets no definition body.
func IsPureOrDefault(decl string) bool {
	decl = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(decl), ";"))
	return pureRe.MatchString(decl) || defaultRe.MatchString(decl)
}

// IsDeleted reports whether a declaration ends in "= delete".
func IsDeleted(decl string) bool {
	return deletedRe.MatchString(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(decl), ";")))
}

func hasNoBody(decl string) bool {
	return IsPureOrDefault(decl) || IsDeleted(decl)
}

// RenderAttribute renders "type name[ = default];".
func RenderAttribute(f FieldSpec) string {
	s := f.Type + " " + f.Name
	if f.Default != nil {
		s += " = " + *f.Default
	}
	return s + ";"
}

// RenderDeclaration renders a member function declaration, preceded by its
// template line when the function is a template.
func RenderDeclaration(fn FunctionSpec) string {
	sig := joinNonEmpty(
		RenderModifiers(fn.PreModifiers),
		fn.ReturnType,
		fmt.Sprintf("%s(%s)", fn.Name, RenderParameters(fn.Parameters, true)),
		RenderModifiers(fn.PostModifiers),
	)
	return withTemplateLine(RenderTemplateParams(fn.TemplateParams), sig+";")
}

// RenderDefinition renders the out-of-line definition of fn with an empty
// body. It returns "" for pure, defaulted and deleted functions.
func RenderDefinition(c *ClassSpec, fn FunctionSpec) string {
	if hasNoBody(RenderDeclaration(fn)) {
		return ""
	}

	sig := joinNonEmpty(
		RenderModifiers(dropInClassOnly(fn.PreModifiers)),
		fn.ReturnType,
		fmt.Sprintf("%s::%s(%s)", Qualifier(c), fn.Name, RenderParameters(fn.Parameters, false)),
		RenderModifiers(dropInClassOnly(fn.PostModifiers)),
	)
	def := withTemplateLine(RenderTemplateParams(fn.TemplateParams), sig+" { }")
	return withTemplateLine(RenderTemplateParams(c.TemplateParams), def)
}

// RenderVirtualDeclaration declares an inherited virtual verbatim.
func RenderVirtualDeclaration(sig string) string {
	return strings.TrimSpace(sig) + ";"
}

// RenderVirtualDefinition renders an empty-bodied definition of an inherited
// virtual. The function name is taken to be the first token containing '(',
// or the token before it when the parenthesis is detached. It returns "" for
// signatures without a body.
func RenderVirtualDefinition(c *ClassSpec, sig string) string {
	if hasNoBody(sig) {
		return ""
	}

	tokens := dropInClassOnly(strings.Fields(stripDefaultArgs(sig)))
	at := -1
	for i, tok := range tokens {
		if strings.Contains(tok, "(") {
			at = i
			if strings.HasPrefix(tok, "(") && i > 0 {
				at = i - 1
			}
			break
		}
	}
	if at < 0 {
		return ""
	}
	tokens[at] = Qualifier(c) + "::" + tokens[at]

	def := strings.Join(tokens, " ") + " { }"
	return withTemplateLine(RenderTemplateParams(c.TemplateParams), def)
}

// stripDefaultArgs removes "= value" from every parameter of the first
// parameter list in sig. Defaults may nest parentheses, braces and template
// arguments.
func stripDefaultArgs(sig string) string {
	open := strings.Index(sig, "(")
	if open < 0 {
		return sig
	}
	rest := sig[open:]
	end := len(rest)

	var b strings.Builder
	depth, angle := 0, 0
	skipping := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		switch ch {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '<':
			if skipping {
				angle++
			}
		case '>':
			if skipping && angle > 0 {
				angle--
			}
		}
		if depth == 0 {
			end = i
			break
		}
		if depth == 1 && angle == 0 {
			if ch == '=' && !skipping {
				skipping = true
				kept := strings.TrimRight(b.String(), " \t")
				b.Reset()
				b.WriteString(kept)
				continue
			}
			if ch == ',' && skipping {
				skipping = false
			}
		}
		if !skipping {
			b.WriteByte(ch)
		}
	}
	return sig[:open] + b.String() + rest[end:]
}

// RenderStandardMembers renders the defaulted special member functions.
func RenderStandardMembers(c *ClassSpec) []string {
	n := c.Name
	dtor := "virtual ~" + n + "()"
	if len(c.BaseClasses) > 0 {
		dtor = "~" + n + "() override"
	}
	return []string{
		n + "() = default;",
		fmt.Sprintf("%s(const %s& other) = default;", n, n),
		fmt.Sprintf("%s(%s&& other) noexcept = default;", n, n),
		fmt.Sprintf("%s& operator=(const %s& other) = default;", n, n),
		fmt.Sprintf("%s& operator=(%s&& other) noexcept = default;", n, n),
		dtor + " = default;",
	}
}

// Qualifier returns the name used to qualify out-of-line definitions:
// "Widget" or "Widget<T, N>" for a class template.
func Qualifier(c *ClassSpec) string {
	if len(c.TemplateParams) == 0 {
		return c.Name
	}
	args := make([]string, len(c.TemplateParams))
	for i, p := range c.TemplateParams {
		fields := strings.Fields(p)
		args[i] = fields[len(fields)-1]
	}
	return c.Name + "<" + strings.Join(args, ", ") + ">"
}

func dropInClassOnly(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !inClassOnly[t] {
			out = append(out, t)
		}
	}
	return out
}

func withTemplateLine(line, body string) string {
	if line == "" {
		return body
	}
	return line + "\n" + body
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
