package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/example/classgen/internal/errors"
)

// scopeMark stands in for a "::" scope qualifier while a string is split on ':'.
const scopeMark = "\x00"

// Split splits raw on delim, ignoring delimiters nested inside [...] or <...>.
// Unbalanced brackets are tolerated: a closing bracket never drives its
// counter below zero. Leading whitespace is stripped from every field.
func Split(raw string, delim rune) []string {
	var (
		fields  []string
		current strings.Builder
		square  int
		angle   int
	)

	for _, r := range raw {
		switch {
		case r == delim && square == 0 && angle == 0:
			fields = append(fields, current.String())
			current.Reset()
			continue
		case r == '[':
			square++
		case r == ']' && square > 0:
			square--
		case r == '<':
			angle++
		case r == '>' && angle > 0:
			angle--
		}
		current.WriteRune(r)
	}
	fields = append(fields, current.String())

	for i, f := range fields {
		fields[i] = strings.TrimLeftFunc(f, unicode.IsSpace)
	}
	return fields
}

// SplitFields splits one entry on ':' without breaking "::" scope qualifiers.
func SplitFields(entry string) []string {
	fields := Split(protectScopes(entry), ':')
	for i, f := range fields {
		fields[i] = restoreScopes(f)
	}
	return fields
}

// protectScopes replaces every "::" that joins two name parts (std::string,
// map<K,V>::iterator) with scopeMark. A "::" after ']' or at a field boundary
// is left alone: it is a separator followed by an empty field.
func protectScopes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isScopeAt(s, i) {
			b.WriteString(scopeMark)
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func restoreScopes(s string) string {
	return strings.ReplaceAll(s, scopeMark, "::")
}

func isScopeAt(s string, i int) bool {
	if i == 0 || i+2 >= len(s) || s[i] != ':' || s[i+1] != ':' {
		return false
	}
	prev, next := s[i-1], s[i+2]
	return (isIdentByte(prev) || prev == '>') && (isIdentStart(next) || next == '~')
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// splitHead cuts "visibility:name:rest" into its parts. Names are never
// scope qualified, so the first ':' after the name ends it, except inside a
// default value ("mode=Mode::Fast"). A doubled separator right after the name
// is read as one unless a bracketed field follows it.
func splitHead(entry string) (vis, name, rest string, ok bool) {
	vis, r, found := strings.Cut(entry, ":")
	if !found {
		return strings.TrimSpace(entry), "", "", false
	}

	end := nameEnd(r)
	if end < 0 {
		return strings.TrimSpace(vis), strings.TrimSpace(r), "", true
	}

	name, rest = r[:end], r[end+1:]
	if strings.HasPrefix(rest, ":") && !strings.HasPrefix(strings.TrimSpace(rest[1:]), "[") {
		rest = rest[1:]
	}
	return strings.TrimSpace(vis), strings.TrimSpace(name), rest, true
}

func nameEnd(s string) int {
	square := 0
	seenEq := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			square++
		case ']':
			if square > 0 {
				square--
			}
		case '=':
			seenEq = true
		case ':':
			if square > 0 {
				continue
			}
			if seenEq && isScopeAt(s, i) {
				i++
				continue
			}
			return i
		}
	}
	return -1
}

// cutDefault splits "name=value" into name and an optional value.
func cutDefault(s string) (string, *string) {
	name, value, found := strings.Cut(s, "=")
	if !found {
		return strings.TrimSpace(s), nil
	}
	v := strings.TrimSpace(value)
	return strings.TrimSpace(name), &v
}

// ParseVisibility validates a visibility keyword.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(strings.TrimSpace(s))
	if !v.Valid() {
		return "", errors.Structuralf("invalid visibility %q (valid: public, private, protected)", s)
	}
	return v, nil
}

// ParseAttributes parses a comma separated attribute list.
// Form: visibility:name:type, with "=value" behind the name or the type.
func ParseAttributes(raw string) ([]FieldSpec, error) {
	var attrs []FieldSpec
	for _, entry := range Split(raw, ',') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		attr, err := parseAttribute(entry)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseAttribute(entry string) (FieldSpec, error) {
	vis, name, rest, ok := splitHead(entry)
	if !ok || name == "" {
		return FieldSpec{}, errors.Structuralf("invalid attribute %q: expected visibility:name:type", entry)
	}

	visibility, err := ParseVisibility(vis)
	if err != nil {
		return FieldSpec{}, errors.Wrapf(err, "invalid attribute %q", entry)
	}

	fields := SplitFields(rest)
	if len(fields) != 1 || strings.TrimSpace(fields[0]) == "" {
		return FieldSpec{}, errors.Structuralf("invalid attribute %q: expected visibility:name:type", entry)
	}

	attrName, def := cutDefault(name)
	attrType := strings.TrimSpace(fields[0])
	if def == nil {
		attrType, def = cutDefault(attrType)
	}

	return FieldSpec{
		Visibility: visibility,
		Name:       attrName,
		Type:       attrType,
		Default:    def,
	}, nil
}

// ParseFunctions parses a comma separated member function list.
// Form: visibility:name:returntype:[params]:[pre]:[post]:[template]
// where the last three lists are optional.
func ParseFunctions(raw string) ([]FunctionSpec, error) {
	var funcs []FunctionSpec
	for _, entry := range Split(raw, ',') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fn, err := parseFunction(entry)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return funcs, nil
}

func parseFunction(entry string) (FunctionSpec, error) {
	vis, name, rest, ok := splitHead(entry)
	if !ok || name == "" {
		return FunctionSpec{}, errors.Structuralf("invalid function %q: expected visibility:name:returntype:[parameters]", entry)
	}

	visibility, err := ParseVisibility(vis)
	if err != nil {
		return FunctionSpec{}, errors.Wrapf(err, "invalid function %q", entry)
	}

	var fields []string
	if rest != "" {
		fields = SplitFields(rest)
	}
	if n := len(fields) + 2; n < 4 || n > 7 {
		return FunctionSpec{}, errors.Structuralf("invalid function %q: expected 4 to 7 fields, got %d", entry, n)
	}

	params, err := ParseParameters(fields[1])
	if err != nil {
		return FunctionSpec{}, errors.Wrapf(err, "invalid function %q", entry)
	}

	fn := FunctionSpec{
		Visibility: visibility,
		Name:       name,
		ReturnType: strings.TrimSpace(fields[0]),
		Parameters: params,
	}
	if len(fields) > 2 {
		fn.PreModifiers = ParseList(fields[2])
	}
	if len(fields) > 3 {
		fn.PostModifiers = ParseList(fields[3])
	}
	if len(fields) > 4 {
		fn.TemplateParams = ParseList(fields[4])
	}
	return fn, nil
}

// ParseParameters parses a bracketed "name:type" list.
func ParseParameters(field string) ([]Parameter, error) {
	var params []Parameter
	for _, entry := range ParseList(field) {
		nameField, typeField, found := cutNameType(entry)
		if !found || nameField == "" || typeField == "" {
			return nil, errors.Structuralf("invalid parameter %q: expected name:type", entry)
		}

		name, def := cutDefault(nameField)
		typ := typeField
		if def == nil {
			typ, def = cutDefault(typ)
		}
		params = append(params, Parameter{Type: typ, Name: name, Default: def})
	}
	return params, nil
}

func cutNameType(entry string) (string, string, bool) {
	end := nameEnd(entry)
	if end < 0 {
		return "", "", false
	}
	return strings.TrimSpace(entry[:end]), strings.TrimSpace(strings.TrimPrefix(entry[end+1:], ":")), true
}

// ParseList parses "[a,b,c]" (brackets optional) into its trimmed, non-empty items.
func ParseList(field string) []string {
	var items []string
	for _, item := range Split(stripBrackets(field), ',') {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func stripBrackets(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1]
	}
	return s
}

// RenderParameters renders "type name" pairs, comma joined. Defaults are
// only valid in declarations.
func RenderParameters(params []Parameter, withDefaults bool) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
		if withDefaults && p.Default != nil {
			parts[i] += " = " + *p.Default
		}
	}
	return strings.Join(parts, ", ")
}

// RenderModifiers joins modifier tokens with a single space.
func RenderModifiers(mods []string) string {
	return strings.Join(mods, " ")
}

// RenderTemplateParams renders a template parameter line. Bare identifiers
// become "typename T"; entries that already name a kind ("int N",
// "class T") are kept.
func RenderTemplateParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		if strings.ContainsAny(p, " \t") {
			parts[i] = p
		} else {
			parts[i] = "typename " + p
		}
	}
	return "template <" + strings.Join(parts, ", ") + ">"
}

// ParseClassName splits "A::B::Widget" into class name and namespace.
func ParseClassName(raw string) (name, namespace string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", errors.WithHint(
			errors.Structuralf("a class name has to be provided"),
			"pass --name Widget or --name NS::Widget",
		)
	}

	segments := strings.Split(raw, "::")
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return "", "", errors.Structuralf("invalid class name %q", raw)
		}
	}
	name = strings.TrimSpace(segments[len(segments)-1])
	if len(segments) > 1 {
		namespace = strings.Join(segments[:len(segments)-1], "::")
	}
	return name, namespace, nil
}

// ParseCommaList splits a plain comma list such as --baseclass or --include.
func ParseCommaList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var headerSuffixes = map[string]bool{
	".h": true, ".hh": true, ".hpp": true, ".hxx": true, ".inl": true,
}

// IncludeDirective renders an #include line. Local headers are quoted,
// everything else is a system include.
func IncludeDirective(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "<") || strings.HasPrefix(path, `"`) {
		return "#include " + path
	}
	if headerSuffixes[strings.ToLower(filepath.Ext(path))] {
		return fmt.Sprintf("#include %q", path)
	}
	return "#include <" + path + ">"
}

// BuildOptions controls how BuildClassSpec treats malformed optional sections.
type BuildOptions struct {
	// Strict turns a malformed attribute or function section into an error
	// instead of dropping the section with a warning.
	Strict bool
}

// BuildClassSpec builds a ClassSpec from raw specification strings. Base
// classes carry only their file path; the analyzer fills in the rest.
func BuildClassSpec(raw RawSpec, opts BuildOptions) (*ClassSpec, []string, error) {
	name, namespace, err := ParseClassName(raw.Name)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	degrade := func(section string, err error) error {
		if opts.Strict {
			return errors.Wrapf(err, "%s section", section)
		}
		warnings = append(warnings, fmt.Sprintf("%s section ignored: %v", section, err))
		return nil
	}

	attrs, err := ParseAttributes(raw.Attributes)
	if err != nil {
		if err := degrade("attributes", err); err != nil {
			return nil, nil, err
		}
		attrs = nil
	}

	funcs, err := ParseFunctions(raw.Functions)
	if err != nil {
		if err := degrade("functions", err); err != nil {
			return nil, nil, err
		}
		funcs = nil
	}

	var bases []BaseClassInfo
	for _, path := range raw.BaseClasses {
		for _, p := range ParseCommaList(path) {
			bases = append(bases, BaseClassInfo{FilePath: p})
		}
	}

	var includes []string
	for _, inc := range raw.Includes {
		includes = append(includes, ParseCommaList(inc)...)
	}

	return &ClassSpec{
		Name:                    name,
		Namespace:               namespace,
		TemplateParams:          ParseList(raw.Template),
		BaseClasses:             bases,
		Attributes:              attrs,
		Functions:               funcs,
		Includes:                includes,
		GenerateHeader:          !raw.NoHeader,
		GenerateSource:          !raw.NoSource,
		GenerateStandardMembers: !raw.Empty,
	}, warnings, nil
}

// WithBaseClasses returns a copy of c with analyzed base classes.
func (c *ClassSpec) WithBaseClasses(bases []BaseClassInfo) *ClassSpec {
	out := *c
	out.BaseClasses = append([]BaseClassInfo(nil), bases...)
	return &out
}
