// Package baseclass contains the pure base-class analyzer.
//
// The analyzer is a lexical heuristic, not a C++ parser: it works on the
// whitespace-separated tokens of a header and decides which virtual methods
// a subclass can override from the positions of the access markers. Nested
// classes, several interleaved blocks of the same visibility and friend
// declarations are not understood.
package baseclass

import (
	"fmt"
	"strings"

	"github.com/example/classgen/internal/scaffold"
)

// Access markers and keywords matched as whole tokens.
const (
	tokClass     = "class"
	tokEnum      = "enum"
	tokVirtual   = "virtual"
	tokPublic    = "public:"
	tokProtected = "protected:"
	tokPrivate   = "private:"
)

// startMarkers end the statement before a declaration.
const startMarkers = ";:}"

// Regions holds the index of the last occurrence of each access marker,
// or -1 when the marker does not occur.
type Regions struct {
	Public    int
	Protected int
	Private   int
}

// Analysis is the result of analyzing one base-class source.
type Analysis struct {
	ClassName  string
	Regions    Regions
	Virtuals   []int    // token index of every "virtual"
	Accessible []int    // the subset not excluded by Regions
	Signatures []string // one per accessible virtual that could be extracted
}

// Tokenize splits source text on whitespace. Punctuation stays attached to
// its token, so "foo(int)" and "};" survive as single tokens.
func Tokenize(content string) []string {
	return strings.Fields(content)
}

// Analyze runs the full analysis over a base-class source.
func Analyze(content []byte) (*Analysis, error) {
	tokens := Tokenize(string(content))

	name, err := FindClassName(tokens)
	if err != nil {
		return nil, err
	}

	regions, virtuals := ScanRegions(tokens)
	a := &Analysis{
		ClassName: name,
		Regions:   regions,
		Virtuals:  virtuals,
	}

	for _, v := range virtuals {
		if regions.Excludes(v) {
			continue
		}
		a.Accessible = append(a.Accessible, v)

		sig, ok := ExtractSignature(tokens, v)
		if !ok || isDestructor(sig) {
			continue
		}
		a.Signatures = append(a.Signatures, sig)
	}
	return a, nil
}

// FindClassName returns the name following the first "class" token that is
// not part of "enum class" or a forward declaration. The name is cut at its
// first ':' or '{'.
func FindClassName(tokens []string) (string, error) {
	for i, tok := range tokens {
		if tok != tokClass || (i > 0 && tokens[i-1] == tokEnum) {
			continue
		}
		if i+1 >= len(tokens) {
			break
		}
		name := tokens[i+1]
		if strings.HasSuffix(name, ";") || (i+2 < len(tokens) && strings.HasPrefix(tokens[i+2], ";")) {
			continue
		}
		if cut := strings.IndexAny(name, ":{"); cut >= 0 {
			name = name[:cut]
		}
		if name == "" {
			break
		}
		return name, nil
	}
	return "", fmt.Errorf("no class declaration found")
}

// ScanRegions records the last index of each access marker and the index of
// every "virtual" token. Only the last occurrence of a repeated marker is
// kept, so regions are effective boundaries, not the true region sequence.
func ScanRegions(tokens []string) (Regions, []int) {
	r := Regions{Public: -1, Protected: -1, Private: -1}
	var virtuals []int

	for i, tok := range tokens {
		switch tok {
		case tokPublic:
			r.Public = i
		case tokProtected:
			r.Protected = i
		case tokPrivate:
			r.Private = i
		case tokVirtual:
			virtuals = append(virtuals, i)
		}
	}
	return r, virtuals
}

// Excludes reports whether the virtual at token index v falls into what the
// marker positions approximate as the private span. The four cases are the
// four orderings of the private marker against the other two; they are
// checked in order and the first match decides.
func (r Regions) Excludes(v int) bool {
	pub, prot, priv := r.Public, r.Protected, r.Private

	switch {
	case pub <= priv && prot <= priv:
		// private: comes last
		return v >= priv
	case pub >= priv && prot >= priv:
		// private: comes first; only virtuals after the first visible marker survive
		return v <= min(pub, prot)
	case pub <= priv && prot >= priv:
		// public: ... private: ... protected:
		return v >= priv && v <= prot
	case prot <= priv && pub >= priv:
		// protected: ... private: ... public:
		return v >= priv && v <= pub
	}
	return false
}

// ExtractSignature rebuilds the declaration around the virtual at index v:
// backward to the nearest statement terminator, forward to the first ';'
// or to '{' at parenthesis depth zero. The text of the terminator tokens
// outside the declaration is dropped. It returns false when the declaration
// never terminates.
func ExtractSignature(tokens []string, v int) (string, bool) {
	start := declStart(tokens, v)
	end, offset, ok := declEnd(tokens, v)
	if !ok {
		return "", false
	}

	var parts []string
	if start >= 0 {
		head := tokens[start]
		if head = head[strings.LastIndexAny(head, startMarkers)+1:]; head != "" {
			parts = append(parts, head)
		}
	}
	parts = append(parts, tokens[start+1:end]...)
	if tail := tokens[end][:offset]; tail != "" {
		parts = append(parts, tail)
	}

	sig := strings.TrimSpace(strings.Join(parts, " "))
	return sig, sig != ""
}

func declStart(tokens []string, v int) int {
	for i := v - 1; i >= 0; i-- {
		if strings.ContainsAny(tokens[i], startMarkers) {
			return i
		}
	}
	return -1
}

// declEnd scans forward from v and returns the token index and byte offset
// of the terminator.
func declEnd(tokens []string, v int) (int, int, bool) {
	depth := 0
	for i := v + 1; i < len(tokens); i++ {
		tok := tokens[i]
		for j := 0; j < len(tok); j++ {
			switch tok[j] {
			case ';':
				return i, j, true
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			case '{':
				if depth == 0 {
					return i, j, true
				}
			}
		}
	}
	return 0, 0, false
}

// isDestructor reports whether sig declares a destructor. The generated
// class declares its own, so inherited ones are not carried over.
func isDestructor(sig string) bool {
	for _, tok := range strings.Fields(sig) {
		if strings.HasPrefix(tok, "~") {
			return true
		}
	}
	return false
}

// Info converts the analysis into the record carried by a ClassSpec.
func (a *Analysis) Info(path string) scaffold.BaseClassInfo {
	return scaffold.BaseClassInfo{
		FilePath:           path,
		ClassName:          a.ClassName,
		AccessibleVirtuals: append([]string(nil), a.Signatures...),
	}
}
