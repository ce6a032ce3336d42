package scaffold

import (
	"strings"
	"unicode"

	"github.com/example/classgen/internal/errors"
)

// Spec config file section markers, in their required order.
const (
	MarkerBaseClass  = "--baseclass"
	MarkerAttributes = "--attributes"
	MarkerFunctions  = "--functions"
)

var markers = []string{MarkerBaseClass, MarkerAttributes, MarkerFunctions}

// ParseSpecFile parses a spec config file:
//
//	# Widget spec
//	--baseclass [ Base.h, Other.h ]
//	--attributes [ public:count:int=0, private:name:std::string ]
//	--functions [ public:getCount:int:[]::[const] ]
//
// Lines starting with '#' are comments. Section bodies may span lines and
// may be wrapped in one pair of brackets. All three markers must be present,
// once each, in this order.
func ParseSpecFile(content string) (RawSpec, error) {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	tokens := strings.Fields(strings.Join(kept, "\n"))

	idx := map[string]int{}
	for i, tok := range tokens {
		if !strings.HasPrefix(tok, "--") {
			continue
		}
		if !isMarker(tok) {
			return RawSpec{}, errors.Structuralf("unrecognized section marker %q", tok)
		}
		if _, dup := idx[tok]; dup {
			return RawSpec{}, errors.Structuralf("section marker %s appears more than once", tok)
		}
		idx[tok] = i
	}

	for _, m := range markers {
		if _, ok := idx[m]; !ok {
			return RawSpec{}, errors.WithHint(
				errors.Structuralf("missing section marker %s", m),
				"a spec file needs --baseclass, --attributes and --functions, even when a section is empty",
			)
		}
	}

	b, a, f := idx[MarkerBaseClass], idx[MarkerAttributes], idx[MarkerFunctions]
	if !(b < a && a < f) {
		return RawSpec{}, errors.Structuralf("section markers out of order: expected %s", strings.Join(markers, ", "))
	}

	return RawSpec{
		BaseClasses: splitBaseClassSection(tokens[b+1 : a]),
		Attributes:  sectionBody(tokens[a+1 : f]),
		Functions:   sectionBody(tokens[f+1:]),
	}, nil
}

func isMarker(tok string) bool {
	for _, m := range markers {
		if tok == m {
			return true
		}
	}
	return false
}

func sectionBody(tokens []string) string {
	return strings.TrimSpace(stripBrackets(strings.Join(tokens, " ")))
}

func splitBaseClassSection(tokens []string) []string {
	body := sectionBody(tokens)
	return strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
