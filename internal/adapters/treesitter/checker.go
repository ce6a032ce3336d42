// Package treesitter checks generated C++ with the tree-sitter grammar.
package treesitter

import (
	"context"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/example/classgen/internal/errors"
	"github.com/example/classgen/internal/logging"
	"github.com/example/classgen/internal/ports/secondary"
)

const maxSnippet = 60

// Checker implements secondary.SyntaxChecker. A parser is created per call,
// so a Checker is safe for concurrent use.
type Checker struct{}

// NewChecker creates a new Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// CheckSyntax parses content as C++ and reports every ERROR and MISSING node.
func (c *Checker) CheckSyntax(ctx context.Context, path string, content []byte) (*secondary.SyntaxReport, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	defer tree.Close()

	report := &secondary.SyntaxReport{}
	root := tree.RootNode()
	if !root.HasError() {
		return report, nil
	}

	walkNode(root, func(n *sitter.Node) bool {
		if n.IsError() || n.IsMissing() {
			p := n.StartPoint()
			report.Errors = append(report.Errors, secondary.SyntaxError{
				Line:    int(p.Row) + 1,
				Column:  int(p.Column) + 1,
				Snippet: snippet(n, content),
			})
			return false
		}
		return n.HasError()
	})

	logging.Logger.Debugw("syntax check", "path", path, "errors", len(report.Errors))
	return report, nil
}

// walkNode performs a depth-first walk, descending only while fn returns true.
func walkNode(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		walkNode(node.Child(int(i)), fn)
	}
}

func snippet(n *sitter.Node, content []byte) string {
	if n.IsMissing() {
		return "missing " + n.Type()
	}
	s := strings.Join(strings.Fields(n.Content(content)), " ")
	return truncate(s, maxSnippet)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Ensure Checker implements the interface
var _ secondary.SyntaxChecker = (*Checker)(nil)
