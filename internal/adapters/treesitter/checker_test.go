package treesitter

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSyntax_Valid(t *testing.T) {
	src := `#ifndef _WIDGET_H_
#define _WIDGET_H_

namespace NS {

class Widget {
public:
    Widget() = default;
    virtual ~Widget() = default;
    int getCount() const;
    int count = 0;
};

} // namespace NS

#endif // _WIDGET_H_
`
	report, err := NewChecker().CheckSyntax(context.Background(), "Widget.h", []byte(src))
	require.NoError(t, err)
	assert.Empty(t, report.Errors)
}

func TestCheckSyntax_Invalid(t *testing.T) {
	src := "class Widget {\npublic:\n    int getCount( const;\n};\n"

	report, err := NewChecker().CheckSyntax(context.Background(), "Widget.h", []byte(src))
	require.NoError(t, err)
	require.NotEmpty(t, report.Errors)
	assert.GreaterOrEqual(t, report.Errors[0].Line, 1)
	assert.GreaterOrEqual(t, report.Errors[0].Column, 1)
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("é", maxSnippet+5)

	got := truncate(s, maxSnippet)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", maxSnippet)+"...", got)

	assert.Equal(t, "short", truncate("short", maxSnippet))
}
