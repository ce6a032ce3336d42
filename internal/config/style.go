package config

import (
	"fmt"
	"strings"
)

// Style is a clang-format style.
type Style string

const (
	// StyleNone defers to the nearest .clang-format file.
	StyleNone     Style = "None"
	StyleLLVM     Style = "LLVM"
	StyleGoogle   Style = "Google"
	StyleChromium Style = "Chromium"
	StyleMozilla  Style = "Mozilla"
	StyleWebKit   Style = "WebKit"
)

// Styles lists the supported styles.
var Styles = []Style{StyleNone, StyleLLVM, StyleGoogle, StyleChromium, StyleMozilla, StyleWebKit}

// ParseStyle matches s case-insensitively against the supported styles.
func ParseStyle(s string) (Style, error) {
	for _, style := range Styles {
		if strings.EqualFold(s, string(style)) {
			return style, nil
		}
	}
	names := make([]string, len(Styles))
	for i, style := range Styles {
		names[i] = string(style)
	}
	return "", fmt.Errorf("unknown clang-format style %q (valid: %s)", s, strings.Join(names, ", "))
}
