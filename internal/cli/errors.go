package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/classgen/internal/errors"
)

// PrintError renders a fatal error and its hints for humans.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "%s %s\n", color.New(color.FgCyan).Sprint("Hint:"), hint)
	}
}
