package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	titleColor = color.New(color.Bold)
	dimColor   = color.New(color.Faint)
)

func success(w io.Writer, format string, args ...any) {
	_, _ = okColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	_, _ = warnColor.Fprintf(w, "! "+format+"\n", args...)
}

func failure(w io.Writer, format string, args ...any) {
	_, _ = errColor.Fprintf(w, "✗ "+format+"\n", args...)
}

func title(w io.Writer, format string, args ...any) {
	_, _ = titleColor.Fprintf(w, format+"\n", args...)
}

func row(w io.Writer, name, detail string) {
	_, _ = fmt.Fprintf(w, "  %-24s %s\n", name, dimColor.Sprint(detail))
}
