package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cxxpy/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, opts PrettyOpts) error {
	path := formatPath(d.Primary.File, opts.PathMode, opts.BaseDir)
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}
	_, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, d.Primary.Line, d.Primary.Col, sev, code, d.Message)
	return err
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
