// Package lines holds the line buffer every lowering result flows through.
//
// A Lines value is an ordered list of output lines without trailing
// newlines. Nested blocks are produced by indenting a child's lines once per
// nesting level and appending them to the parent.
package lines

import (
	"io"
	"strings"
)

// DefaultUnit is one indentation level.
const DefaultUnit = "\t"

// Lines is an ordered sequence of output lines.
type Lines []string

// Of builds a sequence from the given lines.
func Of(ls ...string) Lines {
	out := make(Lines, len(ls))
	copy(out, ls)
	return out
}

// Indent returns a new sequence with every line prefixed by one unit.
// An empty unit means DefaultUnit.
func Indent(src Lines, unit string) Lines {
	if unit == "" {
		unit = DefaultUnit
	}
	out := make(Lines, len(src))
	for i, l := range src {
		out[i] = unit + l
	}
	return out
}

// Indent is the method form of Indent.
func (l Lines) Indent(unit string) Lines {
	return Indent(l, unit)
}

// Append adds src to the end of l, preserving order.
func (l *Lines) Append(src Lines) {
	*l = append(*l, src...)
}

// Add appends single lines.
func (l *Lines) Add(ls ...string) {
	*l = append(*l, ls...)
}

// Len returns the number of lines.
func (l Lines) Len() int {
	return len(l)
}

// Render joins the lines with newline separators.
func (l Lines) Render() string {
	return strings.Join(l, "\n")
}

// WriteTo prints every line followed by a newline.
func (l Lines) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range l {
		n, err := io.WriteString(w, s)
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = io.WriteString(w, "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// IndentUnit builds an indentation unit from format options: a tab when
// useTabs is set, otherwise width spaces (4 when width is not positive).
func IndentUnit(useTabs bool, width int) string {
	if useTabs {
		return "\t"
	}
	if width <= 0 {
		width = 4
	}
	return strings.Repeat(" ", width)
}
