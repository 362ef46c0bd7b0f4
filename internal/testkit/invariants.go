// Package testkit holds invariant checks shared by package tests.
package testkit

import (
	"fmt"
	"strings"

	"cxxpy/internal/lines"
)

// CheckLines verifies the invariants every lowering result must hold:
// 1) the sequence is non-empty
// 2) no line carries an embedded newline
// 3) indentation never grows by more than one unit between adjacent lines
func CheckLines(ls lines.Lines, unit string) error {
	if len(ls) == 0 {
		return fmt.Errorf("empty line sequence")
	}
	if unit == "" {
		unit = lines.DefaultUnit
	}
	prev := 0
	for i, l := range ls {
		if strings.ContainsAny(l, "\n\r") {
			return fmt.Errorf("line %d contains a newline: %q", i, l)
		}
		if l == "" {
			continue
		}
		depth := Depth(l, unit)
		if depth > prev+1 {
			return fmt.Errorf("line %d jumps from depth %d to %d: %q", i, prev, depth, l)
		}
		prev = depth
	}
	return nil
}

// Depth counts leading indentation units.
func Depth(line, unit string) int {
	n := 0
	for strings.HasPrefix(line, unit) {
		line = line[len(unit):]
		n++
	}
	return n
}

// HasMarker reports whether any line contains marker.
func HasMarker(ls lines.Lines, marker string) bool {
	for _, l := range ls {
		if strings.Contains(l, marker) {
			return true
		}
	}
	return false
}
