package ast

import "fmt"

// Pos is a spelling location reported by the front end.
type Pos struct {
	File   string
	Line   uint32 // 1-based, 0 if unknown
	Col    uint32 // 1-based, 0 if unknown
	System bool   // location lies in a system/library header
}

// IsValid reports whether the position points at real source text.
func (p Pos) IsValid() bool {
	return p.Line > 0 && p.Col > 0
}

// String formats the position as "<line>:<column>".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Long formats the position with the file path when known.
func (p Pos) Long() string {
	if p.File == "" {
		return p.String()
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}
