// Package astio reads and writes front-end tree exports.
//
// The front end dumps its resolved tree as generic wire nodes tagged with the
// front end's own class names. Decode turns that document into the typed
// ast unions; Encode is the inverse and is used by `cxxpy dump --to` and in
// tests. Three encodings share the same wire shape: JSON, MessagePack and
// CBOR.
package astio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Node is one wire node. Only the fields a kind uses are set.
type Node struct {
	Kind   string   `json:"kind"`
	File   string   `json:"file,omitempty"`
	Line   int64    `json:"line,omitempty"`
	Col    int64    `json:"col,omitempty"`
	System bool     `json:"system,omitempty"`
	Name   string   `json:"name,omitempty"`
	Type   string   `json:"type,omitempty"`
	Op     string   `json:"op,omitempty"`
	Value  string   `json:"value,omitempty"`
	Access string   `json:"access,omitempty"`
	Flags  []string `json:"flags,omitempty"`
	Params []*Node  `json:"params,omitempty"`
	Bases  []string `json:"bases,omitempty"`
	Base   *Node    `json:"base,omitempty"`
	Cond   *Node    `json:"cond,omitempty"`
	Then   *Node    `json:"then,omitempty"`
	Else   *Node    `json:"else,omitempty"`
	Body   *Node    `json:"body,omitempty"`
	Init   *Node    `json:"init,omitempty"`
	Inc    *Node    `json:"inc,omitempty"`
	Sub    *Node    `json:"sub,omitempty"`
	Args   []*Node  `json:"args,omitempty"`
	Items  []*Node  `json:"items,omitempty"`
}

// Flag names carried in Node.Flags.
const (
	FlagDefined          = "defined"
	FlagPure             = "pure"
	FlagCanonical        = "canonical"
	FlagPostfix          = "postfix"
	FlagHasValue         = "has_value"
	FlagCopyAssign       = "copy_assign"
	FlagMoveAssign       = "move_assign"
	FlagDestroyingDelete = "destroying_delete"
)

// Has reports whether flag is set.
func (n *Node) Has(flag string) bool {
	if n == nil {
		return false
	}
	for _, f := range n.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

func (n *Node) set(flag string, on bool) {
	if on {
		n.Flags = append(n.Flags, flag)
	}
}

// Format selects a wire encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
	FormatCBOR    Format = "cbor"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatMsgpack, FormatCBOR:
		return f, nil
	case "mp":
		return FormatMsgpack, nil
	}
	return FormatAuto, fmt.Errorf("unknown format %q (expected auto|json|msgpack|cbor)", s)
}

// FormatFromPath picks the encoding from a file extension. JSON is the
// default for unknown extensions.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return FormatMsgpack
	case ".cbor":
		return FormatCBOR
	}
	return FormatJSON
}

// Extension returns the canonical file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatMsgpack:
		return ".msgpack"
	case FormatCBOR:
		return ".cbor"
	}
	return ".json"
}

// RootKind tags the document root holding all top-level declarations.
const RootKind = "TranslationUnitDecl"
