// Package naming maps source identifiers and type names onto names that are
// valid and unambiguous in the generated script.
package naming

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"
)

// Target selects which names a rename rule applies to.
type Target string

const (
	// TargetType applies to type names in casts and constructions.
	TargetType Target = "type"
	// TargetCall applies to free-function callee names.
	TargetCall Target = "call"
)

// Rule is a regex rewrite. Replace uses $1-style group references.
type Rule struct {
	Target  Target
	Pattern string
	Replace string
}

type compiledRule struct {
	Rule
	re *regexp2.Regexp
}

// ruleTimeout bounds a single rule evaluation; patterns come from user config.
const ruleTimeout = 250 * time.Millisecond

// reserved lists target keywords plus names the lowering itself emits.
var reserved = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
	"self": {}, "len": {}, "range": {},
}

// operatorMethods maps overloaded operator names to special method names.
var operatorMethods = map[string]string{
	"operator+":   "__add__",
	"operator-":   "__sub__",
	"operator*":   "__mul__",
	"operator/":   "__truediv__",
	"operator%":   "__mod__",
	"operator==":  "__eq__",
	"operator!=":  "__ne__",
	"operator<":   "__lt__",
	"operator<=":  "__le__",
	"operator>":   "__gt__",
	"operator>=":  "__ge__",
	"operator[]":  "__getitem__",
	"operator()":  "__call__",
	"operator+=":  "__iadd__",
	"operator-=":  "__isub__",
	"operator*=":  "__imul__",
	"operator/=":  "__itruediv__",
	"operator<<":  "__lshift__",
	"operator>>":  "__rshift__",
	"operator&":   "__and__",
	"operator|":   "__or__",
	"operator^":   "__xor__",
	"operator~":   "__invert__",
	"operator!":   "__not__",
	"operator<=>": "__cmp__",
}

// DefaultTypes is the built-in numeric type rewrite table.
func DefaultTypes() map[string]string {
	return map[string]string{
		"double": "float",
	}
}

// Renamer applies the naming policy. It is immutable after New and safe for
// concurrent use.
type Renamer struct {
	types map[string]string
	rules []compiledRule
}

// New compiles the rules. types is merged over DefaultTypes.
func New(types map[string]string, rules []Rule) (*Renamer, error) {
	merged := DefaultTypes()
	for k, v := range types {
		merged[k] = v
	}
	r := &Renamer{types: merged}
	for i, rule := range rules {
		switch rule.Target {
		case TargetType, TargetCall:
		default:
			return nil, fmt.Errorf("rename rule %d: unknown target %q (expected type|call)", i, rule.Target)
		}
		re, err := regexp2.Compile(rule.Pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("rename rule %d: bad pattern %q: %w", i, rule.Pattern, err)
		}
		re.MatchTimeout = ruleTimeout
		r.rules = append(r.rules, compiledRule{Rule: rule, re: re})
	}
	return r, nil
}

// Default returns a renamer with only the built-in tables.
func Default() *Renamer {
	return &Renamer{types: DefaultTypes()}
}

// Ident normalises an identifier (NFKC) and escapes reserved words.
func (r *Renamer) Ident(name string) string {
	if name == "" {
		return name
	}
	name = norm.NFKC.String(name)
	if _, ok := reserved[name]; ok {
		return name + "_"
	}
	return name
}

// Method maps a member-function name, turning operator overloads into
// special method names.
func (r *Renamer) Method(name string) string {
	if m, ok := operatorMethods[strings.ReplaceAll(name, " ", "")]; ok {
		return m
	}
	return r.Ident(name)
}

// Type rewrites a written type name through the table and type rules.
func (r *Renamer) Type(name string) string {
	name = strings.TrimSpace(name)
	if r == nil {
		return name
	}
	if t, ok := r.types[name]; ok {
		name = t
	}
	return r.apply(TargetType, name)
}

// Call rewrites a free-function callee name.
func (r *Renamer) Call(name string) string {
	if r == nil {
		return name
	}
	out := r.apply(TargetCall, name)
	if isIdent(out) {
		return r.Ident(out)
	}
	return out
}

func (r *Renamer) apply(target Target, name string) string {
	for _, rule := range r.rules {
		if rule.Target != target {
			continue
		}
		out, err := rule.re.Replace(name, rule.Replace, -1, -1)
		if err != nil {
			// timeout: leave the name as is
			continue
		}
		name = out
	}
	return name
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c > 0x7f:
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
