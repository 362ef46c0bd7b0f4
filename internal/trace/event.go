package trace

import "time"

// Kind tells what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Coarser scopes have lower values.
type Scope uint8

const (
	ScopeCommand Scope = iota + 1 // one CLI invocation
	ScopeStage                    // decode, lower or write
	ScopeFile                     // one input file
	ScopeDecl                     // one declaration or untranslated fragment
)

var scopeNames = [...]string{
	ScopeCommand: "command",
	ScopeStage:   "stage",
	ScopeFile:    "file",
	ScopeDecl:    "decl",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Seq is assigned by the tracer that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string
	Detail   string
	Elapsed  time.Duration // span end only
	Extra    map[string]string
}
