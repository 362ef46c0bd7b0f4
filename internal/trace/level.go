package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded events are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing is streamed; the ring still feeds crash dumps
	LevelPhase        // command and stage spans
	LevelDetail       // plus file spans
	LevelDebug        // plus decl spans and fallback dumps
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest is the finest scope each level lets through; zero means none.
var deepest = [...]Scope{
	LevelOff:    0,
	LevelError:  0,
	LevelPhase:  ScopeStage,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeDecl,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value. Empty means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(deepest) {
		return false
	}
	return scope != 0 && scope <= deepest[l]
}
