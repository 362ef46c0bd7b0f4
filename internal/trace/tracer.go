package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Mode selects where events are kept.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // written as they happen
	ModeRing                   // kept in memory for crash dumps
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m Mode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode reads a --trace-mode value.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name != "" && name == s {
			return Mode(i), nil
		}
	}
	return ModeStream, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // overrides OutputPath when set
	OutputPath string    // "-" or empty means stderr
	RingSize   int       // DefaultRingSize when not positive
}

// DefaultRingSize is the ring capacity when none is configured.
const DefaultRingSize = 4096

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}
	if cfg.Format == FormatAuto {
		cfg.Format = formatForPath(cfg.OutputPath)
	}

	stream := func() (*StreamTracer, error) {
		if cfg.Output != nil {
			return NewStreamTracer(cfg.Output, cfg.Level, cfg.Format), nil
		}
		if cfg.OutputPath == "" || cfg.OutputPath == "-" {
			return NewStreamTracer(os.Stderr, cfg.Level, cfg.Format), nil
		}
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		st := NewStreamTracer(f, cfg.Level, cfg.Format)
		st.closer = f
		return st, nil
	}

	switch cfg.Mode {
	case ModeStream:
		st, err := stream()
		if err != nil {
			return nil, err
		}
		return st, nil
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		st, err := stream()
		if err != nil {
			return nil, err
		}
		return NewMultiTracer(cfg.Level, st, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
	return nil, fmt.Errorf("unknown trace mode: %v", cfg.Mode)
}

func formatForPath(path string) Format {
	switch filepath.Ext(path) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}
