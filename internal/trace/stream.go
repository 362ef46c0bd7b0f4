package trace

import (
	"io"
	"sync"
)

// StreamTracer writes every accepted event to w as soon as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer // set only when the tracer owns w
	level  Level
	format Format
	err    error // first write error; later events are dropped
}

// NewStreamTracer writes to w, which the tracer does not close.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	ev.Seq = NextSeq()
	_, t.err = t.w.Write(FormatEvent(ev, t.format))
}

// Flush reports the first write error and flushes buffered writers.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes an owned output file.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
