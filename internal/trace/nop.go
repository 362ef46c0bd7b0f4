package trace

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the tracer used when tracing is off.
var Nop Tracer = nopTracer{}

// accepts is the shared admission rule: heartbeats always pass, everything
// else goes through the level filter.
func accepts(level Level, ev *Event) bool {
	return ev.Kind == KindHeartbeat || level.ShouldEmit(ev.Scope)
}
