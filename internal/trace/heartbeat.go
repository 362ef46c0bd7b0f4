package trace

import (
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat event every interval until the returned
// stop function is called. A huge tree that is still being lowered keeps
// beating; a hung run goes quiet. stop waits for the goroutine and may be
// called more than once.
func StartHeartbeat(t Tracer, interval time.Duration) (stop func()) {
	if t == nil || !t.Enabled() || interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for beat := 1; ; beat++ {
			select {
			case now := <-tick.C:
				t.Emit(&Event{
					Time:   now,
					Kind:   KindHeartbeat,
					Scope:  ScopeCommand,
					Name:   "heartbeat",
					Detail: strconv.Itoa(beat),
				})
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
