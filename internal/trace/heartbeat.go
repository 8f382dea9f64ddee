package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic events. Heartbeats with no span end in between
// point at a file the sniffs are stuck on.
type Heartbeat struct {
	stop chan struct{}
	once sync.Once
	done sync.WaitGroup
}

// StartHeartbeat starts beating into tracer; nil when tracing is off.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || interval <= 0 || !tracer.Wants(ScopeCommand) {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{})}
	h.done.Add(1)
	go func() {
		defer h.done.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for n := 1; ; n++ {
			select {
			case <-ticker.C:
				tracer.Emit(&Event{Kind: KindHeartbeat, Scope: ScopeCommand, Name: "heartbeat", Detail: "#" + strconv.Itoa(n)})
			case <-h.stop:
				return
			}
		}
	}()
	return h
}

// Stop ends the heartbeat and waits for its goroutine. Safe on nil and twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
