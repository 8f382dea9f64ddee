package trace

import (
	"io"
	"sync"
)

// StreamTracer encodes each event straight to a writer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewStreamTracer creates a StreamTracer; FormatAuto means text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Wants(scope Scope) bool { return t.level.ShouldEmit(scope) }

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || (!t.Wants(ev.Scope) && ev.Kind != KindHeartbeat) {
		return
	}
	stamp(ev)
	line := Encode(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// трассировка никогда не должна валить проверку
	_, _ = t.w.Write(line)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RingTracer keeps the most recent events in a fixed-size buffer.
// At LevelError it still keeps command and file events, which is what a
// crash dump needs.
type RingTracer struct {
	mu      sync.Mutex
	buf     []Event
	next    int
	wrapped bool
	ceiling Scope
}

// NewRingTracer creates a ring of capacity events (default 4096).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	ceiling := level.ceiling()
	if level == LevelError {
		ceiling = ScopeFile
	}
	return &RingTracer{buf: make([]Event, capacity), ceiling: ceiling}
}

func (t *RingTracer) Wants(scope Scope) bool { return scope != 0 && scope <= t.ceiling }

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || (!t.Wants(ev.Scope) && ev.Kind != KindHeartbeat) {
		return
	}
	stamp(ev)

	t.mu.Lock()
	t.buf[t.next] = *ev
	t.next++
	if t.next == len(t.buf) {
		t.next, t.wrapped = 0, true
	}
	t.mu.Unlock()
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.wrapped {
		return append([]Event(nil), t.buf[:t.next]...)
	}
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.next:]...)
	return append(out, t.buf[:t.next]...)
}

// Dump encodes the retained events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(Encode(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
