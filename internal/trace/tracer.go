package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	// Wants reports whether an event of scope would be kept; callers use it
	// to skip building events nobody records.
	Wants(scope Scope) bool
	Emit(ev *Event)
	Flush() error
	Close() error
}

type nopTracer struct{}

func (nopTracer) Wants(Scope) bool { return false }
func (nopTracer) Emit(*Event)      {}
func (nopTracer) Flush() error     { return nil }
func (nopTracer) Close() error     { return nil }

// Nop drops everything.
var Nop Tracer = nopTracer{}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written immediately
	ModeRing                          // kept in memory, dumped on exit
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name != "" && name == want {
			return StorageMode(i), nil
		}
	}
	return 0, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto picks by OutputPath
	Output     io.Writer     // takes precedence over OutputPath
	OutputPath string        // "" or "-" is stderr
	RingSize   int           // default 4096
	Heartbeat  time.Duration // consumed by the caller via StartHeartbeat
}

// New builds a tracer from cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamTracer(w, cfg.Level, format)
		if cfg.Mode == ModeStream {
			return stream, nil
		}
		return NewMultiTracer(stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return stderr{}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// stderr is os.Stderr without Close.
type stderr struct{}

func (stderr) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

var seq atomic.Uint64

func stamp(ev *Event) {
	if ev.Seq == 0 {
		ev.Seq = seq.Add(1)
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
}

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	tracers []Tracer
}

// NewMultiTracer combines tracers; each gets its own copy of an event.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers}
}

func (t *MultiTracer) Wants(scope Scope) bool {
	for _, tr := range t.tracers {
		if tr.Wants(scope) {
			return true
		}
	}
	return false
}

func (t *MultiTracer) Emit(ev *Event) {
	stamp(ev)
	for _, tr := range t.tracers {
		if tr.Wants(ev.Scope) || ev.Kind == KindHeartbeat {
			cp := *ev
			tr.Emit(&cp)
		}
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Ring returns the first ring among the children, if any.
func (t *MultiTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r
		}
	}
	return nil
}
