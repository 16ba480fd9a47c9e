// Package trace provides a bounded in-memory execution trace alongside
// structured logging, so a console's recent history can be dumped on
// request without paying for string formatting on every cycle.
package trace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Traceable is implemented by anything that can describe its own
// current state as a single trace line (a CPU about to execute an
// instruction, a PPU about to render a dot, and so on). Returning ""
// means nothing worth recording happened this cycle.
type Traceable interface {
	Trace() string
}

// Sink is a ring buffer of trace lines plus a logrus logger for
// out-of-band diagnostics (ROM load failures, unsupported mappers,
// audio device errors). One Sink is created per console.
type Sink struct {
	mu       sync.Mutex
	history  []string
	capacity int
	next     int
	filled   bool

	Log *logrus.Logger
}

// NewSink creates a Sink that retains the most recent capacity trace
// lines.
func NewSink(capacity int) *Sink {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &Sink{
		history:  make([]string, capacity),
		capacity: capacity,
		Log:      log,
	}
}

// Record appends a trace line, evicting the oldest entry once capacity
// is reached.
func (s *Sink) Record(line string) {
	if line == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[s.next] = line
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.filled = true
	}
}

// LogTraceable records t's Trace() if it reports anything.
func (s *Sink) LogTraceable(t Traceable) {
	s.Record(t.Trace())
}

// Dump returns the retained trace lines oldest-first, numbered as the
// original tracer.rs output does.
func (s *Sink) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ordered []string
	if s.filled {
		ordered = append(ordered, s.history[s.next:]...)
		ordered = append(ordered, s.history[:s.next]...)
	} else {
		ordered = s.history[:s.next]
	}

	var b strings.Builder
	for i, line := range ordered {
		fmt.Fprintf(&b, "%04d: %s\n", i, line)
	}
	return b.String()
}

// Clear discards all retained trace lines.
func (s *Sink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = make([]string, s.capacity)
	s.next = 0
	s.filled = false
}
