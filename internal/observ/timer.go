// Package observ times the phases of a check run (load, actors, functions)
// for the --timings flag.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed section of a run.
type Phase struct {
	Name  string
	Start time.Time
	End   time.Time
	Note  string
}

// Elapsed is the phase duration; zero until the phase ended.
func (p Phase) Elapsed() time.Duration {
	if p.End.IsZero() {
		return 0
	}
	return p.End.Sub(p.Start)
}

// Timer collects phases in the order they begin. Not safe for concurrent
// use; the driver times phases from the orchestrating goroutine only.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8)}
}

// Begin opens a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase; note is free-form ("3 actors", a file path).
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].End = time.Now()
	t.phases[idx].Note = note
}

// Measure times fn as a named phase.
func (t *Timer) Measure(name, note string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	t.End(idx, note)
	return err
}

// PhaseReport is the serialisable form of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the timer's phases.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots every phase with durations in milliseconds.
func (t *Timer) Report() Report {
	var out Report
	for _, p := range t.phases {
		ms := float64(p.Elapsed()) / float64(time.Millisecond)
		out.Phases = append(out.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note})
		out.TotalMS += ms
	}
	return out
}

// Summary renders the report as an aligned text block.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}
