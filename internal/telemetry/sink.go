package telemetry

import "time"

// Report is the wire form of a captured fault. It carries only what an
// external collector needs; view content never travels here.
type Report struct {
	EpisodeID    string    `json:"episode_id"`
	App          string    `json:"app,omitempty"`
	Message      string    `json:"message"`
	Stack        string    `json:"stack,omitempty"`
	ContextTrace string    `json:"context_trace,omitempty"`
	At           time.Time `json:"at"`
}

// Sink receives fault reports. Implementations are fire-and-forget: Report
// must not block the caller meaningfully and must never panic.
type Sink interface {
	Report(r Report)
}

// Nop is a sink that discards all reports.
type Nop struct{}

// Report discards r.
func (Nop) Report(r Report) {}
