// Package metadata tracks run-level statistics for a mavenizer invocation:
// timing and jar counts, printed as an operator-facing summary alongside
// the JSON report (the report document itself only carries the
// analysisInfo block the spec documents).
package metadata

import "time"

// RunMetadata summarizes one analyze invocation.
type RunMetadata struct {
	StartedAt      time.Time
	DurationMs     int64
	JarsRequested  int
	JarsAnalyzed   int
	JarsReported   int
	JarsSkipped    int
	OnlineEnabled  bool
}

// NewRunMetadata starts tracking a run.
func NewRunMetadata(jarsRequested int, onlineEnabled bool) *RunMetadata {
	return &RunMetadata{
		StartedAt:     time.Now().UTC(),
		JarsRequested: jarsRequested,
		OnlineEnabled: onlineEnabled,
	}
}

// Finish records the final counts and elapsed duration.
func (m *RunMetadata) Finish(jarsAnalyzed, jarsReported int) {
	m.JarsAnalyzed = jarsAnalyzed
	m.JarsReported = jarsReported
	m.JarsSkipped = jarsAnalyzed - jarsReported
	m.DurationMs = time.Since(m.StartedAt).Milliseconds()
}
