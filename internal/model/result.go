package model

import "time"

// Future is a single-value, single-producer handoff: exactly one send on Ch,
// then close. Callers receive with <-f.Ch, which yields the zero value once
// closed without a send having happened (treated as "cancelled").
type Future[T any] struct {
	Ch chan T
}

// NewFuture returns a Future with a buffered channel of capacity 1, so the
// producer never blocks on a consumer that arrives late.
func NewFuture[T any]() Future[T] {
	return Future[T]{Ch: make(chan T, 1)}
}

// Resolve sends the value and closes the channel. Must be called at most once.
func (f Future[T]) Resolve(v T) {
	f.Ch <- v
	close(f.Ch)
}

// WithVersionResult is what check_with_version (§4.6) produces.
type WithVersionResult struct {
	Matches map[MavenUid]OnlineMatch
}

// NoVersionResult is what check_no_version (§4.6) produces: per discovered
// group+artifact UID (no version), the set of UidChecks probed.
type NoVersionResult struct {
	Checks map[MavenUid][]UidCheck
}

// Checksum is a local sidecar digest (<jar>.sha1 or <jar>.sha256) found next
// to an input jar, read once during Phase A. Algo is "sha1" or "sha256".
type Checksum struct {
	Algo string
	Hex  string
}

// JarAnalysisResult is the per-jar bundle threaded from Phase A through
// Phase C of the pipeline: the jar identity, its offline analysis bucket,
// and the two online futures submitted in Phase B (allocated for every jar,
// but never resolved when offline mode is enabled, since Phase B never runs).
type JarAnalysisResult struct {
	Jar          Jar
	Bucket       *AnalysisBucket
	Sidecar      *Checksum
	WithVersion  Future[WithVersionResult]
	NoVersion    Future[NoVersionResult]
	OfflineError error
	StartedAt    time.Time
}
