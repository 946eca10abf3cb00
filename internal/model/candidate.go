package model

import "sort"

// ValueSource records which analyzer contributed a candidate value and how
// confident it was. Score is 1 (weak hint) through 4 (near-certain).
type ValueSource struct {
	Analyzer string
	Score    int
	Detail   string
}

// ValueCandidate is one possible value for a single UID component,
// accumulated from one or more ValueSources. ScoreSum is a derived field:
// it is always the sum of Sources[*].Score and is recomputed on every Add.
type ValueCandidate struct {
	Value    string
	Sources  []ValueSource
	ScoreSum int

	// RegexValid is an advisory annotation set by the aggregator once a
	// candidate's component is known: whether Value matches that
	// component's validity regex. It never filters candidates out of the
	// bucket; it lets the Selector and Reporter share one source of truth
	// instead of each re-validating.
	RegexValid bool
}

// Add appends a source and keeps Sources sorted by score descending
// (ties broken by insertion order, i.e. a stable sort).
func (c *ValueCandidate) Add(source ValueSource) {
	c.Sources = append(c.Sources, source)
	c.ScoreSum += source.Score
	sort.SliceStable(c.Sources, func(i, j int) bool {
		return c.Sources[i].Score > c.Sources[j].Score
	})
}

// AnalysisBucket maps each UID component to its ranked candidates. Within a
// component, candidates are sorted by ScoreSum descending (ties broken by
// insertion order).
type AnalysisBucket struct {
	candidates map[MavenUidComponent][]*ValueCandidate
	index      map[MavenUidComponent]map[string]*ValueCandidate
}

// NewAnalysisBucket returns an empty bucket ready to receive tuples.
func NewAnalysisBucket() *AnalysisBucket {
	return &AnalysisBucket{
		candidates: make(map[MavenUidComponent][]*ValueCandidate),
		index:      make(map[MavenUidComponent]map[string]*ValueCandidate),
	}
}

// Add merges a (component, value) emission into the bucket, creating a new
// ValueCandidate on first sight or appending a source to an existing one.
func (b *AnalysisBucket) Add(component MavenUidComponent, value string, source ValueSource) {
	if value == "" {
		return
	}
	if b.index[component] == nil {
		b.index[component] = make(map[string]*ValueCandidate)
	}
	candidate, ok := b.index[component][value]
	if !ok {
		candidate = &ValueCandidate{Value: value}
		b.index[component][value] = candidate
		b.candidates[component] = append(b.candidates[component], candidate)
	}
	candidate.Add(source)
}

// Sort orders every component's candidate list by ScoreSum descending,
// stable so equal-score candidates keep their emission order.
func (b *AnalysisBucket) Sort() {
	for component := range b.candidates {
		list := b.candidates[component]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ScoreSum > list[j].ScoreSum
		})
	}
}

// Candidates returns the ranked candidate list for a component. The slice is
// owned by the bucket and must not be mutated by the caller.
func (b *AnalysisBucket) Candidates(component MavenUidComponent) []*ValueCandidate {
	return b.candidates[component]
}
