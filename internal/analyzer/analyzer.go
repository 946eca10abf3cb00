// Package analyzer implements the five offline evidence analyzers plus the
// optional post-analyzer (spec §4.3). Each analyzer is a pure function: it
// reads one view of a jar and emits scored candidates through a Collector,
// never seeing another analyzer's output.
package analyzer

import "github.com/petrarca/mavenizer/internal/model"

// Collector receives scored candidate emissions from an analyzer.
type Collector interface {
	Emit(component model.MavenUidComponent, value string, score int, analyzer, detail string)
}

// bucketCollector adapts a model.AnalysisBucket to the Collector interface,
// tagging every emission with the analyzer's name.
type bucketCollector struct {
	bucket *model.AnalysisBucket
}

// NewCollector returns a Collector that writes straight into bucket.
func NewCollector(bucket *model.AnalysisBucket) Collector {
	return &bucketCollector{bucket: bucket}
}

func (c *bucketCollector) Emit(component model.MavenUidComponent, value string, score int, analyzer, detail string) {
	if value == "" || score <= 0 {
		return
	}
	c.bucket.Add(component, value, model.ValueSource{
		Analyzer: analyzer,
		Score:    score,
		Detail:   detail,
	})
}

// Score levels, per spec §4.3: uniform across every analyzer.
const (
	ScoreWeak       = 1
	ScorePlausible  = 2
	ScoreStrong     = 3
	ScoreNearCertain = 4
)
