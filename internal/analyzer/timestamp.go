package analyzer

import (
	"github.com/petrarca/mavenizer/internal/jarfile"
	"github.com/petrarca/mavenizer/internal/model"
)

const timestampAnalyzerName = "class-timestamp"

// ClassTimestamp buckets classes by the max of their creation/last-modified
// time, truncated to a UTC date, and emits the modal date as a version
// candidate when it covers more than 60% of classes, per spec §4.3.5.
func ClassTimestamp(c Collector, classes []jarfile.ClassEntry) {
	if len(classes) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, entry := range classes {
		t := entry.LastModified
		if entry.Created.After(t) {
			t = entry.Created
		}
		if t.IsZero() {
			continue
		}
		date := t.UTC().Format("2006.01.02")
		counts[date]++
	}
	if len(counts) == 0 {
		return
	}

	var modalDate string
	var modalCount int
	for date, n := range counts {
		if n > modalCount || (n == modalCount && date < modalDate) {
			modalDate, modalCount = date, n
		}
	}

	ratio := float64(modalCount) / float64(len(classes))
	if ratio <= 0.6 {
		return
	}

	if !model.Version.Valid(modalDate) {
		return
	}
	c.Emit(model.Version, modalDate, ScoreWeak, timestampAnalyzerName, "modal class date ratio")
}
