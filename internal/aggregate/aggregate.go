// Package aggregate implements the Candidate Aggregator (C4): it is handed
// an AnalysisBucket that analyzers have already populated through a
// Collector, and finalizes it for consumption by the Selector and Reporter.
package aggregate

import "github.com/petrarca/mavenizer/internal/model"

// Finalize sorts every component's candidate list by scoreSum descending
// (stable, so ties keep emission order) and tags each candidate with
// whether its value is regex-valid for its component. It must be called
// exactly once per jar, after every analyzer (including the post-analyzer)
// has finished emitting.
func Finalize(bucket *model.AnalysisBucket) {
	bucket.Sort()

	for _, component := range []model.MavenUidComponent{model.GroupID, model.ArtifactID, model.Version} {
		for _, candidate := range bucket.Candidates(component) {
			candidate.RegexValid = component.Valid(candidate.Value)
		}
	}
}
