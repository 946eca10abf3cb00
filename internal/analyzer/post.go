package analyzer

import "github.com/petrarca/mavenizer/internal/model"

const postAnalyzerName = "post"

// crossSupportThreshold is the minimum number of distinct analyzer sources a
// groupId and artifactId candidate each need before the post-analyzer treats
// their agreement as evidence worth cross-promoting.
const crossSupportThreshold = 2

// Post runs after every per-source analyzer has populated bucket. When the
// top groupId and top artifactId candidates both have independent support
// from at least two analyzers, it boosts the top version candidate (if any)
// with a corroboration source, per spec §4.3.6. Deterministic: it only
// reads bucket and always picks the highest-ScoreSum candidate per
// component, which model.AnalysisBucket already keeps sorted.
func Post(c Collector, bucket *model.AnalysisBucket) {
	groups := bucket.Candidates(model.GroupID)
	artifacts := bucket.Candidates(model.ArtifactID)
	versions := bucket.Candidates(model.Version)

	if len(groups) == 0 || len(artifacts) == 0 || len(versions) == 0 {
		return
	}
	if distinctAnalyzers(groups[0]) < crossSupportThreshold {
		return
	}
	if distinctAnalyzers(artifacts[0]) < crossSupportThreshold {
		return
	}

	top := versions[0]
	c.Emit(model.Version, top.Value, ScoreWeak, postAnalyzerName, "groupId/artifactId corroborated by 2+ analyzers")
}

func distinctAnalyzers(candidate *model.ValueCandidate) int {
	seen := make(map[string]struct{})
	for _, s := range candidate.Sources {
		seen[s.Analyzer] = struct{}{}
	}
	return len(seen)
}
