// Package selector implements the Candidate Selector (C6): it turns a
// finalized AnalysisBucket into the ordered set of MavenUid triples the
// Repo Checker should probe online.
package selector

import "github.com/petrarca/mavenizer/internal/model"

// scoreFloor is the minimum scoreSum a candidate needs to be considered,
// per spec §4.5.
const scoreFloor = 2

// defaultTopK is the default per-component candidate cap (K in spec §4.5).
const defaultTopK = 2

// maxTriples bounds the cartesian product (2×2×2 = 8 by default).
const maxTriples = 8

// Selector picks which (groupId, artifactId, version) triples from an
// AnalysisBucket to probe online. TopK and ScoreFloor are overridable via
// config so an operator can tune recall/precision without a rebuild.
type Selector struct {
	TopK       int
	ScoreFloor int
}

// New returns a Selector configured with the documented defaults.
func New() *Selector {
	return &Selector{TopK: defaultTopK, ScoreFloor: scoreFloor}
}

// Select returns the ordered, deduplicated set of triples to probe, highest
// combined score first. A triple with an empty Version means version
// discovery must run for that (groupId, artifactId) pair.
func (s *Selector) Select(bucket *model.AnalysisBucket) []model.MavenUid {
	groups := s.filtered(bucket, model.GroupID)
	artifacts := s.filtered(bucket, model.ArtifactID)
	versions := s.filtered(bucket, model.Version)

	if len(groups) == 0 || len(artifacts) == 0 {
		return nil
	}

	versionValues := make([]string, 0, len(versions))
	for _, v := range versions {
		versionValues = append(versionValues, v.Value)
	}
	if len(versionValues) == 0 {
		versionValues = []string{""}
	}

	seen := make(map[model.MavenUid]struct{})
	var result []model.MavenUid

	for _, g := range groups {
		for _, a := range artifacts {
			for _, v := range versionValues {
				uid := model.MavenUid{GroupID: g.Value, ArtifactID: a.Value, Version: v}
				if _, ok := seen[uid]; ok {
					continue
				}
				seen[uid] = struct{}{}
				result = append(result, uid)
				if len(result) >= maxTriples {
					return result
				}
			}
		}
	}
	return result
}

// filtered returns the top-K candidates for component whose scoreSum meets
// the floor. bucket.Candidates already returns them sorted descending.
func (s *Selector) filtered(bucket *model.AnalysisBucket, component model.MavenUidComponent) []*model.ValueCandidate {
	candidates := bucket.Candidates(component)
	var out []*model.ValueCandidate
	for _, c := range candidates {
		if c.ScoreSum < s.ScoreFloor {
			break // sorted descending: nothing further qualifies
		}
		out = append(out, c)
		if len(out) >= s.TopK {
			break
		}
	}
	return out
}
