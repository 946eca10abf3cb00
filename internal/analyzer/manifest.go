package analyzer

import (
	"strings"

	"github.com/petrarca/mavenizer/internal/jarfile"
	"github.com/petrarca/mavenizer/internal/model"
)

const manifestAnalyzerName = "manifest"

// Manifest reads the jar's MANIFEST.MF main section and maps well-known
// attributes to UID components by fixed rule, per spec §4.3.1.
func Manifest(c Collector, m *jarfile.Manifest) {
	if m == nil {
		return
	}

	if v := m.Get("Implementation-Vendor-Id"); v != "" {
		c.Emit(model.GroupID, v, ScoreStrong, manifestAnalyzerName, "Implementation-Vendor-Id")
	}

	if v := m.Get("Bundle-SymbolicName"); v != "" {
		group, artifact := splitSymbolicName(v)
		if group != "" {
			c.Emit(model.GroupID, group, ScorePlausible, manifestAnalyzerName, "Bundle-SymbolicName")
		}
		if artifact != "" {
			c.Emit(model.ArtifactID, artifact, ScorePlausible, manifestAnalyzerName, "Bundle-SymbolicName")
		}
	}

	if v := m.Get("Implementation-Title"); v != "" {
		c.Emit(model.ArtifactID, v, ScoreWeak, manifestAnalyzerName, "Implementation-Title")
	}
	if v := m.Get("Bundle-Name"); v != "" {
		c.Emit(model.ArtifactID, v, ScoreWeak, manifestAnalyzerName, "Bundle-Name")
	}

	if v := m.Get("Implementation-Version"); v != "" && model.Version.Valid(v) {
		c.Emit(model.Version, v, ScoreStrong, manifestAnalyzerName, "Implementation-Version")
	}
	if v := m.Get("Bundle-Version"); v != "" && model.Version.Valid(v) {
		c.Emit(model.Version, v, ScoreStrong, manifestAnalyzerName, "Bundle-Version")
	}
}

// splitSymbolicName splits an OSGi Bundle-SymbolicName like
// "com.example.widget" on its last dot into a groupId/artifactId guess; a
// name with no dot is returned as the artifactId alone.
func splitSymbolicName(name string) (group, artifact string) {
	name = strings.SplitN(name, ";", 2)[0] // drop directives, e.g. ";singleton:=true"
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}
