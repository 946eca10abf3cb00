package analyzer

import (
	"regexp"
	"strings"

	"github.com/petrarca/mavenizer/internal/model"
)

const filenameAnalyzerName = "jar-filename"

// versionSuffixRegex matches a trailing "-<version>" or ".<version>" segment
// that starts with a digit, per spec §4.3.2's version-boundary rule.
var versionSuffixRegex = regexp.MustCompile(`^(.*?)[-.]([0-9][A-Za-z0-9_.\-]*)$`)

// Filename strips ".jar" and splits the stem on a version boundary, per
// spec §4.3.2.
func Filename(c Collector, name string) {
	stem := strings.TrimSuffix(name, ".jar")
	stem = strings.TrimSuffix(stem, ".JAR")
	if stem == "" {
		return
	}

	if m := versionSuffixRegex.FindStringSubmatch(stem); m != nil && model.Version.Valid(m[2]) {
		artifact, version := m[1], m[2]
		c.Emit(model.ArtifactID, artifact, ScorePlausible, filenameAnalyzerName, "filename prefix")
		c.Emit(model.Version, version, ScorePlausible, filenameAnalyzerName, "filename suffix")
		return
	}

	c.Emit(model.ArtifactID, stem, ScoreWeak, filenameAnalyzerName, "filename stem, no version boundary")
}
