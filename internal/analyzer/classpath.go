package analyzer

import (
	"path"
	"regexp"
	"strings"

	"github.com/petrarca/mavenizer/internal/jarfile"
	"github.com/petrarca/mavenizer/internal/model"
)

const classpathAnalyzerName = "class-filepath"

var javaIdentRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ClassFilepath finds the deepest shared package prefix across all class
// entries and emits it as a groupId candidate, plus the next segment down
// (whichever holds the most classes) as weak artifactId evidence, per
// spec §4.3.4.
func ClassFilepath(c Collector, classes []jarfile.ClassEntry) {
	if len(classes) == 0 {
		return
	}

	packages := make([][]string, 0, len(classes))
	for _, entry := range classes {
		pkg := packageSegments(entry.Path)
		if len(pkg) > 0 {
			packages = append(packages, pkg)
		}
	}
	if len(packages) == 0 {
		return
	}

	prefix := sharedPrefix(packages)
	if len(prefix) == 0 {
		return
	}

	sharing := 0
	nextSegmentCounts := make(map[string]int)
	for _, pkg := range packages {
		if !hasPrefix(pkg, prefix) {
			continue
		}
		sharing++
		if len(pkg) > len(prefix) {
			nextSegmentCounts[pkg[len(prefix)]]++
		}
	}

	fraction := float64(sharing) / float64(len(packages))
	score := scoreFromFraction(fraction)
	if score == 0 {
		return
	}

	c.Emit(model.GroupID, strings.Join(prefix, "."), score, classpathAnalyzerName, "shared class package prefix")

	if best, count := modalSegment(nextSegmentCounts); best != "" && count > 0 {
		c.Emit(model.ArtifactID, best, ScoreWeak, classpathAnalyzerName, "dominant sub-package below shared prefix")
	}
}

func packageSegments(classPath string) []string {
	dir := path.Dir(classPath)
	if dir == "." {
		return nil
	}
	segments := strings.Split(dir, "/")
	for _, s := range segments {
		if !javaIdentRegex.MatchString(s) {
			return nil
		}
	}
	return segments
}

func sharedPrefix(paths [][]string) []string {
	prefix := append([]string(nil), paths[0]...)
	for _, p := range paths[1:] {
		prefix = commonPrefix(prefix, p)
		if len(prefix) == 0 {
			return nil
		}
	}
	return prefix
}

func commonPrefix(a, b []string) []string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func hasPrefix(pkg, prefix []string) bool {
	if len(pkg) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if pkg[i] != p {
			return false
		}
	}
	return true
}

func modalSegment(counts map[string]int) (string, int) {
	var best string
	var bestCount int
	for seg, n := range counts {
		if n > bestCount || (n == bestCount && seg < best) {
			best, bestCount = seg, n
		}
	}
	return best, bestCount
}

func scoreFromFraction(fraction float64) int {
	switch {
	case fraction >= 0.9:
		return ScoreNearCertain
	case fraction >= 0.7:
		return ScoreStrong
	case fraction >= 0.4:
		return ScorePlausible
	case fraction > 0:
		return ScoreWeak
	default:
		return 0
	}
}
