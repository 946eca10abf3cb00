package analyzer

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"strings"

	mavenmodel "deps.dev/util/maven"

	"github.com/petrarca/mavenizer/internal/model"
)

const pomAnalyzerName = "pom"

// Pom parses an embedded pom.xml and/or pom.properties and emits the UID
// triple at the highest score, per spec §4.3.3. Missing groupId/version on
// the child project falls back to the <parent> coordinates, the common
// inheritance pattern real Maven resolves at build time but which a static
// pom.xml still states explicitly in its <parent> block.
func Pom(c Collector, pomXML, pomProps []byte) {
	if len(pomXML) > 0 {
		pomXMLAnalyzer(c, pomXML)
	}
	if len(pomProps) > 0 {
		pomPropsAnalyzer(c, pomProps)
	}
}

func pomXMLAnalyzer(c Collector, data []byte) {
	var project mavenmodel.Project
	if err := xml.Unmarshal(data, &project); err != nil {
		return
	}
	_ = project.Interpolate() // best-effort; emit whatever resolves

	group := string(project.GroupID)
	if group == "" {
		group = string(project.Parent.GroupID)
	}
	version := string(project.Version)
	if version == "" {
		version = string(project.Parent.Version)
	}
	artifact := string(project.ArtifactID)

	if group != "" {
		c.Emit(model.GroupID, group, ScoreNearCertain, pomAnalyzerName, "pom.xml")
	}
	if artifact != "" {
		c.Emit(model.ArtifactID, artifact, ScoreNearCertain, pomAnalyzerName, "pom.xml")
	}
	if version != "" && model.Version.Valid(version) {
		c.Emit(model.Version, version, ScoreNearCertain, pomAnalyzerName, "pom.xml")
	}
}

func pomPropsAnalyzer(c Collector, data []byte) {
	props := parseProperties(data)
	if v := props["groupId"]; v != "" {
		c.Emit(model.GroupID, v, ScoreNearCertain, pomAnalyzerName, "pom.properties")
	}
	if v := props["artifactId"]; v != "" {
		c.Emit(model.ArtifactID, v, ScoreNearCertain, pomAnalyzerName, "pom.properties")
	}
	if v := props["version"]; v != "" && model.Version.Valid(v) {
		c.Emit(model.Version, v, ScoreNearCertain, pomAnalyzerName, "pom.properties")
	}
}

// parseProperties reads a flat key=value file, Java .properties style:
// '#' and '!' introduce comments, leading/trailing whitespace around the
// separator is trimmed. Kept on the standard library rather than importing
// a properties-file library since the grammar used here (no line
// continuations, no unicode escapes) is a handful of lines; see DESIGN.md.
func parseProperties(data []byte) map[string]string {
	out := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}
