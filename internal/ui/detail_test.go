package ui

import (
	"strings"
	"testing"

	"github.com/petrarca/mavenizer/internal/model"
)

func TestPrintDetailedCandidates_RendersEveryComponent(t *testing.T) {
	bucket := model.NewAnalysisBucket()
	bucket.Add(model.GroupID, "com.example", model.ValueSource{Analyzer: "manifest", Score: 4})
	bucket.Add(model.ArtifactID, "widget", model.ValueSource{Analyzer: "jar-filename", Score: 3})
	bucket.Add(model.Version, "1.0.0", model.ValueSource{Analyzer: "jar-filename", Score: 3})
	bucket.Sort()

	reports := []model.JarReport{
		{JarName: "widget-1.0.0.jar", Candidates: bucket},
	}

	var out strings.Builder
	PrintDetailedCandidates(&out, reports)
	rendered := out.String()

	for _, want := range []string{"widget-1.0.0.jar", "com.example", "widget", "1.0.0", "manifest"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, rendered)
		}
	}
}

func TestPrintDetailedCandidates_NilCandidatesJustPrintsJarName(t *testing.T) {
	reports := []model.JarReport{{JarName: "widget.jar", Candidates: nil}}

	var out strings.Builder
	PrintDetailedCandidates(&out, reports)
	if !strings.Contains(out.String(), "widget.jar") {
		t.Errorf("expected jar name in output, got %q", out.String())
	}
}
