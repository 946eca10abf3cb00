package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/petrarca/mavenizer/internal/model"
)

var (
	detailJarStyle   = lipgloss.NewStyle().Bold(true)
	detailCompStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	detailValueStyle = lipgloss.NewStyle().PaddingLeft(4)
)

// PrintDetailedCandidates renders every candidate considered for each jar,
// not just the one picked — the --force-detailed-output supplemented
// feature.
func PrintDetailedCandidates(w io.Writer, reports []model.JarReport) {
	for _, r := range reports {
		fmt.Fprintln(w, detailJarStyle.Render(r.JarName))
		if r.Candidates == nil {
			continue
		}
		for _, component := range []model.MavenUidComponent{model.GroupID, model.ArtifactID, model.Version} {
			fmt.Fprintln(w, detailCompStyle.Render(component.String()))
			for _, candidate := range r.Candidates.Candidates(component) {
				sources := make([]string, 0, len(candidate.Sources))
				for _, s := range candidate.Sources {
					sources = append(sources, fmt.Sprintf("%s(%d)", s.Analyzer, s.Score))
				}
				fmt.Fprintln(w, detailValueStyle.Render(fmt.Sprintf("%-30s score=%-3d %v", candidate.Value, candidate.ScoreSum, sources)))
			}
		}
	}
}
