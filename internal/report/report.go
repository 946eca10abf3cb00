// Package report implements the Reporter (C8): it shapes a pipeline run's
// JarReports into the documented JSON output, validates it against the
// embedded schema, and writes it to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/petrarca/mavenizer/internal/model"
	"github.com/petrarca/mavenizer/internal/validation"
)

// Repository names one of the remote repositories consulted during a run.
type Repository struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AnalysisInfo is the report's top-level run metadata block.
type AnalysisInfo struct {
	OnlineCheckEnabled bool         `json:"onlineCheckEnabled"`
	RemoteRepositories []Repository `json:"remoteRepositories"`
}

// JarResult is one row of the report's jarResults array.
type JarResult struct {
	JarName   string   `json:"jarName"`
	Sha256    string   `json:"sha256"`
	MatchType *string  `json:"matchType"`
	Uid       UidFields `json:"uid"`
}

// UidFields is the report's uid object.
type UidFields struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
}

// Document is the full report shape, per spec §6.
type Document struct {
	AnalysisInfo AnalysisInfo `json:"analysisInfo"`
	JarResults   []JarResult  `json:"jarResults"`
}

// Build assembles a Document from pipeline output. repos is the list of
// remote repositories that were configured for this run (nil when
// onlineCheckEnabled is false; Write emits it as an empty array).
func Build(reports []model.JarReport, onlineCheckEnabled bool, repos []Repository) Document {
	doc := Document{
		AnalysisInfo: AnalysisInfo{
			OnlineCheckEnabled: onlineCheckEnabled,
			RemoteRepositories: repos,
		},
	}
	for _, r := range reports {
		var matchType *string
		if r.Match != nil {
			s := r.Match.String()
			matchType = &s
		}
		doc.JarResults = append(doc.JarResults, JarResult{
			JarName:   r.JarName,
			Sha256:    r.Sha256,
			MatchType: matchType,
			Uid: UidFields{
				GroupID:    r.Uid.GroupID,
				ArtifactID: r.Uid.ArtifactID,
				Version:    r.Uid.Version,
			},
		})
	}
	return doc
}

// Write validates doc against the embedded report schema and writes it
// pretty-printed to pathTemplate, substituting a "{datetime}" placeholder
// with the current UTC time formatted yyyy-MM-dd-HH-mm-ss, per spec §6.
func Write(doc Document, pathTemplate string, now time.Time) error {
	if doc.AnalysisInfo.RemoteRepositories == nil {
		doc.AnalysisInfo.RemoteRepositories = []Repository{}
	}
	if doc.JarResults == nil {
		doc.JarResults = []JarResult{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("report: re-parse for validation: %w", err)
	}
	if err := validation.ValidateJSON("mavenizer-report.json", generic); err != nil {
		return fmt.Errorf("report: document failed schema validation: %w", err)
	}

	path := ResolvePath(pathTemplate, now)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

// ResolvePath substitutes the "{datetime}" placeholder documented in spec
// §6 with now formatted as yyyy-MM-dd-HH-mm-ss.
func ResolvePath(pathTemplate string, now time.Time) string {
	stamp := now.UTC().Format("2006-01-02-15-04-05")
	return strings.ReplaceAll(pathTemplate, "{datetime}", stamp)
}
