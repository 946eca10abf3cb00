package analyzer

import (
	"testing"

	"github.com/petrarca/mavenizer/internal/jarfile"
	"github.com/petrarca/mavenizer/internal/model"
)

func TestManifest_VendorIdAndVersion(t *testing.T) {
	m := &jarfile.Manifest{Main: map[string]string{
		"Implementation-Vendor-Id": "com.example",
		"Implementation-Title":     "widget",
		"Implementation-Version":   "1.0.0",
	}}

	c := &fakeCollector{}
	Manifest(c, m)

	if e, ok := c.find(model.GroupID, "com.example"); !ok || e.score != ScoreStrong {
		t.Errorf("expected strong groupId com.example, got %+v ok=%v", e, ok)
	}
	if e, ok := c.find(model.ArtifactID, "widget"); !ok || e.score != ScoreWeak {
		t.Errorf("expected weak artifactId widget, got %+v ok=%v", e, ok)
	}
	if _, ok := c.find(model.Version, "1.0.0"); !ok {
		t.Error("expected version 1.0.0")
	}
}

func TestManifest_BundleSymbolicNameSplitsGroupArtifact(t *testing.T) {
	m := &jarfile.Manifest{Main: map[string]string{
		"Bundle-SymbolicName": "com.example.widget;singleton:=true",
	}}

	c := &fakeCollector{}
	Manifest(c, m)

	if _, ok := c.find(model.GroupID, "com.example"); !ok {
		t.Error("expected groupId com.example from symbolic name")
	}
	if _, ok := c.find(model.ArtifactID, "widget"); !ok {
		t.Error("expected artifactId widget from symbolic name")
	}
}

func TestManifest_NilManifestNoEmissions(t *testing.T) {
	c := &fakeCollector{}
	Manifest(c, nil)
	if len(c.emissions) != 0 {
		t.Errorf("expected no emissions for nil manifest, got %d", len(c.emissions))
	}
}

func TestManifest_InvalidVersionIgnored(t *testing.T) {
	m := &jarfile.Manifest{Main: map[string]string{
		"Implementation-Version": "!!!not a version!!!",
	}}
	c := &fakeCollector{}
	Manifest(c, m)
	if len(c.emissions) != 0 {
		t.Errorf("expected invalid version to be dropped, got %+v", c.emissions)
	}
}
