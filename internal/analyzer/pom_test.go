package analyzer

import (
	"testing"

	"github.com/petrarca/mavenizer/internal/model"
)

type recordedEmission struct {
	component model.MavenUidComponent
	value     string
	score     int
	analyzer  string
}

type fakeCollector struct {
	emissions []recordedEmission
}

func (f *fakeCollector) Emit(component model.MavenUidComponent, value string, score int, analyzer, detail string) {
	f.emissions = append(f.emissions, recordedEmission{component, value, score, analyzer})
}

func (f *fakeCollector) find(component model.MavenUidComponent, value string) (recordedEmission, bool) {
	for _, e := range f.emissions {
		if e.component == component && e.value == value {
			return e, true
		}
	}
	return recordedEmission{}, false
}

func TestPom_XMLDirectCoordinates(t *testing.T) {
	pomXML := []byte(`<project>
  <groupId>com.example</groupId>
  <artifactId>widget</artifactId>
  <version>1.2.3</version>
</project>`)

	c := &fakeCollector{}
	Pom(c, pomXML, nil)

	if _, ok := c.find(model.GroupID, "com.example"); !ok {
		t.Error("expected groupId com.example")
	}
	if _, ok := c.find(model.ArtifactID, "widget"); !ok {
		t.Error("expected artifactId widget")
	}
	if _, ok := c.find(model.Version, "1.2.3"); !ok {
		t.Error("expected version 1.2.3")
	}
}

func TestPom_XMLFallsBackToParent(t *testing.T) {
	pomXML := []byte(`<project>
  <parent>
    <groupId>com.example.parent</groupId>
    <artifactId>parent-pom</artifactId>
    <version>4.5.6</version>
  </parent>
  <artifactId>widget</artifactId>
</project>`)

	c := &fakeCollector{}
	Pom(c, pomXML, nil)

	if _, ok := c.find(model.GroupID, "com.example.parent"); !ok {
		t.Error("expected groupId inherited from parent")
	}
	if _, ok := c.find(model.Version, "4.5.6"); !ok {
		t.Error("expected version inherited from parent")
	}
	if _, ok := c.find(model.ArtifactID, "widget"); !ok {
		t.Error("expected own artifactId, not parent's")
	}
}

func TestPom_Properties(t *testing.T) {
	props := []byte("#comment\ngroupId=com.example\nartifactId=widget\nversion=2.0.0\n")

	c := &fakeCollector{}
	Pom(c, nil, props)

	if _, ok := c.find(model.GroupID, "com.example"); !ok {
		t.Error("expected groupId from pom.properties")
	}
	if _, ok := c.find(model.ArtifactID, "widget"); !ok {
		t.Error("expected artifactId from pom.properties")
	}
	if _, ok := c.find(model.Version, "2.0.0"); !ok {
		t.Error("expected version from pom.properties")
	}
}

func TestPom_InvalidXMLEmitsNothing(t *testing.T) {
	c := &fakeCollector{}
	Pom(c, []byte("not xml"), nil)
	if len(c.emissions) != 0 {
		t.Errorf("expected no emissions for malformed xml, got %d", len(c.emissions))
	}
}
