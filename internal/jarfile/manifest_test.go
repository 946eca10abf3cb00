package jarfile

import "testing"

func TestParseManifest_MainSection(t *testing.T) {
	data := []byte("Manifest-Version: 1.0\nImplementation-Title: widget\nImplementation-Version: 2.3.4\n")
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if got := m.Get("Implementation-Title"); got != "widget" {
		t.Errorf("Implementation-Title = %q, want widget", got)
	}
	if got := m.Get("Implementation-Version"); got != "2.3.4" {
		t.Errorf("Implementation-Version = %q, want 2.3.4", got)
	}
}

func TestParseManifest_UnfoldsContinuationLines(t *testing.T) {
	data := []byte("Manifest-Version: 1.0\nLong-Attribute: this is a very lo\n ng value that wraps\n")
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if got := m.Get("Long-Attribute"); got != "this is a very long value that wraps" {
		t.Errorf("Long-Attribute = %q", got)
	}
}

func TestParseManifest_NamedSections(t *testing.T) {
	data := []byte("Manifest-Version: 1.0\n\nName: com/example/Widget.class\nSHA-256-Digest: abc123\n")
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	section, ok := m.Sections["com/example/Widget.class"]
	if !ok {
		t.Fatal("expected named section for com/example/Widget.class")
	}
	if section["SHA-256-Digest"] != "abc123" {
		t.Errorf("SHA-256-Digest = %q", section["SHA-256-Digest"])
	}
}

func TestManifestGet_NilReceiverReturnsEmpty(t *testing.T) {
	var m *Manifest
	if got := m.Get("anything"); got != "" {
		t.Errorf("expected empty string for nil manifest, got %q", got)
	}
}
