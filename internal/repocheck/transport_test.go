package repocheck

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/petrarca/mavenizer/internal/model"
)

func buildTestZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestArtifactURL_BuildsStandardLayout(t *testing.T) {
	uid := model.MavenUid{GroupID: "com.example", ArtifactID: "widget", Version: "1.0.0"}
	got := artifactURL("https://repo1.maven.org/maven2", uid)
	want := "https://repo1.maven.org/maven2/com/example/widget/1.0.0/widget-1.0.0.jar"
	if got != want {
		t.Errorf("artifactURL = %q, want %q", got, want)
	}
}

func TestMetadataURL_BuildsStandardLayout(t *testing.T) {
	got := metadataURL("https://repo1.maven.org/maven2/", "com.example", "widget")
	want := "https://repo1.maven.org/maven2/com/example/widget/maven-metadata.xml"
	if got != want {
		t.Errorf("metadataURL = %q, want %q", got, want)
	}
}

func TestFetch_ReturnsBodyOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	tr := newTransport([]string{srv.URL}, 0)
	body, err := tr.fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("body = %q, want hello", body)
	}
}

func TestFetch_NonSuccessStatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr := newTransport([]string{srv.URL}, 0)
	if _, err := tr.fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestHashContent_MatchesJarfileHash(t *testing.T) {
	data := buildTestZip(t, map[string]string{"a.txt": "hello"})
	hash, err := hashContent(data)
	if err != nil {
		t.Fatalf("hashContent: %v", err)
	}
	if hash == "" {
		t.Error("expected non-empty hash")
	}
}
