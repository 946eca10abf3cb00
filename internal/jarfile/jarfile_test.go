package jarfile

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"
)

func buildJar(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		})
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

func TestRead_ClassifiesEntries(t *testing.T) {
	data := buildJar(t, map[string]string{
		ManifestPath:                         "Manifest-Version: 1.0\nImplementation-Title: widget\n",
		"META-INF/maven/g/a/pom.xml":         "<project/>",
		"META-INF/maven/g/a/pom.properties":  "version=1.0\n",
		"com/example/widget/Widget.class":    "classbytes",
		"com/example/widget/Widget$1.class":  "classbytes2",
		"README.txt":                         "ignored",
	})

	jar, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if jar.Manifest == nil {
		t.Fatal("expected manifest to be parsed")
	}
	if got := jar.Manifest.Get("Implementation-Title"); got != "widget" {
		t.Errorf("Implementation-Title = %q, want widget", got)
	}
	if string(jar.PomXML) != "<project/>" {
		t.Errorf("PomXML = %q", jar.PomXML)
	}
	if string(jar.PomProps) != "version=1.0\n" {
		t.Errorf("PomProps = %q", jar.PomProps)
	}
	if len(jar.ClassEntries) != 2 {
		t.Fatalf("expected 2 class entries, got %d", len(jar.ClassEntries))
	}
	if jar.Hash == "" {
		t.Error("expected non-empty hash")
	}
}

func TestRead_HashStableAcrossCompressionMethod(t *testing.T) {
	entries := map[string]string{"a.txt": "same content"}

	var storedBuf bytes.Buffer
	zw := zip.NewWriter(&storedBuf)
	w, _ := zw.CreateHeader(&zip.FileHeader{Name: "a.txt", Method: zip.Store})
	w.Write([]byte(entries["a.txt"]))
	zw.Close()

	deflated := buildJar(t, entries)

	storedJar, err := Read(storedBuf.Bytes())
	if err != nil {
		t.Fatalf("Read stored: %v", err)
	}
	deflatedJar, err := Read(deflated)
	if err != nil {
		t.Fatalf("Read deflated: %v", err)
	}
	if storedJar.Hash != deflatedJar.Hash {
		t.Errorf("hash differs by compression method: %s vs %s", storedJar.Hash, deflatedJar.Hash)
	}
}

func TestRead_InvalidZipErrors(t *testing.T) {
	_, err := Read([]byte("not a zip"))
	if err == nil {
		t.Fatal("expected error for invalid zip data")
	}
}

func TestRead_NoManifestIsNil(t *testing.T) {
	data := buildJar(t, map[string]string{"com/x/Y.class": "body"})
	jar, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if jar.Manifest != nil {
		t.Error("expected nil manifest when none present")
	}
}
