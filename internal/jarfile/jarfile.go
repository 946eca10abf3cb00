// Package jarfile implements the Jar Reader and Hasher: it turns raw jar
// bytes into the classified entries analyzers consume, and computes the
// compression-independent content hash used for online comparison.
package jarfile

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const (
	ManifestPath = "META-INF/MANIFEST.MF"
)

// ClassEntry is a single .class archive member with retained metadata only;
// bytecode is never kept in memory past the read that classified it.
type ClassEntry struct {
	Path         string
	Created      time.Time
	LastModified time.Time
}

// Jar is the pull-parsed result of reading one archive: the (at most one)
// manifest, any embedded pom files, and the class entries. Other archive
// members are discarded per the documented contract.
type Jar struct {
	Manifest     *Manifest
	PomXML       []byte
	PomProps     []byte
	ClassEntries []ClassEntry
	Hash         string
}

// Read classifies every entry in a jar's compressed bytes and computes its
// content hash in a single pass over the zip central directory.
func Read(data []byte) (*Jar, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("jarfile: open zip: %w", err)
	}

	jar := &Jar{}
	hasher := sha256.New()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := f.Name
		base := path.Base(name)

		switch {
		case name == ManifestPath:
			body, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("jarfile: read manifest: %w", err)
			}
			hasher.Write(body)
			m, err := ParseManifest(body)
			if err != nil {
				return nil, fmt.Errorf("jarfile: parse manifest: %w", err)
			}
			jar.Manifest = m

		case strings.EqualFold(base, "pom.xml"):
			body, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("jarfile: read pom.xml: %w", err)
			}
			hasher.Write(body)
			jar.PomXML = body

		case strings.EqualFold(base, "pom.properties"):
			body, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("jarfile: read pom.properties: %w", err)
			}
			hasher.Write(body)
			jar.PomProps = body

		case strings.HasSuffix(name, ".class"):
			body, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("jarfile: read class %s: %w", name, err)
			}
			hasher.Write(body)
			created, modified := classTimes(f)
			jar.ClassEntries = append(jar.ClassEntries, ClassEntry{
				Path:         name,
				Created:      created,
				LastModified: modified,
			})

		default:
			body, err := readEntry(f)
			if err != nil {
				return nil, fmt.Errorf("jarfile: read %s: %w", name, err)
			}
			hasher.Write(body)
		}
	}

	jar.Hash = base64.StdEncoding.EncodeToString(hasher.Sum(nil))
	return jar, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// classTimes returns the entry's modification time for both Created and
// LastModified. archive/zip's File does not expose a distinct creation
// timestamp from the central directory record, so there is no independent
// value to return for Created.
func classTimes(f *zip.File) (created, modified time.Time) {
	modified = f.Modified
	created = f.Modified
	return created, modified
}
