// Package repocheck implements the Repo Checker (C5): it resolves
// candidate artifacts against a list of remote Maven repositories and
// classifies the match against a local jar's content hash.
package repocheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petrarca/mavenizer/internal/jarfile"
	"github.com/petrarca/mavenizer/internal/model"
)

const defaultTimeout = 30 * time.Second

// transport performs the actual HTTP GETs against a set of repo base URLs,
// in priority order, grounded on the teacher pack's Fetch/HTTPRegistry
// client shape: a plain net/http.Client with a per-request timeout, no
// retry logic (errors classify as NOT_FOUND per spec §4.6).
type transport struct {
	client *http.Client
	repos  []string
}

func newTransport(repos []string, timeout time.Duration) *transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &transport{
		client: &http.Client{Timeout: timeout},
		repos:  repos,
	}
}

// artifactURL builds <repo>/<group-path>/<artifact>/<version>/<artifact>-<version>.jar.
func artifactURL(repo string, uid model.MavenUid) string {
	return joinURL(repo, groupPath(uid.GroupID), uid.ArtifactID, uid.Version, uid.ArtifactID+"-"+uid.Version+".jar")
}

// metadataURL builds <repo>/<group-path>/<artifact>/maven-metadata.xml.
func metadataURL(repo string, groupID, artifactID string) string {
	return joinURL(repo, groupPath(groupID), artifactID, "maven-metadata.xml")
}

func groupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}

func joinURL(base string, segments ...string) string {
	u := strings.TrimRight(base, "/")
	for _, s := range segments {
		u += "/" + s
	}
	return u
}

// fetch issues a GET against rawURL and returns the body, or an error that
// the caller should treat as NOT_FOUND for this repo (try the next one).
func (t *transport) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("repocheck: invalid url %s: %w", rawURL, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("repocheck: %s: status %s", rawURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// fetchChecksum fetches a published ".sha1"/".sha256" checksum file and
// extracts its hex digest, tolerating both a bare-digest body and the
// "<digest>  <filename>" format sha1sum/sha256sum produce.
func (t *transport) fetchChecksum(ctx context.Context, rawURL string) (string, error) {
	body, err := t.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(body))
	if len(fields) == 0 {
		return "", fmt.Errorf("repocheck: empty checksum file %s", rawURL)
	}
	return strings.ToLower(fields[0]), nil
}

// hashContent computes the same base64 SHA-256-over-uncompressed-bytes
// digest jarfile.Read produces, so a downloaded jar can be compared
// directly against a local Jar.Hash.
func hashContent(jarBytes []byte) (string, error) {
	j, err := jarfile.Read(jarBytes)
	if err != nil {
		return "", err
	}
	return j.Hash, nil
}
