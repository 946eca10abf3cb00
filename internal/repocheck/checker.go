package repocheck

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	mavenmodel "deps.dev/util/maven"
	"deps.dev/util/semver"

	"github.com/petrarca/mavenizer/internal/model"
)

// canaryUID is a known-good published artifact probed at startup to verify
// network reachability of the configured repositories, per spec §4.6 step 4.
var canaryUID = model.MavenUid{GroupID: "junit", ArtifactID: "junit", Version: "4.12"}

// Checker implements check_with_version, discover_versions and
// check_no_version against a configured list of remote Maven repositories.
type Checker struct {
	transport *transport
	repos     []string
	localRepo string
	logger    *slog.Logger
}

// Options configures a Checker.
type Options struct {
	// ExtraRepos are prepended ahead of the settings-derived list (e.g.
	// from project config), highest priority first.
	ExtraRepos []string
	LocalRepo  string
	Timeout    time.Duration
	Logger     *slog.Logger
}

// New constructs a Checker, purging any prior local repo directory,
// discovering remote repositories, and verifying reachability with a
// canary resolution. Canary failure is fatal, per spec §4.6 step 4.
func New(ctx context.Context, opts Options) (*Checker, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	localRepo := opts.LocalRepo
	if localRepo == "" {
		localRepo = "./temp-m2"
	}

	if err := os.RemoveAll(localRepo); err != nil {
		return nil, fmt.Errorf("repocheck: purge local repo: %w", err)
	}
	if err := os.MkdirAll(localRepo, 0o755); err != nil {
		return nil, fmt.Errorf("repocheck: create local repo: %w", err)
	}

	repos := append([]string(nil), opts.ExtraRepos...)
	repos = append(repos, DiscoverRepositories()...)
	repos = dedupStrings(repos)

	c := &Checker{
		transport: newTransport(repos, opts.Timeout),
		repos:     repos,
		localRepo: localRepo,
		logger:    logger,
	}

	if err := c.canary(ctx); err != nil {
		return nil, fmt.Errorf("repocheck: canary check failed: %w", err)
	}
	return c, nil
}

func (c *Checker) canary(ctx context.Context) error {
	_, err := c.resolveOne(ctx, canaryUID)
	return err
}

// CheckWithVersion resolves each versioned UID in turn, short-circuiting on
// the first EXACT_SHA, per spec §4.6's check_with_version. When sidecar is
// non-nil, each uid first tries the checksum-sidecar fast path (§6
// supplemented feature): a cheap fetch of the repo's published ".sha1"/
// ".sha256" file compared against the local digest, avoiding a full jar
// download when it already disagrees or confirms a match.
func (c *Checker) CheckWithVersion(ctx context.Context, localHash string, sidecar *model.Checksum, uids []model.MavenUid) map[model.MavenUid]model.OnlineMatch {
	results := make(map[model.MavenUid]model.OnlineMatch, len(uids))
	for _, uid := range uids {
		if !uid.HasVersion() {
			continue
		}
		if sidecar != nil {
			if match, ok := c.checkSidecar(ctx, *sidecar, uid); ok {
				results[uid] = match
				if match.Kind == model.ExactSHA {
					break
				}
				continue
			}
		}
		match, _ := c.checkOne(ctx, localHash, uid)
		results[uid] = match
		if match.Kind == model.ExactSHA {
			break
		}
	}
	return results
}

// checkSidecar compares sidecar against the first repo that publishes a
// matching checksum file for uid. ok is false when no repo published one,
// meaning the caller should fall back to downloading the jar itself.
func (c *Checker) checkSidecar(ctx context.Context, sidecar model.Checksum, uid model.MavenUid) (model.OnlineMatch, bool) {
	for _, repo := range c.repos {
		remoteHex, err := c.transport.fetchChecksum(ctx, artifactURL(repo, uid)+"."+sidecar.Algo)
		if err != nil {
			continue
		}
		if remoteHex == sidecar.Hex {
			return model.OnlineMatch{Kind: model.ExactSHA}, true
		}
		return model.OnlineMatch{Kind: model.NoMatch}, true
	}
	return model.OnlineMatch{}, false
}

// checkOne resolves a single versioned UID against every configured repo in
// priority order and classifies the result.
func (c *Checker) checkOne(ctx context.Context, localHash string, uid model.MavenUid) (model.OnlineMatch, string) {
	body, repo, err := c.resolveOne(ctx, uid)
	if err != nil {
		c.logger.Debug("online resolution failed", "uid", uid.String(), "error", err)
		return model.OnlineMatch{Kind: model.NotFound}, ""
	}

	c.mirror(uid, body)

	remoteHash, err := hashContent(body)
	if err != nil {
		c.logger.Debug("hashing remote jar failed", "uid", uid.String(), "error", err)
		return model.OnlineMatch{Kind: model.NoMatch}, repo
	}
	if remoteHash == localHash {
		return model.OnlineMatch{Kind: model.ExactSHA}, repo
	}
	return model.OnlineMatch{Kind: model.NoMatch}, repo
}

// mirror writes a resolved jar's bytes into the local repo directory in
// standard Maven layout, per spec §6's persisted-state note. Failures are
// logged, not fatal: the mirror is a convenience for the operator, not part
// of the resolution result.
func (c *Checker) mirror(uid model.MavenUid, body []byte) {
	path := ArtifactPath(c.localRepo, uid)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.logger.Debug("mirror mkdir failed", "uid", uid.String(), "error", err)
		return
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		c.logger.Debug("mirror write failed", "uid", uid.String(), "error", err)
	}
}

// resolveOne fetches the jar bytes for uid from the first repo that answers.
func (c *Checker) resolveOne(ctx context.Context, uid model.MavenUid) ([]byte, string, error) {
	var lastErr error
	for _, repo := range c.repos {
		body, err := c.transport.fetch(ctx, artifactURL(repo, uid))
		if err == nil {
			return body, repo, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no repositories configured")
	}
	return nil, "", lastErr
}

// DiscoverVersions requests maven-metadata.xml for (groupID, artifactID)
// from each configured repo in turn until one resolves, per spec §4.6's
// discover_versions. Versions are returned oldest-first, matching the order
// Maven metadata conventionally lists them in.
func (c *Checker) DiscoverVersions(ctx context.Context, groupID, artifactID string) ([]string, error) {
	var lastErr error
	for _, repo := range c.repos {
		body, err := c.transport.fetch(ctx, metadataURL(repo, groupID, artifactID))
		if err != nil {
			lastErr = err
			continue
		}
		var metadata mavenmodel.Metadata
		if err := xml.Unmarshal(body, &metadata); err != nil {
			lastErr = err
			continue
		}
		versions := make([]string, len(metadata.Versioning.Versions))
		for i, v := range metadata.Versioning.Versions {
			versions[i] = string(v)
		}
		if len(versions) > 0 {
			return versions, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no versions found for %s:%s", groupID, artifactID)
	}
	return nil, lastErr
}

// CheckNoVersion discovers versions for each version-less UID and probes the
// oldest and newest via checkOne, per spec §4.6's check_no_version.
func (c *Checker) CheckNoVersion(ctx context.Context, localHash string, uids []model.MavenUid) map[model.MavenUid][]model.UidCheck {
	results := make(map[model.MavenUid][]model.UidCheck, len(uids))
	for _, uid := range uids {
		if uid.HasVersion() {
			continue
		}
		versions, err := c.DiscoverVersions(ctx, uid.GroupID, uid.ArtifactID)
		if err != nil || len(versions) == 0 {
			c.logger.Debug("version discovery failed", "uid", uid.String(), "error", err)
			continue
		}
		sort.Slice(versions, func(i, j int) bool {
			return semver.Maven.Compare(versions[i], versions[j]) < 0
		})

		probe := []string{versions[0], versions[len(versions)-1]}
		var checks []model.UidCheck
		for _, v := range dedupStrings(probe) {
			versioned := model.MavenUid{GroupID: uid.GroupID, ArtifactID: uid.ArtifactID, Version: v}
			match, repo := c.checkOne(ctx, localHash, versioned)
			checks = append(checks, model.UidCheck{Uid: versioned, Match: match, Repository: repo})
		}
		results[uid] = checks
	}
	return results
}

// LocalRepoPath returns the directory jars resolved during this run are
// mirrored into, per spec §6's persisted-state note.
func (c *Checker) LocalRepoPath() string {
	return c.localRepo
}

// Repositories returns the ordered, deduplicated repository URLs this
// checker resolves against, for inclusion in the report's
// remoteRepositories block.
func (c *Checker) Repositories() []string {
	return c.repos
}

// ArtifactPath returns the standard Maven-layout path this checker would
// mirror uid into under LocalRepoPath.
func ArtifactPath(localRepo string, uid model.MavenUid) string {
	return filepath.Join(localRepo, groupPath(uid.GroupID), uid.ArtifactID, uid.Version, uid.ArtifactID+"-"+uid.Version+".jar")
}
