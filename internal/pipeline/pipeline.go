// Package pipeline implements the Pipeline (C7): it drives the Jar Reader,
// Analyzers, Aggregator and Selector serially over the input jars (Phase
// A), submits online verification concurrently as each jar's offline phase
// completes (Phase B), and consolidates results back in input order
// (Phase C).
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/petrarca/mavenizer/internal/aggregate"
	"github.com/petrarca/mavenizer/internal/analyzer"
	"github.com/petrarca/mavenizer/internal/jarfile"
	"github.com/petrarca/mavenizer/internal/model"
	"github.com/petrarca/mavenizer/internal/progress"
	"github.com/petrarca/mavenizer/internal/repocheck"
	"github.com/petrarca/mavenizer/internal/selector"
)

// JarPromptContext is what the Pipeline hands to a ManualSelector when
// auto-selection fails for a jar: everything a human (or scripted)
// collaborator needs to pick a final UID.
type JarPromptContext struct {
	JarName      string
	Bucket       *model.AnalysisBucket
	WithVersion  model.WithVersionResult
	NoVersion    model.NoVersionResult
	SelectedUIDs []model.MavenUid
}

// ManualSelector is the external collaborator consulted when auto-selection
// (§4.8) does not produce a confident result. The core depends only on this
// interface; internal/ui ships the one concrete terminal implementation.
type ManualSelector interface {
	SelectUID(ctx context.Context, prompt JarPromptContext) (uid model.MavenUid, skip bool, err error)
}

// Options configures a Pipeline run.
type Options struct {
	Offline        bool
	SkipNotFound   bool
	Limit          int
	Logger         *slog.Logger
	Progress       *progress.Progress
	Selector       *selector.Selector
	Checker        *repocheck.Checker
	ManualSelector ManualSelector
}

// Pipeline drives the full offline/online/consolidate flow across a list of
// jar file paths.
type Pipeline struct {
	opts Options
}

// New returns a Pipeline. A nil Checker is only valid when opts.Offline is
// true.
func New(opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Selector == nil {
		opts.Selector = selector.New()
	}
	if opts.Progress == nil {
		opts.Progress = progress.New(false, nil)
	}
	return &Pipeline{opts: opts}
}

// Run executes the three-phase pipeline over paths and returns the ordered
// JarReport list, per spec §4.7 and §4.8.
func (p *Pipeline) Run(ctx context.Context, paths []string) ([]model.JarReport, error) {
	if p.opts.Limit > 0 && len(paths) > p.opts.Limit {
		paths = paths[:p.opts.Limit]
	}

	results := make([]*model.JarAnalysisResult, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)

	// Phase A, serial: read each jar, run the offline analyzers, finalize
	// its bucket. Phase B futures are submitted as soon as Phase A
	// completes for that jar, so online work for jar N overlaps offline
	// work for jar N+1.
	for i, path := range paths {
		if err := groupCtx.Err(); err != nil {
			break
		}
		result := p.analyzeOffline(path)
		results[i] = result

		if !p.opts.Offline && result.OfflineError == nil {
			p.submitOnline(group, groupCtx, result)
		}
	}

	if err := group.Wait(); err != nil {
		p.opts.Logger.Warn("online phase reported an error", "error", err)
	}

	// Phase C, serial in input order. A cancelled groupCtx can break Phase A
	// early, leaving trailing results entries nil; skip them rather than
	// dereferencing.
	var reports []model.JarReport
	for i, result := range results {
		if result == nil {
			continue
		}
		if result.OfflineError != nil {
			p.opts.Logger.Warn("skipping unreadable jar", "jar", paths[i], "error", result.OfflineError)
			continue
		}
		report, keep := p.consolidate(groupCtx, result)
		if keep {
			reports = append(reports, report)
		}
	}
	return reports, nil
}

// analyzeOffline performs Phase A for one jar path.
func (p *Pipeline) analyzeOffline(path string) *model.JarAnalysisResult {
	data, err := os.ReadFile(path)
	result := &model.JarAnalysisResult{
		Jar:         model.Jar{Filename: baseName(path)},
		Bucket:      model.NewAnalysisBucket(),
		WithVersion: model.NewFuture[model.WithVersionResult](),
		NoVersion:   model.NewFuture[model.NoVersionResult](),
		StartedAt:   time.Now(),
	}
	if err != nil {
		result.OfflineError = fmt.Errorf("read %s: %w", path, err)
		return result
	}

	p.opts.Progress.JarStart(result.Jar.Filename)

	jar, err := jarfile.Read(data)
	if err != nil {
		result.OfflineError = fmt.Errorf("parse %s: %w", path, err)
		return result
	}
	result.Jar.Hash = jar.Hash
	result.Sidecar = readSidecarChecksum(path)

	collector := analyzer.NewCollector(result.Bucket)
	analyzer.Manifest(collector, jar.Manifest)
	analyzer.Filename(collector, result.Jar.Filename)
	analyzer.Pom(collector, jar.PomXML, jar.PomProps)
	analyzer.ClassFilepath(collector, jar.ClassEntries)
	analyzer.ClassTimestamp(collector, jar.ClassEntries)

	aggregate.Finalize(result.Bucket)
	analyzer.Post(collector, result.Bucket)
	aggregate.Finalize(result.Bucket)

	p.opts.Logger.Debug("offline analysis complete", "jar", result.Jar.Filename)
	return result
}

// submitOnline launches Phase B for one jar: the two independent futures
// described in §4.7.
func (p *Pipeline) submitOnline(group *errgroup.Group, ctx context.Context, result *model.JarAnalysisResult) {
	uids := p.opts.Selector.Select(result.Bucket)
	p.opts.Progress.JarOfflineComplete(result.Jar.Filename, len(uids))

	var withVersion, withoutVersion []model.MavenUid
	for _, uid := range uids {
		if uid.HasVersion() {
			withVersion = append(withVersion, uid)
		} else {
			withoutVersion = append(withoutVersion, uid)
		}
	}

	p.opts.Progress.OnlineSubmitted(result.Jar.Filename)
	group.Go(func() error {
		matches := p.opts.Checker.CheckWithVersion(ctx, result.Jar.Hash, result.Sidecar, withVersion)
		for uid, match := range matches {
			p.opts.Progress.OnlineResolved(result.Jar.Filename, uid.String(), match.Kind.String())
		}
		result.WithVersion.Resolve(model.WithVersionResult{Matches: matches})
		return nil
	})
	group.Go(func() error {
		checks := p.opts.Checker.CheckNoVersion(ctx, result.Jar.Hash, withoutVersion)
		result.NoVersion.Resolve(model.NoVersionResult{Checks: checks})
		return nil
	})
}

// consolidate performs Phase C for one jar: await its online futures (if
// any were submitted), attempt auto-selection, and fall back to the manual
// selector.
func (p *Pipeline) consolidate(ctx context.Context, result *model.JarAnalysisResult) (model.JarReport, bool) {
	var withVersion model.WithVersionResult
	var noVersion model.NoVersionResult

	if !p.opts.Offline {
		withVersion = <-result.WithVersion.Ch
		noVersion = <-result.NoVersion.Ch
	}

	if uid, match, ok := autoSelect(withVersion, noVersion); ok && uid.Complete() {
		matchKind := match
		p.opts.Progress.JarDone(result.Jar.Filename, uid.String(), time.Since(result.StartedAt))
		return model.JarReport{
			JarName:    result.Jar.Filename,
			Sha256:     result.Jar.Hash,
			Match:      &matchKind,
			Uid:        uid,
			Candidates: result.Bucket,
		}, true
	}

	if p.opts.SkipNotFound || p.opts.ManualSelector == nil {
		p.opts.Progress.JarSkipped(result.Jar.Filename, "no confident match, manual selection disabled")
		return model.JarReport{}, false
	}

	selectedUIDs := p.opts.Selector.Select(result.Bucket)
	p.opts.Progress.ManualPrompt(result.Jar.Filename, len(selectedUIDs))
	prompt := JarPromptContext{
		JarName:      result.Jar.Filename,
		Bucket:       result.Bucket,
		WithVersion:  withVersion,
		NoVersion:    noVersion,
		SelectedUIDs: selectedUIDs,
	}
	uid, skip, err := p.opts.ManualSelector.SelectUID(ctx, prompt)
	if err != nil {
		p.opts.Logger.Warn("manual selection failed", "jar", result.Jar.Filename, "error", err)
		p.opts.Progress.JarSkipped(result.Jar.Filename, "manual selection failed")
		return model.JarReport{}, false
	}
	if skip || !uid.Complete() {
		p.opts.Progress.JarSkipped(result.Jar.Filename, "skipped by operator")
		return model.JarReport{}, false
	}
	p.opts.Progress.JarDone(result.Jar.Filename, uid.String(), time.Since(result.StartedAt))
	return model.JarReport{
		JarName:    result.Jar.Filename,
		Sha256:     result.Jar.Hash,
		Uid:        uid,
		Candidates: result.Bucket,
	}, true
}

// autoSelect implements §4.8: succeeds iff exactly one UID across all
// online results has match type EXACT_SHA.
func autoSelect(withVersion model.WithVersionResult, noVersion model.NoVersionResult) (model.MavenUid, model.OnlineMatchKind, bool) {
	var hit model.MavenUid
	count := 0

	for uid, match := range withVersion.Matches {
		if match.Kind == model.ExactSHA {
			hit = uid
			count++
		}
	}
	for _, checks := range noVersion.Checks {
		for _, check := range checks {
			if check.Match.Kind == model.ExactSHA {
				hit = check.Uid
				count++
			}
		}
	}

	if count != 1 {
		return model.MavenUid{}, 0, false
	}
	return hit, model.ExactSHA, true
}

// readSidecarChecksum looks for a "<path>.sha1" or "<path>.sha256" file next
// to the input jar, a convention common build and registry tooling emits
// alongside a published artifact. Its presence lets the Repo Checker try a
// small checksum-file fetch before downloading the full remote jar.
func readSidecarChecksum(path string) *model.Checksum {
	for _, algo := range []string{"sha1", "sha256"} {
		data, err := os.ReadFile(path + "." + algo)
		if err != nil {
			continue
		}
		hex := parseChecksumFile(string(data))
		if hex == "" {
			continue
		}
		return &model.Checksum{Algo: algo, Hex: hex}
	}
	return nil
}

// parseChecksumFile extracts the hex digest from either a bare-digest file
// or the "<digest>  <filename>" format sha1sum/sha256sum produce.
func parseChecksumFile(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
