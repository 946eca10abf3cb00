// Package ui ships the one concrete ManualSelector the mavenizer binary
// uses: an interactive terminal prompt. The pipeline core only depends on
// the pipeline.ManualSelector interface; this package is a drop-in
// collaborator, not part of the core.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/petrarca/mavenizer/internal/model"
	"github.com/petrarca/mavenizer/internal/pipeline"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	legendStyle    = lipgloss.NewStyle().Faint(true)
	candidateStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// TerminalSelector prompts an operator on stdin/stdout to pick a final UID
// when auto-selection fails. In non-interactive contexts (no TTY) it
// auto-skips every jar rather than blocking, per the documented
// generalization of spec §8 scenario S4.
type TerminalSelector struct {
	in       *bufio.Scanner
	out      io.Writer
	isTTY    bool
}

// NewTerminalSelector wraps stdin/stdout for interactive prompting.
func NewTerminalSelector(stdin io.Reader, stdout io.Writer, stdinFd, stdoutFd uintptr) *TerminalSelector {
	return &TerminalSelector{
		in:    bufio.NewScanner(stdin),
		out:   stdout,
		isTTY: isatty.IsTerminal(stdinFd) && isatty.IsTerminal(stdoutFd),
	}
}

// SelectUID implements pipeline.ManualSelector.
func (s *TerminalSelector) SelectUID(ctx context.Context, prompt pipeline.JarPromptContext) (model.MavenUid, bool, error) {
	if !s.isTTY {
		return model.MavenUid{}, true, nil
	}

	proposals := s.renderProposals(prompt)
	if len(proposals) == 0 {
		fmt.Fprintln(s.out, headerStyle.Render(fmt.Sprintf("%s: no online proposals; supply groupId:artifactId:version, or 0! to skip", prompt.JarName)))
	} else {
		fmt.Fprintln(s.out, headerStyle.Render(fmt.Sprintf("%s: select a UID", prompt.JarName)))
		for i, p := range proposals {
			fmt.Fprintln(s.out, candidateStyle.Render(fmt.Sprintf("%d! %s", i+1, p.String())))
		}
	}
	fmt.Fprintln(s.out, legendStyle.Render("enter N! to pick a proposal, 0! to skip, or a raw groupId:artifactId:version"))

	for {
		if ctx.Err() != nil {
			return model.MavenUid{}, true, ctx.Err()
		}
		if !s.in.Scan() {
			return model.MavenUid{}, true, s.in.Err()
		}
		input := strings.TrimSpace(s.in.Text())

		if uid, skip, ok := parseSelection(input, proposals); ok {
			return uid, skip, nil
		}
		fmt.Fprintln(s.out, legendStyle.Render("invalid input; expected N!, 0!, or groupId:artifactId:version"))
	}
}

// renderProposals flattens the with-version and no-version online results
// into a numbered list, in map iteration order: the order is not defined
// and does not depend on match type.
func (s *TerminalSelector) renderProposals(prompt pipeline.JarPromptContext) []model.MavenUid {
	var proposals []model.MavenUid
	seen := make(map[model.MavenUid]struct{})

	add := func(uid model.MavenUid) {
		if _, ok := seen[uid]; ok || !uid.HasVersion() {
			return
		}
		seen[uid] = struct{}{}
		proposals = append(proposals, uid)
	}

	for uid := range prompt.WithVersion.Matches {
		add(uid)
	}
	for _, checks := range prompt.NoVersion.Checks {
		for _, check := range checks {
			add(check.Uid)
		}
	}
	if len(proposals) == 0 {
		proposals = prompt.SelectedUIDs
	}
	return proposals
}

// parseSelection implements the "N!" / "0!" / raw "groupId:artifactId:version"
// grammar documented in spec §7's "user input invalid" handling. A bare
// version string is not accepted.
func parseSelection(input string, proposals []model.MavenUid) (uid model.MavenUid, skip bool, ok bool) {
	if strings.HasSuffix(input, "!") {
		numeric := strings.TrimSuffix(input, "!")
		n, err := strconv.Atoi(numeric)
		if err != nil {
			return model.MavenUid{}, false, false
		}
		if n == 0 {
			return model.MavenUid{}, true, true
		}
		if n < 1 || n > len(proposals) {
			return model.MavenUid{}, false, false
		}
		return proposals[n-1], false, true
	}

	parts := strings.Split(input, ":")
	if len(parts) != 3 {
		return model.MavenUid{}, false, false
	}
	candidate := model.MavenUid{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	if !candidate.Complete() {
		return model.MavenUid{}, false, false
	}
	return candidate, false, true
}
