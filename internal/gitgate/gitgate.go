// Package gitgate implements the persistence gate: stage the report file
// and captures directory, decide from worktree status whether anything
// changed, and commit and push only when it did. Running the pipeline twice
// with identical output never produces two commits.
package gitgate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/foggyhq/foggybot/pkg/logger"
)

// ErrNotARepository is returned when the target directory is not inside a
// git worktree.
var ErrNotARepository = errors.New("not a git repository")

// Gate guards commits of the pipeline's output paths.
type Gate struct {
	dir         string
	reportFile  string
	capturesDir string

	authorName  string
	authorEmail string
	message     string
	remote      string

	now func() time.Time
}

// Options configures a Gate. ReportFile and CapturesDir are relative to Dir.
type Options struct {
	Dir         string
	ReportFile  string
	CapturesDir string
	AuthorName  string
	AuthorEmail string
	Message     string
	Remote      string
	Now         func() time.Time
}

// New creates a Gate.
func New(opts Options) *Gate {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Gate{
		dir:         opts.Dir,
		reportFile:  opts.ReportFile,
		capturesDir: opts.CapturesDir,
		authorName:  opts.AuthorName,
		authorEmail: opts.AuthorEmail,
		message:     opts.Message,
		remote:      opts.Remote,
		now:         now,
	}
}

// Decision is the gate's change verdict: which of the gated paths differ
// from the last commit.
type Decision struct {
	Changed bool     `json:"changed"`
	Files   []string `json:"files"`
}

// Result reports what the gate did.
type Result struct {
	Decision   Decision
	CommitHash string
	Pushed     bool
}

// Decide computes the change verdict from a worktree status, restricted to
// the gated path patterns. It is a pure function of the status.
func Decide(status git.Status, patterns []string) Decision {
	var files []string
	for path, s := range status {
		if s.Staging == git.Unmodified && s.Worktree == git.Unmodified {
			continue
		}
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(path)); ok {
				files = append(files, filepath.ToSlash(path))
				break
			}
		}
	}
	sort.Strings(files)
	return Decision{Changed: len(files) > 0, Files: files}
}

// patterns returns the gated path patterns.
func (g *Gate) patterns() []string {
	return []string{
		filepath.ToSlash(g.reportFile),
		filepath.ToSlash(g.capturesDir) + "/**",
	}
}

// Commit stages the gated paths, commits when they changed, and pushes
// unless push is disabled. An unchanged tree performs no git operation.
func (g *Gate) Commit(push bool) (*Result, error) {
	repo, err := git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, g.dir)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	for _, path := range []string{g.reportFile, g.capturesDir} {
		if _, statErr := os.Stat(filepath.Join(g.dir, path)); statErr != nil {
			continue
		}
		if _, addErr := wt.Add(path); addErr != nil {
			return nil, fmt.Errorf("stage %s: %w", path, addErr)
		}
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	decision := Decide(status, g.patterns())
	if !decision.Changed {
		logger.Info("report unchanged, skipping commit")
		return &Result{Decision: decision}, nil
	}

	// Staged changes outside the gated paths would ride along with the
	// commit; surface them rather than silently widening the commit.
	for path, s := range status {
		if s.Staging == git.Unmodified || s.Staging == git.Untracked {
			continue
		}
		if !matchesAny(g.patterns(), filepath.ToSlash(path)) {
			logger.Warn("unrelated staged change will be committed", logger.String("path", path))
		}
	}

	hash, err := wt.Commit(g.message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.authorName,
			Email: g.authorEmail,
			When:  g.now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	logger.Info("committed report update",
		logger.String("commit", hash.String()),
		logger.Int("files", len(decision.Files)))

	result := &Result{Decision: decision, CommitHash: hash.String()}
	if !push {
		return result, nil
	}

	err = repo.Push(&git.PushOptions{RemoteName: g.remote})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return result, fmt.Errorf("push to %s: %w", g.remote, err)
	}
	result.Pushed = true
	logger.Info("pushed report update", logger.String("remote", g.remote))
	return result, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
