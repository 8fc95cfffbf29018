// Package ripsrc blames files of git repositories and of history checkpoints.
package ripsrc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/yonasBSD/gitoxide/ripsrc/blamecache"
	"github.com/yonasBSD/gitoxide/ripsrc/config"
	"github.com/yonasBSD/gitoxide/ripsrc/gitblame2"
	"github.com/yonasBSD/gitoxide/ripsrc/gitrepo"
	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
	"github.com/yonasBSD/gitoxide/ripsrc/linediff"
	"github.com/yonasBSD/gitoxide/ripsrc/pkg/logger"
	"github.com/yonasBSD/gitoxide/ripsrc/repo"
)

// Opts is configuration for blaming files of a single repo.
type Opts struct {
	// RepoDir git repo to read objects from. Not used when CheckpointDir is set.
	RepoDir string

	// CheckpointDir reads history saved by Snapshot instead of the git repo.
	CheckpointDir string

	// Rev is the starting revision. Defaults to HEAD for git repos and to the snapshot commit for checkpoints.
	Rev string

	// Config holds engine, output and cache settings. Zero value is replaced with config.Default.
	Config *config.Config

	// Logger object for info and debug.
	Logger logger.Logger

	// Renames is passed to the engine, nil disables rename following.
	Renames incblame.RenameFollower
}

// Ripsrc runs on a single repo.
type Ripsrc struct {
	opts Opts
	cfg  config.Config

	src   incblame.ObjectSource
	git   *gitrepo.Source
	start incblame.ObjectID
}

func New(opts Opts) *Ripsrc {
	if opts.Logger == nil {
		opts.Logger = logger.NewInfoLogger(os.Stderr)
	}
	s := &Ripsrc{}
	s.opts = opts
	s.cfg = config.Default()
	if opts.Config != nil {
		s.cfg = *opts.Config
	}
	return s
}

// Result is the blame outcome together with the data needed to display it.
type Result struct {
	incblame.Outcome
	// Content is the blamed file split into lines.
	Content []string
	// Revisions contains metadata of every commit referenced by entries.
	Revisions map[incblame.ObjectID]incblame.Revision
	// CacheHit is true when outcome was loaded from cache.
	CacheHit bool
}

const snapshotHeadFile = "HEAD"

func (s *Ripsrc) open() error {
	if s.src != nil {
		return nil
	}
	if s.opts.CheckpointDir != "" {
		r, err := repo.ReadCheckpoint(s.opts.CheckpointDir, repo.Opts{})
		if err != nil {
			return errors.Wrapf(err, "could not read checkpoint %v", s.opts.CheckpointDir)
		}
		rev := s.opts.Rev
		if rev == "" {
			b, err := os.ReadFile(filepath.Join(s.opts.CheckpointDir, snapshotHeadFile))
			if err != nil {
				return errors.Wrap(err, "checkpoint has no head commit, pass revision explicitly")
			}
			rev = strings.TrimSpace(string(b))
		}
		s.src = r
		s.start = incblame.ObjectID(rev)
		return nil
	}
	g, err := gitrepo.Open(s.opts.RepoDir, gitrepo.Opts{Logger: s.opts.Logger})
	if err != nil {
		return err
	}
	start, err := g.ResolveRevision(s.opts.Rev)
	if err != nil {
		return err
	}
	s.src = g
	s.git = g
	s.start = start
	return nil
}

func (s *Ripsrc) oracle() incblame.DiffOracle {
	if s.cfg.Blame.Diff == config.DiffGit {
		return linediff.GitOracle{Algorithm: s.cfg.Blame.DiffAlgorithm}
	}
	return linediff.NewOracle()
}

func (s *Ripsrc) engineOpts() (incblame.Opts, error) {
	opts, err := s.cfg.EngineOpts()
	if err != nil {
		return opts, err
	}
	opts.Logger = s.opts.Logger
	opts.Renames = s.opts.Renames
	return opts, nil
}

// Blame attributes lines of path to commits. When ctx is cancelled during the walk the result has Interrupted set and no error is returned.
func (s *Ripsrc) Blame(ctx context.Context, path string) (res Result, _ error) {
	if err := s.open(); err != nil {
		return res, err
	}
	opts, err := s.engineOpts()
	if err != nil {
		return res, err
	}
	eng := incblame.NewEngine(s.src, s.oracle(), opts)

	if s.cfg.Cache.Path != "" {
		c, err := blamecache.Open(s.cfg.Cache.Path)
		if err != nil {
			return res, err
		}
		defer c.Close()
		fp := blamecache.Fingerprint(opts, s.cfg.Blame.Diff, s.cfg.Blame.DiffAlgorithm)
		res.Outcome, res.CacheHit, err = c.Run(ctx, eng, fp, s.start, path)
		if err != nil {
			return res, err
		}
		if res.CacheHit {
			s.opts.Logger.Debug("ripsrc: loaded from cache", "commit", s.start, "path", path)
		}
	} else {
		res.Outcome, err = eng.Run(ctx, s.start, path)
		if err != nil {
			return res, err
		}
	}

	// interrupted outcome is still returned, lookups below must not fail on the cancelled ctx
	lookupCtx := context.WithoutCancel(ctx)
	blob, err := s.src.Resolve(lookupCtx, s.start, path)
	if err != nil {
		return res, err
	}
	res.Content, err = s.src.Lines(lookupCtx, blob)
	if err != nil {
		return res, err
	}
	res.Revisions = map[incblame.ObjectID]incblame.Revision{}
	for _, e := range res.Entries {
		if e.Revision == incblame.Unresolved {
			continue
		}
		if _, ok := res.Revisions[e.Revision]; ok {
			continue
		}
		rev, err := s.src.Revision(lookupCtx, e.Revision)
		if err != nil {
			return res, err
		}
		res.Revisions[e.Revision] = rev
	}
	return res, nil
}

// Snapshot saves history of path reachable from the starting revision into dir. Returns the number of saved commits.
func (s *Ripsrc) Snapshot(ctx context.Context, path string, dir string) (int, error) {
	start := time.Now()
	if s.opts.CheckpointDir != "" {
		return 0, errors.New("snapshot requires a git repo")
	}
	if err := s.open(); err != nil {
		return 0, err
	}
	r := repo.New(repo.Opts{})
	n, err := s.git.Export(ctx, s.start, path, r)
	if err != nil {
		return n, err
	}
	if err := r.WriteCheckpoint(dir); err != nil {
		return n, err
	}
	err = os.WriteFile(filepath.Join(dir, snapshotHeadFile), []byte(string(s.start)+"\n"), 0644)
	if err != nil {
		return n, err
	}
	s.opts.Logger.Info("ripsrc: snapshot written", "dir", dir, "commits", n, "d", time.Since(start))
	return n, nil
}

// ErrMismatch is returned by Validate when results differ from git blame.
// Line is -1 when the number of lines differs, GotLines and WantLines are set in that case.
type ErrMismatch struct {
	Line int
	Got  incblame.ObjectID
	Want incblame.ObjectID

	GotLines  int
	WantLines int
}

func (s ErrMismatch) Error() string {
	if s.Line < 0 {
		return fmt.Sprintf("line count mismatch got %v want %v", s.GotLines, s.WantLines)
	}
	return fmt.Sprintf("line %v attributed to %v, git blame says %v", s.Line+1, s.Got, s.Want)
}

func IsErrMismatch(err error) bool {
	var e ErrMismatch
	return errors.As(err, &e)
}

// Validate blames path and compares the result with git blame. Requires git binary.
func (s *Ripsrc) Validate(ctx context.Context, path string) (Result, error) {
	if s.opts.CheckpointDir != "" {
		return Result{}, errors.New("validate requires a git repo")
	}
	res, err := s.Blame(ctx, path)
	if err != nil {
		return res, err
	}
	want, err := gitblame2.Run(ctx, s.opts.RepoDir, string(s.start), path)
	if err != nil {
		return res, err
	}
	got := res.LineOrigins()
	if len(got) != len(want.Lines) {
		return res, ErrMismatch{Line: -1, GotLines: len(got), WantLines: len(want.Lines)}
	}
	for i, l := range want.Lines {
		if got[i] != incblame.ObjectID(l.CommitHash) {
			return res, ErrMismatch{Line: i, Got: got[i], Want: incblame.ObjectID(l.CommitHash)}
		}
	}
	return res, nil
}
