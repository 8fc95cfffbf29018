package ripsrc

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/gitoxide/ripsrc/config"
	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
	"github.com/yonasBSD/gitoxide/ripsrc/pkg/logger"
	"github.com/yonasBSD/gitoxide/ripsrc/pkg/testutil"
)

type fixture struct {
	dir string
	c1  string
	c2  string
}

func newFixture(t *testing.T) fixture {
	r := testutil.NewGitRepo(t)
	res := fixture{dir: r.Dir}
	res.c1 = r.Commit("c1", nil, testutil.Files("a.txt", testutil.Lines("a", "b")))
	res.c2 = r.Commit("c2", testutil.Parents(res.c1), testutil.Files("a.txt", testutil.Lines("a", "x", "b")))
	return res
}

func (f fixture) origins() []string {
	return []string{f.c1, f.c2, f.c1}
}

func TestBlame(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	s := New(Opts{RepoDir: f.dir, Logger: logger.NewNopLogger()})
	res, err := s.Blame(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(f.origins(), testutil.Origins(res.Outcome))
	assert.Equal([]string{"a", "x", "b"}, res.Content)
	assert.Equal(incblame.ObjectID(f.c2), res.Revision)
	assert.Len(res.Revisions, 2)
	assert.Equal(incblame.ObjectID(f.c1), res.Revisions[incblame.ObjectID(f.c1)].ID)
	assert.False(res.CacheHit)
}

func TestBlameRevision(t *testing.T) {
	f := newFixture(t)
	s := New(Opts{RepoDir: f.dir, Rev: f.c1, Logger: logger.NewNopLogger()})
	res, err := s.Blame(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{f.c1, f.c1}, testutil.Origins(res.Outcome))
}

func TestBlameCache(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	cfg := config.Default()
	cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")

	s := New(Opts{RepoDir: f.dir, Config: &cfg, Logger: logger.NewNopLogger()})
	res1, err := s.Blame(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.False(res1.CacheHit)

	res2, err := s.Blame(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.True(res2.CacheHit)
	assert.Equal(res1.Outcome, res2.Outcome)
	assert.Equal(res1.Content, res2.Content)
}

func TestBlameInvalidConfig(t *testing.T) {
	f := newFixture(t)
	cfg := config.Default()
	cfg.Blame.Since = "yesterday"
	s := New(Opts{RepoDir: f.dir, Config: &cfg, Logger: logger.NewNopLogger()})
	_, err := s.Blame(context.Background(), "a.txt")
	assert.Error(t, err)
}

func TestBlamePathNotFound(t *testing.T) {
	f := newFixture(t)
	s := New(Opts{RepoDir: f.dir, Logger: logger.NewNopLogger()})
	_, err := s.Blame(context.Background(), "missing.txt")
	assert.True(t, incblame.IsErrPathNotFound(err))
}

func TestSnapshot(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	dir := t.TempDir()

	s := New(Opts{RepoDir: f.dir, Logger: logger.NewNopLogger()})
	n, err := s.Snapshot(context.Background(), "a.txt", dir)
	require.NoError(t, err)
	assert.Equal(2, n)

	s2 := New(Opts{CheckpointDir: dir, Logger: logger.NewNopLogger()})
	res, err := s2.Blame(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(f.origins(), testutil.Origins(res.Outcome))
	assert.Equal([]string{"a", "x", "b"}, res.Content)

	_, err = s2.Snapshot(context.Background(), "a.txt", t.TempDir())
	assert.Error(err)
}

func TestValidate(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	f := newFixture(t)
	s := New(Opts{RepoDir: f.dir, Logger: logger.NewNopLogger()})
	_, err := s.Validate(context.Background(), "a.txt")
	assert.NoError(t, err)
}

func TestErrMismatch(t *testing.T) {
	err := error(ErrMismatch{Line: 1, Got: "a", Want: "b"})
	assert.True(t, IsErrMismatch(err))
	assert.Equal(t, "line 2 attributed to a, git blame says b", err.Error())

	err = ErrMismatch{Line: -1, GotLines: 3, WantLines: 4}
	assert.True(t, IsErrMismatch(err))
	assert.Equal(t, "line count mismatch got 3 want 4", err.Error())
}

// cancelOnClaim cancels the run after the first commit claims lines.
type cancelOnClaim struct {
	logger.Logger
	cancel func()
}

func (s cancelOnClaim) Debug(msg string, args ...interface{}) {
	if msg == "incblame: claimed" {
		s.cancel()
	}
}

func TestBlameInterrupted(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := New(Opts{RepoDir: f.dir, Logger: cancelOnClaim{Logger: logger.NewNopLogger(), cancel: cancel}})
	res, err := s.Blame(ctx, "a.txt")
	require.NoError(t, err)
	assert.True(res.Interrupted)
	assert.Equal([]string{string(incblame.Unresolved), f.c2, string(incblame.Unresolved)}, testutil.Origins(res.Outcome))
	assert.Equal([]string{"a", "x", "b"}, res.Content)
	assert.Len(res.Revisions, 1)
	assert.Equal(incblame.ObjectID(f.c2), res.Revisions[incblame.ObjectID(f.c2)].ID)
}

func TestBlameCancelledBeforeStart(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(Opts{RepoDir: f.dir, Logger: logger.NewNopLogger()})
	_, err := s.Blame(ctx, "a.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), err)
	assert.False(t, incblame.IsErrObjectMissing(err))
}
