package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a temporary git repository on disk. Commits are created with go-git, no git binary is needed.
type GitRepo struct {
	Dir string

	t    testing.TB
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()
	s := &GitRepo{}
	s.t = t
	s.Dir = t.TempDir()
	var err error
	s.repo, err = git.PlainInit(s.Dir, false)
	require.NoError(t, err)
	s.wt, err = s.repo.Worktree()
	require.NoError(t, err)
	return s
}

// Commit creates commit with files as the full snapshot of the worktree. Worktree is checked out at first parent before writing.
// Empty parents continue from HEAD, same as git commit. Returns commit hash.
func (s *GitRepo) Commit(msg string, parents []string, files map[string][]byte) string {
	s.t.Helper()
	t := s.t
	var parentHashes []plumbing.Hash
	for _, p := range parents {
		parentHashes = append(parentHashes, plumbing.NewHash(p))
	}
	var prev []string
	if len(parentHashes) != 0 {
		err := s.wt.Checkout(&git.CheckoutOptions{Hash: parentHashes[0], Force: true})
		require.NoError(t, err)
		prev = s.files(parentHashes[0])
	}
	for _, p := range prev {
		if _, ok := files[p]; ok {
			continue
		}
		_, err := s.wt.Remove(p)
		require.NoError(t, err)
	}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		loc := filepath.Join(s.Dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(loc), 0777))
		require.NoError(t, os.WriteFile(loc, files[p], 0644))
		_, err := s.wt.Add(p)
		require.NoError(t, err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: T0.Add(time.Duration(s.n) * time.Minute)}
	s.n++
	h, err := s.wt.Commit(msg, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parentHashes,
		AllowEmptyCommits: true,
	})
	require.NoError(t, err)
	return h.String()
}

func (s *GitRepo) files(h plumbing.Hash) (res []string) {
	s.t.Helper()
	c, err := s.repo.CommitObject(h)
	require.NoError(s.t, err)
	iter, err := c.Files()
	require.NoError(s.t, err)
	err = iter.ForEach(func(f *object.File) error {
		res = append(res, f.Name)
		return nil
	})
	require.NoError(s.t, err)
	return
}
