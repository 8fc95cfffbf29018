package gitrepo

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
	"github.com/yonasBSD/gitoxide/ripsrc/repo"
)

// Export copies all commits reachable from rev into dst. Only the content of path is kept in commit snapshots.
// Returns the number of exported commits.
func (s *Source) Export(ctx context.Context, rev incblame.ObjectID, path string, dst *repo.Repo) (int, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	iter, err := s.repo.Log(&git.LogOptions{From: plumbing.NewHash(string(rev))})
	if err != nil {
		return 0, errors.Wrapf(err, "could not read log from %v", rev)
	}
	defer iter.Close()
	n := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rc := repo.Commit{
			Hash:  c.Hash.String(),
			Time:  c.Committer.When,
			Files: map[string][]byte{},
		}
		for _, p := range c.ParentHashes {
			rc.Parents = append(rc.Parents, p.String())
		}
		f, err := c.File(path)
		switch {
		case err == nil:
			data, err := f.Contents()
			if err != nil {
				return errors.Wrapf(err, "could not read %v at %v", path, c.Hash)
			}
			rc.Files[path] = []byte(data)
		case errors.Is(err, object.ErrFileNotFound):
		default:
			return errors.Wrapf(err, "could not find %v at %v", path, c.Hash)
		}
		if err := dst.Add(rc); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	s.opts.Logger.Info("gitrepo: exported history", "commit", rev, "path", path, "commits", n, "d", time.Since(start))
	return n, nil
}
