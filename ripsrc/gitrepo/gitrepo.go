// Package gitrepo implements incblame.ObjectSource on top of a git repository opened with go-git.
package gitrepo

import (
	"context"
	"io"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
	"github.com/yonasBSD/gitoxide/ripsrc/pkg/logger"
)

const defaultRevisionCacheSize = 1000

type Opts struct {
	// RevisionCacheSize is the number of parsed commits kept in memory.
	RevisionCacheSize int
	Logger            logger.Logger
}

// Source reads commits and blobs using go-git. Access to the repository is serialized, go-git storage is not safe for concurrent reads.
type Source struct {
	opts Opts

	mu   sync.Mutex
	repo *git.Repository
	revs *lru.Cache
}

// Open opens repository at dir or any of its parent dirs.
func Open(dir string, opts Opts) (*Source, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open repo %v", dir)
	}
	return New(r, opts)
}

func New(repo *git.Repository, opts Opts) (*Source, error) {
	if opts.RevisionCacheSize <= 0 {
		opts.RevisionCacheSize = defaultRevisionCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	s := &Source{}
	s.opts = opts
	s.repo = repo
	var err error
	s.revs, err = lru.New(opts.RevisionCacheSize)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveRevision converts revision expression (HEAD, branch, tag, hash) into commit id.
func (s *Source) ResolveRevision(rev string) (incblame.ObjectID, error) {
	if rev == "" {
		rev = "HEAD"
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", errors.Wrapf(err, "could not resolve revision %v", rev)
	}
	return incblame.ObjectID(h.String()), nil
}

func (s *Source) Revision(ctx context.Context, id incblame.ObjectID) (incblame.Revision, error) {
	if err := ctx.Err(); err != nil {
		return incblame.Revision{}, err
	}
	if v, ok := s.revs.Get(id); ok {
		return v.(incblame.Revision), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.commit(id)
	if err != nil {
		return incblame.Revision{}, err
	}
	res := incblame.Revision{
		ID:         id,
		OrderKey:   c.Committer.When.Unix(),
		AuthorTime: c.Author.When,
		CommitTime: c.Committer.When,
	}
	for _, p := range c.ParentHashes {
		res.Parents = append(res.Parents, incblame.ObjectID(p.String()))
	}
	s.revs.Add(id, res)
	return res, nil
}

func (s *Source) Resolve(ctx context.Context, rev incblame.ObjectID, path string) (incblame.BlobRef, error) {
	if err := ctx.Err(); err != nil {
		return incblame.BlobRef{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.commit(rev)
	if err != nil {
		return incblame.BlobRef{}, err
	}
	tree, err := c.Tree()
	if err != nil {
		return incblame.BlobRef{}, incblame.ErrObjectMissing{ID: incblame.ObjectID(c.TreeHash.String()), Err: err}
	}
	entry, err := tree.FindEntry(path)
	if err != nil {
		if errors.Is(err, object.ErrEntryNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
			return incblame.BlobRef{}, incblame.ErrPathNotFound{Revision: rev, Path: path}
		}
		return incblame.BlobRef{}, err
	}
	if !entry.Mode.IsFile() {
		return incblame.BlobRef{}, incblame.ErrPathNotFound{Revision: rev, Path: path}
	}
	id := incblame.ObjectID(entry.Hash.String())
	blob, err := s.repo.BlobObject(entry.Hash)
	if err != nil {
		return incblame.BlobRef{}, incblame.ErrObjectMissing{ID: id, Err: err}
	}
	return incblame.BlobRef{ID: id, Size: blob.Size}, nil
}

func (s *Source) Lines(ctx context.Context, ref incblame.BlobRef) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.blob(ref.ID)
	if err != nil {
		return nil, err
	}
	if incblame.IsBinary(data) {
		return nil, incblame.ErrBinary
	}
	return incblame.SplitLines(data), nil
}

func (s *Source) blob(id incblame.ObjectID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, err := s.repo.BlobObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, incblame.ErrObjectMissing{ID: id, Err: err}
	}
	r, err := blob.Reader()
	if err != nil {
		return nil, incblame.ErrObjectMissing{ID: id, Err: err}
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, incblame.ErrObjectMissing{ID: id, Err: err}
	}
	return data, nil
}

// commit expects mu to be held.
func (s *Source) commit(id incblame.ObjectID) (*object.Commit, error) {
	c, err := s.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, incblame.ErrObjectMissing{ID: id, Err: err}
	}
	return c, nil
}

var _ incblame.ObjectSource = (*Source)(nil)
