// Package repo is an in-memory object store implementing incblame.ObjectSource. It keeps full file snapshots per commit and content addressed blobs. Used in tests and for blaming from checkpoints without a git repository.
package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/yonasBSD/gitoxide/ripsrc/graph"
	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

type ErrNoCommit struct {
	Commit string
}

func (s ErrNoCommit) Error() string {
	return fmt.Sprintf("commit not found %v", s.Commit)
}

func IsErrNoCommit(err error) bool {
	_, ok := err.(ErrNoCommit)
	return ok
}

// OrderKey selects what is used as incblame.Revision.OrderKey.
type OrderKey int

const (
	// OrderGeneration uses generation numbers, always monotonic.
	OrderGeneration OrderKey = iota
	// OrderCommitTime uses commit timestamps, which are not monotonic when clocks are skewed.
	OrderCommitTime
)

type Opts struct {
	Order OrderKey
}

// Commit is the input for Add. Files is the full snapshot of tracked files at this commit.
type Commit struct {
	Hash    string
	Parents []string
	Time    time.Time
	Files   map[string][]byte
}

type commit struct {
	hash    string
	parents []string
	time    time.Time
	// map[filePath]blobID
	files map[string]incblame.ObjectID
}

type Repo struct {
	opts Opts

	mu      sync.RWMutex
	graph   *graph.Graph
	commits map[string]*commit
	blobs   map[incblame.ObjectID][]byte
	gens    map[string]int64
	reads   map[incblame.ObjectID]int
}

func New(opts Opts) *Repo {
	s := &Repo{}
	s.opts = opts
	s.graph = graph.New()
	s.commits = map[string]*commit{}
	s.blobs = map[incblame.ObjectID][]byte{}
	s.reads = map[incblame.ObjectID]int{}
	return s
}

// BlobID returns content address of data.
func BlobID(data []byte) incblame.ObjectID {
	return incblame.ObjectID(fmt.Sprintf("%016x", xxhash.Sum64(data)))
}

// Add stores commit. Parents can be added later, but must exist before the commit is used as a source.
func (s *Repo) Add(c Commit) error {
	if c.Hash == "" {
		return fmt.Errorf("commit hash is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.commits[c.Hash]; ok {
		return fmt.Errorf("commit already added %v", c.Hash)
	}
	cm := &commit{hash: c.Hash, parents: append([]string(nil), c.Parents...), time: c.Time}
	cm.files = map[string]incblame.ObjectID{}
	for p, data := range c.Files {
		cm.files[p] = s.addBlob(data)
	}
	s.commits[c.Hash] = cm
	s.graph.Add(c.Hash, c.Parents...)
	s.gens = nil
	return nil
}

func (s *Repo) addBlob(data []byte) incblame.ObjectID {
	id := BlobID(data)
	if _, ok := s.blobs[id]; !ok {
		s.blobs[id] = append([]byte(nil), data...)
	}
	return id
}

func (s *Repo) CommitsInMemory() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.commits)
}

// Commits returns hashes of all commits, sorted.
func (s *Repo) Commits() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]string, 0, len(s.commits))
	for h := range s.commits {
		res = append(res, h)
	}
	sort.Strings(res)
	return res
}

// GetFiles returns sorted paths of files in commit.
// If commit is not found returns an error.
func (s *Repo) GetFiles(commitHash string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.commits[commitHash]
	if !ok {
		return nil, ErrNoCommit{Commit: commitHash}
	}
	res := []string{}
	for k := range c.files {
		res = append(res, k)
	}
	sort.Strings(res)
	return res, nil
}

// GetFile returns file data.
// If commit is not found returns an error.
// If files is not found in commit returns nil for data and no error.
func (s *Repo) GetFile(commitHash, filePath string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.commits[commitHash]
	if !ok {
		return nil, ErrNoCommit{Commit: commitHash}
	}
	id, ok := c.files[filePath]
	if !ok {
		return nil, nil
	}
	return s.blobs[id], nil
}

// BlobReads returns the number of times blob content was requested using Lines.
func (s *Repo) BlobReads(id incblame.ObjectID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads[id]
}

// MergeBase returns the closest commit reachable from all heads.
func (s *Repo) MergeBase(heads ...string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.LastCommonParent(heads)
}

// NonMonotonic returns parent links where the parent has larger order key than the child.
func (s *Repo) NonMonotonic() ([]graph.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := map[string]int64{}
	for h := range s.commits {
		k, err := s.orderKey(h)
		if err != nil {
			return nil, err
		}
		keys[h] = k
	}
	return s.graph.NonMonotonic(keys), nil
}

// orderKey expects write lock to be held, generations are computed lazily.
func (s *Repo) orderKey(hash string) (int64, error) {
	c := s.commits[hash]
	if s.opts.Order == OrderCommitTime {
		return c.time.Unix(), nil
	}
	if s.gens == nil {
		gens, err := s.graph.Generations()
		if err != nil {
			return 0, err
		}
		s.gens = gens
	}
	return s.gens[hash], nil
}

func (s *Repo) Revision(ctx context.Context, id incblame.ObjectID) (incblame.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.commits[string(id)]
	if !ok {
		return incblame.Revision{}, incblame.ErrObjectMissing{ID: id, Err: ErrNoCommit{Commit: string(id)}}
	}
	key, err := s.orderKey(c.hash)
	if err != nil {
		return incblame.Revision{}, incblame.ErrObjectMissing{ID: id, Err: err}
	}
	res := incblame.Revision{
		ID:         id,
		OrderKey:   key,
		AuthorTime: c.time,
		CommitTime: c.time,
	}
	for _, p := range c.parents {
		res.Parents = append(res.Parents, incblame.ObjectID(p))
	}
	return res, nil
}

func (s *Repo) Resolve(ctx context.Context, rev incblame.ObjectID, path string) (incblame.BlobRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.commits[string(rev)]
	if !ok {
		return incblame.BlobRef{}, incblame.ErrObjectMissing{ID: rev, Err: ErrNoCommit{Commit: string(rev)}}
	}
	id, ok := c.files[path]
	if !ok {
		return incblame.BlobRef{}, incblame.ErrPathNotFound{Revision: rev, Path: path}
	}
	return incblame.BlobRef{ID: id, Size: int64(len(s.blobs[id]))}, nil
}

func (s *Repo) Lines(ctx context.Context, blob incblame.BlobRef) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[blob.ID]
	if !ok {
		return nil, incblame.ErrObjectMissing{ID: blob.ID}
	}
	s.reads[blob.ID]++
	if incblame.IsBinary(data) {
		return nil, incblame.ErrBinary
	}
	return incblame.SplitLines(data), nil
}

var _ incblame.ObjectSource = (*Repo)(nil)
