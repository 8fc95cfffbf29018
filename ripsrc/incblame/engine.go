package incblame

import (
	"context"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/yonasBSD/gitoxide/ripsrc/pkg/logger"
)

const (
	defaultParallelism   = 4
	defaultBlobCacheSize = 64
)

type Opts struct {
	// Ranges limits blame to these lines of the final file. Empty means the whole file.
	Ranges []LineRange
	// Since stops the walk at commits older than this time. Lines that would be passed further are attributed to the last commit inside the window and marked as boundary.
	Since time.Time
	// Parallelism is the max number of concurrent object source and diff calls for one suspect.
	Parallelism int
	// BlobCacheSize is the number of decoded blobs kept in memory.
	BlobCacheSize int
	// Renames is consulted when the path does not exist in any parent. Nil disables rename following.
	Renames RenameFollower
	Logger  logger.Logger
}

// Engine computes blame for files. It holds no per-run state and can be used for concurrent runs.
type Engine struct {
	src    ObjectSource
	oracle DiffOracle
	opts   Opts
}

func NewEngine(src ObjectSource, oracle DiffOracle, opts Opts) *Engine {
	if opts.Parallelism <= 0 {
		opts.Parallelism = defaultParallelism
	}
	if opts.BlobCacheSize <= 0 {
		opts.BlobCacheSize = defaultBlobCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	s := &Engine{}
	s.src = src
	s.oracle = oracle
	s.opts = opts
	return s
}

// State is the state of one run.
type State int

const (
	// Running means there are unblamed lines and suspects to process.
	Running State = iota
	// Converged means all lines were attributed.
	Converged
	// Exhausted means queue became empty while lines were still unblamed. Not reachable for valid history.
	Exhausted
	// Interrupted means the context was cancelled before all lines were attributed.
	Interrupted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	case Interrupted:
		return "interrupted"
	}
	return "unknown"
}

// Run blames path as of start revision. Context is checked once per processed suspect, when cancelled the returned outcome has Interrupted set and remaining lines point to Unresolved.
// Cancellation before the start blob is loaded returns the context error.
func (s *Engine) Run(ctx context.Context, start ObjectID, path string) (Outcome, error) {
	r, err := s.newRun()
	if err != nil {
		return Outcome{}, err
	}
	return r.run(ctx, start, path)
}

type pass struct {
	parent Suspect
	// edits between parent and suspect blob, nil when blobs are identical
	edits []Edit
}

// plan records how a processed suspect passes lines to its parents. It is kept to handle hunks reaching the suspect after it was popped.
type plan struct {
	suspect  Suspect
	passes   []pass
	boundary bool
}

type run struct {
	*Engine
	log logger.Logger

	queue   *SuspectQueue
	tracker *HunkTracker
	plans   map[SuspectKey]*plan
	replay  []SuspectKey
	blobs   *lru.Cache
	state   State
	stats   Statistics
	fetched int64
}

func (s *Engine) newRun() (*run, error) {
	r := &run{Engine: s}
	r.log = s.opts.Logger
	r.queue = NewSuspectQueue()
	r.plans = map[SuspectKey]*plan{}
	var err error
	r.blobs, err = lru.New(s.opts.BlobCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "could not create blob cache")
	}
	return r, nil
}

var errInterrupted = errors.New("interrupted")

func (r *run) run(ctx context.Context, start ObjectID, path string) (Outcome, error) {
	startTime := time.Now()
	r.log.Info("incblame: starting", "commit", start, "path", path)

	// Until the start blob is loaded the number of lines is unknown, so cancellation is returned as ctx error.
	rev, err := r.src.Revision(ctx, start)
	if err != nil {
		return Outcome{}, r.startErr(ctx, r.missing(start, err))
	}
	blob, err := r.src.Resolve(ctx, start, path)
	if err != nil {
		if IsErrPathNotFound(err) {
			return Outcome{}, err
		}
		return Outcome{}, r.startErr(ctx, r.missing(start, err))
	}
	suspect := Suspect{Revision: rev, Path: path, Blob: blob}
	lines, err := r.lines(ctx, blob)
	if err != nil {
		return Outcome{}, r.startErr(ctx, err)
	}
	ranges, err := normalizeRanges(r.opts.Ranges, len(lines))
	if err != nil {
		return Outcome{}, err
	}

	r.tracker = NewHunkTracker(suspect.Key(), ranges)
	if !r.tracker.Empty() {
		r.queue.Push(suspect)
	}

	r.setState(Running)
	for !r.tracker.Empty() {
		if len(r.replay) != 0 {
			k := r.replay[0]
			r.replay = r.replay[1:]
			if err := r.apply(r.plans[k], r.tracker.Take(k)); err != nil {
				return Outcome{}, err
			}
			continue
		}
		if ctx.Err() != nil {
			r.setState(Interrupted)
			break
		}
		next, ok := r.queue.Pop()
		if !ok {
			r.setState(Exhausted)
			return Outcome{}, ErrInvariantViolation{Reason: "no suspects left with unblamed lines", Hunks: r.tracker.Live()}
		}
		r.stats.CommitsVisited++
		p, err := r.plan(ctx, next)
		if err == errInterrupted {
			r.setState(Interrupted)
			break
		}
		if err != nil {
			return Outcome{}, err
		}
		r.plans[next.Key()] = p
		if err := r.apply(p, r.tracker.Take(next.Key())); err != nil {
			return Outcome{}, err
		}
	}
	if r.state == Running {
		r.setState(Converged)
	}

	entries, err := r.tracker.Drain()
	if err != nil {
		return Outcome{}, err
	}
	r.stats.BlobsFetched = int(atomic.LoadInt64(&r.fetched))
	res := Outcome{
		Revision:    start,
		Path:        path,
		Lines:       len(lines),
		Entries:     entries,
		Stats:       r.stats,
		Interrupted: r.state == Interrupted,
	}
	r.log.Info("incblame: completed", "commit", start, "path", path, "state", r.state, "entries", len(entries), "commits", r.stats.CommitsVisited, "diffs", r.stats.DiffsComputed, "d", time.Since(startTime))
	return res, nil
}

func (r *run) setState(st State) {
	if r.state == st {
		return
	}
	r.log.Debug("incblame: state", "from", r.state, "to", st)
	r.state = st
}

type parentInfo struct {
	rev   Revision
	path  string
	blob  BlobRef
	found bool
	// cut is set when parent is older than Since
	cut   bool
	edits []Edit
}

// plan fetches parents of suspect and computes diffs against those containing the path.
func (r *run) plan(ctx context.Context, suspect Suspect) (*plan, error) {
	p := &plan{suspect: suspect}
	rev := suspect.Revision
	if rev.IsRoot() {
		return p, nil
	}

	parents := make([]parentInfo, len(rev.Parents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)
	for i, pid := range rev.Parents {
		i, pid := i, pid
		g.Go(func() error {
			prev, err := r.src.Revision(gctx, pid)
			if err != nil {
				return r.missing(pid, err)
			}
			info := &parents[i]
			info.rev = prev
			if !r.opts.Since.IsZero() && prev.CommitTime.Before(r.opts.Since) {
				info.cut = true
				return nil
			}
			blob, err := r.src.Resolve(gctx, pid, suspect.Path)
			if err != nil {
				if IsErrPathNotFound(err) {
					return nil
				}
				return r.missing(pid, err)
			}
			info.path = suspect.Path
			info.blob = blob
			info.found = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, errInterrupted
		}
		return nil, err
	}

	for _, info := range parents {
		if info.cut {
			p.boundary = true
		}
		if info.rev.OrderKey > rev.OrderKey && !r.queue.InsertionOrder() {
			r.log.Info("incblame: parent has larger order key than child, falling back to insertion order", "commit", rev.ID, "parent", info.rev.ID)
			r.queue.UseInsertionOrder()
		}
	}

	if !anyFound(parents) && r.opts.Renames != nil {
		if err := r.followRenames(ctx, suspect, parents); err != nil {
			return nil, err
		}
	}
	if !anyFound(parents) {
		// file was added in this commit, or all parents are outside of Since
		return p, nil
	}

	first := parents[0]
	if first.found && first.blob.Identical(suspect.Blob) {
		r.stats.FastPathHops++
		p.passes = []pass{{parent: first.suspect()}}
		return p, nil
	}

	cur, err := r.lines(ctx, suspect.Blob)
	if err != nil {
		return nil, asDiffFailure(suspect.Key(), firstFound(parents).suspect().Key(), err)
	}
	var diffs int64
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)
	for i := range parents {
		info := &parents[i]
		if !info.found {
			continue
		}
		if info.blob.Identical(suspect.Blob) {
			info.edits = identityEdits(len(cur))
			continue
		}
		g.Go(func() error {
			old, err := r.lines(gctx, info.blob)
			if err != nil {
				return asDiffFailure(suspect.Key(), info.suspect().Key(), err)
			}
			atomic.AddInt64(&diffs, 1)
			edits, err := r.oracle.Diff(old, cur)
			if err != nil {
				return wrapDiffFailure(suspect.Key(), info.suspect().Key(), err)
			}
			if err := ValidateEdits(edits, len(old), len(cur)); err != nil {
				return wrapDiffFailure(suspect.Key(), info.suspect().Key(), err)
			}
			info.edits = edits
			return nil
		})
	}
	err = g.Wait()
	r.stats.DiffsComputed += int(atomic.LoadInt64(&diffs))
	if err != nil {
		if ctx.Err() != nil {
			return nil, errInterrupted
		}
		return nil, err
	}

	for _, info := range parents {
		if !info.found {
			continue
		}
		edits := info.edits
		if edits == nil {
			// both blobs are empty
			edits = []Edit{}
		}
		p.passes = append(p.passes, pass{parent: info.suspect(), edits: edits})
	}
	return p, nil
}

func (r *run) followRenames(ctx context.Context, suspect Suspect, parents []parentInfo) error {
	for i := range parents {
		info := &parents[i]
		if info.cut {
			continue
		}
		prev, ok, err := r.opts.Renames.PreviousPath(ctx, suspect.Revision, info.rev, suspect.Path)
		if err != nil {
			return errors.Wrapf(err, "rename detection failed for %v", suspect.Key())
		}
		if !ok {
			continue
		}
		blob, err := r.src.Resolve(ctx, info.rev.ID, prev)
		if err != nil {
			if IsErrPathNotFound(err) {
				continue
			}
			return r.missing(info.rev.ID, err)
		}
		r.log.Debug("incblame: following rename", "commit", suspect.Revision.ID, "from", prev, "to", suspect.Path)
		info.path = prev
		info.blob = blob
		info.found = true
	}
	return nil
}

func anyFound(parents []parentInfo) bool {
	for _, p := range parents {
		if p.found {
			return true
		}
	}
	return false
}

func firstFound(parents []parentInfo) parentInfo {
	for _, p := range parents {
		if p.found {
			return p
		}
	}
	return parentInfo{}
}

func (p parentInfo) suspect() Suspect {
	return Suspect{Revision: p.rev, Path: p.path, Blob: p.blob}
}

// apply passes hunks to parents of a processed suspect in parent order and claims whatever no parent explains.
func (r *run) apply(p *plan, hunks []UnblamedHunk) error {
	if len(hunks) == 0 {
		return nil
	}
	if p == nil {
		return ErrInvariantViolation{Reason: "hunks for suspect without plan", Hunks: hunks}
	}
	rest := hunks
	for _, ps := range p.passes {
		if len(rest) == 0 {
			break
		}
		var carried []UnblamedHunk
		if ps.edits == nil {
			carried = retarget(rest, ps.parent.Key())
			rest = nil
		} else {
			var err error
			carried, rest, err = passToParent(rest, ps.edits, ps.parent.Key())
			if err != nil {
				return err
			}
		}
		r.deliver(ps.parent, carried)
	}
	if len(rest) != 0 {
		claimed := r.tracker.Claim(p.suspect, rest, p.boundary)
		r.log.Debug("incblame: claimed", "commit", p.suspect.Revision.ID, "entries", len(claimed))
	}
	return nil
}

// deliver gives hunks to parent suspect and queues it. Parents already processed get the hunks replayed through their plan.
func (r *run) deliver(parent Suspect, hunks []UnblamedHunk) {
	if len(hunks) == 0 {
		return
	}
	r.tracker.Add(hunks...)
	k := parent.Key()
	if r.queue.Popped(k) {
		r.stats.Replays++
		r.replay = append(r.replay, k)
		return
	}
	r.queue.Push(parent)
}

// lines returns blob content using the per-run cache.
func (r *run) lines(ctx context.Context, blob BlobRef) ([]string, error) {
	if v, ok := r.blobs.Get(blob.ID); ok {
		return v.([]string), nil
	}
	res, err := r.src.Lines(ctx, blob)
	if err != nil {
		if errors.Is(err, ErrBinary) {
			return nil, errors.Wrapf(err, "blob %v", blob.ID)
		}
		return nil, r.missing(blob.ID, err)
	}
	atomic.AddInt64(&r.fetched, 1)
	r.blobs.Add(blob.ID, res)
	return res, nil
}

// asDiffFailure reports binary content as diff failure, other errors are returned unchanged.
func asDiffFailure(suspect, parent SuspectKey, err error) error {
	if errors.Is(err, ErrBinary) {
		return wrapDiffFailure(suspect, parent, err)
	}
	return err
}

func (r *run) startErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		r.setState(Interrupted)
		return errors.WithStack(ctx.Err())
	}
	return err
}

func (r *run) missing(id ObjectID, err error) error {
	if IsErrObjectMissing(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ErrObjectMissing{ID: id, Err: err}
}
