// Package blamecache persists blame outcomes in SQLite.
package blamecache

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/yonasBSD/gitoxide/ripsrc/blameout"
	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

// Cache stores outcomes keyed by revision, path and options fingerprint.
type Cache struct {
	db *sql.DB
}

// Open opens or creates cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}
	s := &Cache{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Cache) Close() error {
	return s.db.Close()
}

func (s *Cache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outcomes (
		revision TEXT NOT NULL,
		path TEXT NOT NULL,
		options TEXT NOT NULL,
		data BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (revision, path, options)
	);
	`
	_, err := s.db.Exec(schema)
	if err != nil {
		return errors.Wrap(err, "failed to create cache schema")
	}
	return nil
}

// Fingerprint identifies options that change blame results. Parallelism and cache sizes are not included.
// Extra holds settings outside of engine options, such as the diff implementation, each hashed as a separate field.
func Fingerprint(opts incblame.Opts, extra ...string) string {
	h := xxhash.New()
	for _, r := range opts.Ranges {
		fmt.Fprintf(h, "r%v;", r)
	}
	if !opts.Since.IsZero() {
		fmt.Fprintf(h, "s%v;", opts.Since.Unix())
	}
	if opts.Renames != nil {
		fmt.Fprintf(h, "m%T;", opts.Renames)
	}
	for _, v := range extra {
		fmt.Fprintf(h, "x%q;", v)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Get returns stored outcome. Second return value is false when there is no entry.
func (s *Cache) Get(ctx context.Context, rev incblame.ObjectID, path string, fingerprint string) (incblame.Outcome, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM outcomes WHERE revision = ? AND path = ? AND options = ?", string(rev), path, fingerprint).Scan(&data)
	if err == sql.ErrNoRows {
		return incblame.Outcome{}, false, nil
	}
	if err != nil {
		return incblame.Outcome{}, false, errors.Wrap(err, "failed to query cache")
	}
	res, err := blameout.Decode(bytes.NewReader(data))
	if err != nil {
		return incblame.Outcome{}, false, errors.Wrapf(err, "invalid cache record for %v:%v", rev, path)
	}
	return res, true, nil
}

// Put stores outcome. Interrupted outcomes are not stored.
func (s *Cache) Put(ctx context.Context, res incblame.Outcome, fingerprint string) error {
	if res.Interrupted {
		return nil
	}
	buf := bytes.NewBuffer(nil)
	if err := blameout.Encode(buf, res); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO outcomes (revision, path, options, data, created_at) VALUES (?, ?, ?, ?, ?)",
		string(res.Revision), res.Path, fingerprint, buf.Bytes(), time.Now().Unix())
	if err != nil {
		return errors.Wrap(err, "failed to store outcome")
	}
	return nil
}

// Len returns the number of stored outcomes.
func (s *Cache) Len(ctx context.Context) (n int, _ error) {
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM outcomes").Scan(&n)
	return n, err
}

type Runner interface {
	Run(ctx context.Context, start incblame.ObjectID, path string) (incblame.Outcome, error)
}

// Run returns cached outcome if present, otherwise runs blame and stores the result. Second return value is true on cache hit.
func (s *Cache) Run(ctx context.Context, r Runner, fingerprint string, rev incblame.ObjectID, path string) (incblame.Outcome, bool, error) {
	res, ok, err := s.Get(ctx, rev, path, fingerprint)
	if err != nil {
		return res, false, err
	}
	if ok {
		return res, true, nil
	}
	res, err = r.Run(ctx, rev, path)
	if err != nil {
		return res, false, err
	}
	if err := s.Put(ctx, res, fingerprint); err != nil {
		return res, false, err
	}
	return res, false, nil
}
