package blamecache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

func open(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func outcome(rev incblame.ObjectID) incblame.Outcome {
	return incblame.Outcome{
		Revision: rev,
		Path:     "a.txt",
		Lines:    2,
		Entries: []incblame.BlameEntry{
			{Final: incblame.Range(0, 2), Source: incblame.Range(0, 2), Revision: "c1", Path: "a.txt"},
		},
		Stats: incblame.Statistics{CommitsVisited: 1},
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := open(t)
	fp := Fingerprint(incblame.Opts{})

	_, ok, err := c.Get(ctx, "c1", "a.txt", fp)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, outcome("c1"), fp))
	got, ok, err := c.Get(ctx, "c1", "a.txt", fp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, outcome("c1"), got)

	_, ok, err = c.Get(ctx, "c1", "a.txt", Fingerprint(incblame.Opts{Ranges: []incblame.LineRange{incblame.Range(0, 1)}}))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInterruptedNotStored(t *testing.T) {
	ctx := context.Background()
	c := open(t)
	res := outcome("c1")
	res.Interrupted = true
	require.NoError(t, c.Put(ctx, res, "fp"))
	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestFingerprint(t *testing.T) {
	base := Fingerprint(incblame.Opts{})
	assert.Equal(t, base, Fingerprint(incblame.Opts{Parallelism: 8, BlobCacheSize: 3}))
	assert.NotEqual(t, base, Fingerprint(incblame.Opts{Since: time.Unix(100, 0)}))
	assert.NotEqual(t,
		Fingerprint(incblame.Opts{Ranges: []incblame.LineRange{incblame.Range(0, 1)}}),
		Fingerprint(incblame.Opts{Ranges: []incblame.LineRange{incblame.Range(0, 2)}}))
	assert.Equal(t, Fingerprint(incblame.Opts{}, "git", "histogram"), Fingerprint(incblame.Opts{}, "git", "histogram"))
	assert.NotEqual(t, Fingerprint(incblame.Opts{}, "git", "histogram"), Fingerprint(incblame.Opts{}, "githistogram", ""))
	assert.NotEqual(t, Fingerprint(incblame.Opts{}, "gi", "t"), Fingerprint(incblame.Opts{}, "git", ""))
	assert.NotEqual(t, base, Fingerprint(incblame.Opts{}, "git"))
}

type countingRunner struct {
	calls int
}

func (s *countingRunner) Run(ctx context.Context, start incblame.ObjectID, path string) (incblame.Outcome, error) {
	s.calls++
	return outcome(start), nil
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	c := open(t)
	r := &countingRunner{}
	res, hit, err := c.Run(ctx, r, "fp", "c2", "a.txt")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, incblame.ObjectID("c2"), res.Revision)

	res2, hit, err := c.Run(ctx, r, "fp", "c2", "a.txt")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, res, res2)
	assert.Equal(t, 1, r.calls)
}
