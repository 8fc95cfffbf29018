package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

var t0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func files(kv ...string) map[string][]byte {
	res := map[string][]byte{}
	for i := 0; i < len(kv); i += 2 {
		res[kv[i]] = []byte(kv[i+1])
	}
	return res
}

func add(t *testing.T, repo *Repo, hash string, parents []string, minutes int, f map[string][]byte) {
	t.Helper()
	err := repo.Add(Commit{Hash: hash, Parents: parents, Time: t0.Add(time.Duration(minutes) * time.Minute), Files: f})
	require.NoError(t, err)
}

func TestBasic1(t *testing.T) {
	ctx := context.Background()
	repo := New(Opts{})
	add(t, repo, "c1", nil, 0, files("p1", "l1\n"))
	add(t, repo, "c2", []string{"c1"}, 1, files("p1", "l1\n", "p2", "a\nb\n"))
	assert.Equal(t, 2, repo.CommitsInMemory())

	fl, err := repo.GetFiles("c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, fl)

	data, err := repo.GetFile("c1", "p2")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = repo.GetFiles("c3")
	assert.True(t, IsErrNoCommit(err))

	rev, err := repo.Revision(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, []incblame.ObjectID{"c1"}, rev.Parents)
	assert.Equal(t, int64(2), rev.OrderKey)

	b1, err := repo.Resolve(ctx, "c1", "p1")
	require.NoError(t, err)
	b2, err := repo.Resolve(ctx, "c2", "p1")
	require.NoError(t, err)
	assert.True(t, b1.Identical(b2))
	assert.Equal(t, int64(3), b1.Size)

	lines, err := repo.Lines(ctx, b2)
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, lines)
	assert.Equal(t, 1, repo.BlobReads(b2.ID))

	_, err = repo.Resolve(ctx, "c1", "p2")
	assert.True(t, incblame.IsErrPathNotFound(err))
	_, err = repo.Revision(ctx, "nope")
	assert.True(t, incblame.IsErrObjectMissing(err))
}

func TestDuplicateCommit(t *testing.T) {
	repo := New(Opts{})
	add(t, repo, "c1", nil, 0, nil)
	err := repo.Add(Commit{Hash: "c1"})
	assert.Error(t, err)
}

func TestBinaryBlob(t *testing.T) {
	ctx := context.Background()
	repo := New(Opts{})
	add(t, repo, "c1", nil, 0, files("bin", "a\x00b"))
	b, err := repo.Resolve(ctx, "c1", "bin")
	require.NoError(t, err)
	_, err = repo.Lines(ctx, b)
	assert.ErrorIs(t, err, incblame.ErrBinary)
}

func TestOrderCommitTime(t *testing.T) {
	ctx := context.Background()
	repo := New(Opts{Order: OrderCommitTime})
	add(t, repo, "c1", nil, 10, nil)
	add(t, repo, "c2", []string{"c1"}, 5, nil)
	rev, err := repo.Revision(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, t0.Add(5*time.Minute).Unix(), rev.OrderKey)

	edges, err := repo.NonMonotonic()
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "c2", edges[0].Child)
}

func TestMergeBase(t *testing.T) {
	repo := New(Opts{})
	add(t, repo, "base", nil, 0, nil)
	add(t, repo, "a", []string{"base"}, 1, nil)
	add(t, repo, "b", []string{"base"}, 2, nil)
	res, err := repo.MergeBase("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "base", res)
}

func TestCheckpoint(t *testing.T) {
	ctx := context.Background()
	td := t.TempDir()

	repo := New(Opts{})
	add(t, repo, "c1", nil, 0, files("p1", "l1\n"))
	add(t, repo, "c2", []string{"c1"}, 1, files("p1", "l1\nl2\n", "p2", ""))
	require.NoError(t, repo.WriteCheckpoint(td))

	repo2, err := ReadCheckpoint(td, Opts{})
	require.NoError(t, err)
	assert.Equal(t, repo.Commits(), repo2.Commits())

	fl, err := repo2.GetFiles("c2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, fl)

	data, err := repo2.GetFile("c2", "p1")
	require.NoError(t, err)
	assert.Equal(t, "l1\nl2\n", string(data))

	rev, err := repo2.Revision(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, []incblame.ObjectID{"c1"}, rev.Parents)
	assert.Equal(t, t0.Add(time.Minute).Unix(), rev.CommitTime.Unix())

	// writing again replaces the previous checkpoint
	require.NoError(t, repo2.WriteCheckpoint(td))
	_, err = ReadCheckpoint(td, Opts{})
	require.NoError(t, err)
}

func TestReadCheckpointMissing(t *testing.T) {
	_, err := ReadCheckpoint(t.TempDir(), Opts{})
	assert.Error(t, err)
}
