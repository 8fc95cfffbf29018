// Package testutil contains helpers to build commit histories in tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
	"github.com/yonasBSD/gitoxide/ripsrc/repo"
)

// T0 is the time of the first commit created by helpers.
var T0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// Files converts path, content pairs into a file snapshot.
func Files(kv ...string) map[string][]byte {
	if len(kv)%2 != 0 {
		panic("testutil.Files: odd number of args")
	}
	res := map[string][]byte{}
	for i := 0; i < len(kv); i += 2 {
		res[kv[i]] = []byte(kv[i+1])
	}
	return res
}

// History builds in-memory repo. Every commit is one minute after the previous one unless time is set explicitly.
type History struct {
	t    testing.TB
	repo *repo.Repo
	n    int
}

func NewHistory(t testing.TB, opts repo.Opts) *History {
	s := &History{}
	s.t = t
	s.repo = repo.New(opts)
	return s
}

// Commit adds commit with full file snapshot.
func (s *History) Commit(hash string, parents []string, files map[string][]byte) *History {
	s.t.Helper()
	s.CommitAt(hash, parents, T0.Add(time.Duration(s.n)*time.Minute), files)
	return s
}

// CommitAt adds commit with explicit commit time.
func (s *History) CommitAt(hash string, parents []string, when time.Time, files map[string][]byte) *History {
	s.t.Helper()
	s.n++
	err := s.repo.Add(repo.Commit{Hash: hash, Parents: parents, Time: when, Files: files})
	require.NoError(s.t, err)
	return s
}

func (s *History) Repo() *repo.Repo {
	return s.repo
}

// Parents is a shorthand for a list of parent hashes.
func Parents(hashes ...string) []string {
	return hashes
}

// Lines joins lines with newline terminators.
func Lines(lines ...string) string {
	res := ""
	for _, l := range lines {
		res += l + "\n"
	}
	return res
}

// Origins expands entries into one origin per line, for compact assertions.
func Origins(res incblame.Outcome) []string {
	var out []string
	for _, id := range res.LineOrigins() {
		out = append(out, string(id))
	}
	return out
}
