// Package gitblame2 runs git blame and parses its porcelain output. Used to check incblame results against git.
package gitblame2

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/yonasBSD/gitoxide/ripsrc/gitexec"
	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

type Line struct {
	Content    string
	CommitHash string
	// SourceLine is 0-based line index in the commit where line originated.
	SourceLine int
	Filename   string
}

func (l Line) String() string {
	return l.CommitHash + ":" + l.Content
}

type Result struct {
	Lines []Line
}

func (r Result) String() string {
	out := []string{}
	for i, l := range r.Lines {
		out = append(out, strconv.Itoa(i)+":"+l.String())
	}
	return strings.Join(out, "\n")
}

// Triples groups consecutive lines from the same commit.
func (r Result) Triples() (res []incblame.Triple) {
	for i, l := range r.Lines {
		rev := incblame.ObjectID(l.CommitHash)
		if n := len(res); n > 0 && res[n-1].Revision == rev && res[n-1].End == i {
			res[n-1].End = i + 1
			continue
		}
		res = append(res, incblame.Triple{Start: i, End: i + 1, Revision: rev})
	}
	return
}

// Run executes git blame on file at commit.
func Run(ctx context.Context, repoDir, commitHash, file string) (res Result, _ error) {
	args := []string{
		"blame",
		commitHash,
		"--porcelain",
		"--",
		file,
	}
	out := bytes.NewBuffer(nil)
	err := gitexec.ExecIntoWriter(ctx, out, "git", repoDir, args)
	if err != nil {
		return res, err
	}
	res0, err := parseOutput(out.String())
	if err != nil {
		return res, err
	}
	for _, l0 := range res0 {
		l := Line{Content: l0.Content, CommitHash: l0.CommitHash, SourceLine: l0.SourceLine, Filename: l0.Meta["filename"]}
		res.Lines = append(res.Lines, l)
	}
	return res, nil
}
