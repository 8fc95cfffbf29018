package linediff

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/yonasBSD/gitoxide/ripsrc/gitexec"
	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

// GitOracle runs git diff --no-index on temporary files. Slower than Oracle, but matches the edit scripts git blame uses.
// DiffOracle has no context, so a running git diff is not stopped when the blame is cancelled. Cancellation takes effect at the next suspect.
type GitOracle struct {
	// CommandName is the git binary. Defaults to git.
	CommandName string
	// Algorithm is passed as --diff-algorithm when set. One of myers, minimal, patience, histogram.
	Algorithm string
	// TempDir is where blobs are written. Defaults to os.TempDir.
	TempDir string
}

var _ incblame.DiffOracle = GitOracle{}

func (s GitOracle) Diff(old, new []string) ([]incblame.Edit, error) {
	gitCommand := s.CommandName
	if gitCommand == "" {
		gitCommand = "git"
	}
	dir, err := os.MkdirTemp(s.TempDir, "linediff")
	if err != nil {
		return nil, errors.Wrap(err, "could not create temp dir")
	}
	defer os.RemoveAll(dir)

	oldLoc := filepath.Join(dir, "old")
	newLoc := filepath.Join(dir, "new")
	if err := os.WriteFile(oldLoc, joinLines(old), 0644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(newLoc, joinLines(new), 0644); err != nil {
		return nil, err
	}

	args := []string{"diff", "--no-index", "--no-color", "--no-ext-diff", "--text", "-U0"}
	if s.Algorithm != "" {
		args = append(args, "--diff-algorithm="+s.Algorithm)
	}
	args = append(args, "--", "old", "new")

	out := bytes.NewBuffer(nil)
	err = gitexec.ExecIntoWriter(context.Background(), out, gitCommand, dir, args)
	// exit code 1 means files differ
	if err != nil && gitexec.ExitCode(err) != 1 {
		return nil, err
	}
	return ParseUnified(out.Bytes(), len(old), len(new))
}

func joinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
