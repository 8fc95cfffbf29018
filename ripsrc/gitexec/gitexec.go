// Package gitexec runs the git binary.
package gitexec

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// ErrGitNotFound is returned when git binary is not in PATH.
var ErrGitNotFound = errors.New("git binary not found")

// Exec runs git and returns its stdout.
func Exec(ctx context.Context, gitCommand string, repoDir string, args []string) (io.ReadCloser, error) {
	buf := bytes.NewBuffer(nil)
	err := ExecIntoWriter(ctx, buf, gitCommand, repoDir, args)
	if err != nil {
		return nil, err
	}
	return noopReadCloser{buf}, nil
}

// ExecIntoWriter runs git writing stdout into wr. Stderr is included in the returned error.
func ExecIntoWriter(ctx context.Context, wr io.Writer, gitCommand string, repoDir string, args []string) error {
	if _, err := exec.LookPath(gitCommand); err != nil {
		return errors.Wrap(ErrGitNotFound, err.Error())
	}
	stderr := bytes.NewBuffer(nil)
	c := exec.CommandContext(ctx, gitCommand, args...)
	c.Dir = repoDir
	c.Stderr = stderr
	c.Stdout = wr
	if err := c.Run(); err != nil {
		return errors.Wrapf(err, "failed executing git %v stderr: %v", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return nil
}

// ExitCode returns exit code of a failed git command or -1 if err is not an exit error.
func ExitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}

// HeadCommit returns the hash of HEAD or empty string for repos without commits.
func HeadCommit(ctx context.Context, gitCommand string, repoDir string) string {
	out := bytes.NewBuffer(nil)
	err := ExecIntoWriter(ctx, out, gitCommand, repoDir, []string{"rev-parse", "HEAD"})
	if err != nil {
		return ""
	}
	res := strings.TrimSpace(out.String())
	if len(res) != 40 {
		return ""
	}
	return res
}

type noopReadCloser struct {
	io.Reader
}

func (noopReadCloser) Close() error {
	return nil
}
