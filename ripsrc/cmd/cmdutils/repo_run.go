package cmdutils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/yonasBSD/gitoxide/ripsrc/gitexec"
)

var ErrRevParseFailed = errors.New("git rev-parse HEAD failed")

// RunOnRepo checks that repoDir has a HEAD commit and runs fn, printing progress to stderr.
func RunOnRepo(ctx context.Context, repoDir string, fn func() error) error {
	start := time.Now()
	fmt.Fprintf(color.Error, "starting processing repo:%v\n", color.GreenString(repoDir))
	if gitexec.HeadCommit(ctx, "git", repoDir) == "" {
		fmt.Fprintf(color.Error, "git rev-parse HEAD failed, happens for empty repos, repo: %v\n", repoDir)
		return ErrRevParseFailed
	}
	err := fn()
	if err != nil {
		fmt.Fprintf(color.Error, "completed repo processing in %v repo: %v err: %v\n", time.Since(start), color.RedString(repoDir), color.RedString(err.Error()))
		return err
	}
	fmt.Fprintf(color.Error, "completed repo processing in %v repo: %v\n", time.Since(start), color.GreenString(repoDir))
	return nil
}
