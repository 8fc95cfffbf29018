// Package blameout formats blame outcomes for people and programs.
package blameout

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

type AnnotateOpts struct {
	// Color enables colored commit hashes. Also requires color.NoColor to be false.
	Color bool
	// Now is used for relative commit times. Defaults to time.Now.
	Now time.Time
}

// Annotate writes content prefixed with origin commit, relative commit time and line number, similar to git blame.
// Revs provides commit times, commits missing from it are printed without time.
func Annotate(wr io.Writer, res incblame.Outcome, content []string, revs map[incblame.ObjectID]incblame.Revision, opts AnnotateOpts) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	hash := fmt.Sprint
	boundary := fmt.Sprint
	if opts.Color {
		hash = color.New(color.FgYellow).Sprint
		boundary = color.New(color.FgHiBlack).Sprint
	}
	width := len(strconv.Itoa(res.Lines))
	for _, e := range res.Entries {
		id := e.Revision.Short()
		when := ""
		if rev, ok := revs[e.Revision]; ok {
			when = humanize.RelTime(rev.CommitTime, opts.Now, "ago", "from now")
		}
		for i := e.Final.Start; i < e.Final.End; i++ {
			text := ""
			if i < len(content) {
				text = content[i]
			}
			prefix := hash(fmt.Sprintf("%-8v", id))
			if e.Boundary {
				prefix = boundary(fmt.Sprintf("^%-7v", id))
			}
			_, err := fmt.Fprintf(wr, "%v (%-14v %*d) %v\n", prefix, when, width, i+1, text)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteRecords writes one "start end revision" line per entry. Ranges are 0-based and half-open.
func WriteRecords(wr io.Writer, res incblame.Outcome) error {
	for _, tr := range res.Triples() {
		_, err := fmt.Fprintf(wr, "%d %d %v\n", tr.Start, tr.End, tr.Revision)
		if err != nil {
			return err
		}
	}
	return nil
}
