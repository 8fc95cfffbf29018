package linediff

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

// HunkLocation is one side of a unified diff hunk header. Start is 0-based index where the hunk begins on that side.
type HunkLocation struct {
	Start int
	Lines int
}

// ParseHunkHeader parses "@@ -a,b +c,d @@ section" into old and new locations.
func ParseHunkHeader(b0 []byte) (old, new HunkLocation, _ error) {
	rerr := func(msg string) error {
		return fmt.Errorf("invalid diff hunk header %q: %v", b0, msg)
	}
	if !bytes.HasPrefix(b0, []byte("@@ ")) {
		return old, new, rerr("no @@ prefix")
	}
	end := bytes.Index(b0[3:], []byte(" @@"))
	if end == -1 {
		return old, new, rerr("no closing @@")
	}
	parts := bytes.Split(b0[3:3+end], []byte(" "))
	if len(parts) != 2 {
		return old, new, rerr("expected 2 locations")
	}
	for i, p := range parts {
		if len(p) < 2 {
			return old, new, rerr("location too short")
		}
		want := byte('-')
		if i == 1 {
			want = '+'
		}
		if p[0] != want {
			return old, new, rerr("invalid op")
		}
		loc, err := parseLocation(string(p[1:]))
		if err != nil {
			return old, new, rerr(err.Error())
		}
		if i == 0 {
			old = loc
		} else {
			new = loc
		}
	}
	return
}

func parseLocation(s string) (res HunkLocation, _ error) {
	offset, lines := s, "1"
	if i := strings.IndexByte(s, ','); i != -1 {
		offset, lines = s[:i], s[i+1:]
	}
	o, err := strconv.Atoi(offset)
	if err != nil {
		return res, err
	}
	res.Lines, err = strconv.Atoi(lines)
	if err != nil {
		return res, err
	}
	if o < 0 || res.Lines < 0 {
		return res, fmt.Errorf("negative location %v", s)
	}
	// for empty side the offset is the line after which hunk is placed
	res.Start = o
	if res.Lines > 0 {
		if o == 0 {
			return res, fmt.Errorf("zero offset with lines %v", s)
		}
		res.Start = o - 1
	}
	return
}

// ParseUnified converts unified diff of one file into an edit script over old lines [0,oldLen) and new lines [0,newLen).
// Lines outside of hunks are treated as unchanged. File headers before the first hunk are ignored.
func ParseUnified(patch []byte, oldLen, newLen int) ([]incblame.Edit, error) {
	b := &editBuilder{}
	inHunk := false
	remOld, remNew := 0, 0
	patch = bytes.TrimSuffix(patch, []byte("\n"))
	for _, line := range bytes.Split(patch, []byte("\n")) {
		if remOld == 0 && remNew == 0 {
			inHunk = false
		}
		if !inHunk {
			if !bytes.HasPrefix(line, []byte("@@ ")) {
				continue
			}
			old, new, err := ParseHunkHeader(line)
			if err != nil {
				return nil, err
			}
			b.flush()
			gap := old.Start - b.oi
			if gap < 0 || new.Start-b.ni != gap {
				return nil, fmt.Errorf("hunk %q does not follow previous one, at old:%v new:%v", line, b.oi, b.ni)
			}
			b.equal(gap)
			remOld, remNew = old.Lines, new.Lines
			inHunk = true
			continue
		}
		op := byte(' ')
		if len(line) != 0 {
			op = line[0]
		}
		switch op {
		case ' ':
			b.equal(1)
			remOld--
			remNew--
		case '-':
			b.del(1)
			remOld--
		case '+':
			b.ins(1)
			remNew--
		case '\\':
			// no newline at end of file
		default:
			return nil, fmt.Errorf("invalid line in hunk %q", line)
		}
		if remOld < 0 || remNew < 0 {
			return nil, fmt.Errorf("hunk longer than header says at %q", line)
		}
	}
	if remOld != 0 || remNew != 0 {
		return nil, fmt.Errorf("truncated hunk, missing old:%v new:%v lines", remOld, remNew)
	}
	b.flush()
	tail := oldLen - b.oi
	if tail < 0 || newLen-b.ni != tail {
		return nil, fmt.Errorf("patch ends at old:%v new:%v which does not match lengths old:%v new:%v", b.oi, b.ni, oldLen, newLen)
	}
	b.equal(tail)
	return b.done(), nil
}

// editBuilder joins single line operations into edits. Runs of deletes and inserts between equal lines become one replace.
type editBuilder struct {
	res        []incblame.Edit
	oi         int
	ni         int
	pendingDel int
	pendingIns int
}

func (s *editBuilder) equal(n int) {
	if n == 0 {
		return
	}
	s.flush()
	e := incblame.Edit{Kind: incblame.EditEqual, Old: incblame.Range(s.oi, s.oi+n), New: incblame.Range(s.ni, s.ni+n)}
	s.oi += n
	s.ni += n
	if l := len(s.res); l > 0 && s.res[l-1].Kind == incblame.EditEqual {
		s.res[l-1].Old.End = e.Old.End
		s.res[l-1].New.End = e.New.End
		return
	}
	s.res = append(s.res, e)
}

func (s *editBuilder) del(n int) {
	s.pendingDel += n
}

func (s *editBuilder) ins(n int) {
	s.pendingIns += n
}

func (s *editBuilder) flush() {
	if s.pendingDel == 0 && s.pendingIns == 0 {
		return
	}
	e := incblame.Edit{Old: incblame.Range(s.oi, s.oi+s.pendingDel), New: incblame.Range(s.ni, s.ni+s.pendingIns)}
	switch {
	case s.pendingDel != 0 && s.pendingIns != 0:
		e.Kind = incblame.EditReplace
	case s.pendingDel != 0:
		e.Kind = incblame.EditDelete
	default:
		e.Kind = incblame.EditInsert
	}
	s.oi += s.pendingDel
	s.ni += s.pendingIns
	s.pendingDel, s.pendingIns = 0, 0
	s.res = append(s.res, e)
}

func (s *editBuilder) done() []incblame.Edit {
	s.flush()
	if s.res == nil {
		return []incblame.Edit{}
	}
	return s.res
}
