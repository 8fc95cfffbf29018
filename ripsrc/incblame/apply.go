package incblame

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ValidateEdits makes sure edit script covers old lines [0,oldLen) and new lines [0,newLen) in order and without gaps.
func ValidateEdits(edits []Edit, oldLen, newLen int) error {
	oi, ni := 0, 0
	for i, e := range edits {
		if !e.Old.Valid() || !e.New.Valid() {
			return fmt.Errorf("edit %v has invalid range %v", i, e)
		}
		if e.Old.Start != oi || e.New.Start != ni {
			return fmt.Errorf("edit %v does not continue previous one, expected old:%v new:%v got %v", i, oi, ni, e)
		}
		switch e.Kind {
		case EditEqual:
			if e.Old.Len() != e.New.Len() {
				return fmt.Errorf("equal edit %v with different lengths %v", i, e)
			}
		case EditInsert:
			if !e.Old.Empty() {
				return fmt.Errorf("insert edit %v removes lines %v", i, e)
			}
		case EditDelete:
			if !e.New.Empty() {
				return fmt.Errorf("delete edit %v adds lines %v", i, e)
			}
		case EditReplace:
		default:
			return fmt.Errorf("edit %v has unknown kind %v", i, int(e.Kind))
		}
		oi = e.Old.End
		ni = e.New.End
	}
	if oi != oldLen || ni != newLen {
		return fmt.Errorf("edits end at old:%v new:%v, expected old:%v new:%v", oi, ni, oldLen, newLen)
	}
	return nil
}

// identityEdits is the edit script of a blob compared to itself.
func identityEdits(n int) []Edit {
	if n == 0 {
		return nil
	}
	return []Edit{{Kind: EditEqual, Old: Range(0, n), New: Range(0, n)}}
}

// passToParent intersects hunks (in suspect blob space) with edits between parent and suspect blobs.
// Parts of hunks that fall into equal edits are carried to parent with Source remapped to parent blob lines.
// Parts that fall into inserted or replaced lines are returned in rest, they did not exist in parent.
func passToParent(hunks []UnblamedHunk, edits []Edit, parent SuspectKey) (carried, rest []UnblamedHunk, _ error) {
	for _, h := range hunks {
		if h.Source.Empty() {
			continue
		}
		if h.Final.Len() != h.Source.Len() {
			return nil, nil, ErrInvariantViolation{Reason: "hunk final and source ranges differ in length", Hunks: []UnblamedHunk{h}}
		}
		covered := 0
		i := sort.Search(len(edits), func(i int) bool {
			return edits[i].New.End > h.Source.Start
		})
		for ; i < len(edits) && edits[i].New.Start < h.Source.End; i++ {
			e := edits[i]
			in := h.Source.Intersect(e.New)
			if in.Empty() {
				continue
			}
			covered += in.Len()
			final := h.Final.Sub(in.Start-h.Source.Start, in.Len())
			if e.Kind == EditEqual {
				src := e.Old.Sub(in.Start-e.New.Start, in.Len())
				carried = appendHunk(carried, UnblamedHunk{Final: final, Source: src, Suspect: parent})
				continue
			}
			rest = appendHunk(rest, UnblamedHunk{Final: final, Source: in, Suspect: h.Suspect})
		}
		if covered != h.Source.Len() {
			return nil, nil, ErrInvariantViolation{Reason: fmt.Sprintf("edit script covers %v of %v hunk lines", covered, h.Source.Len()), Hunks: []UnblamedHunk{h}}
		}
	}
	return
}

// retarget passes hunks to parent unchanged, used when parent blob is identical.
func retarget(hunks []UnblamedHunk, parent SuspectKey) []UnblamedHunk {
	res := make([]UnblamedHunk, 0, len(hunks))
	for _, h := range hunks {
		h.Suspect = parent
		res = append(res, h)
	}
	return res
}

// appendHunk appends h, joining it with the last hunk when both ranges continue it.
func appendHunk(hunks []UnblamedHunk, h UnblamedHunk) []UnblamedHunk {
	if h.Final.Empty() {
		return hunks
	}
	if n := len(hunks); n > 0 {
		last := &hunks[n-1]
		if last.Suspect == h.Suspect && last.Final.End == h.Final.Start && last.Source.End == h.Source.Start {
			last.Final.End = h.Final.End
			last.Source.End = h.Source.End
			return hunks
		}
	}
	return append(hunks, h)
}

func sortHunks(hunks []UnblamedHunk) {
	sort.Slice(hunks, func(i, j int) bool {
		a := hunks[i]
		b := hunks[j]
		if a.Source.Start != b.Source.Start {
			return a.Source.Start < b.Source.Start
		}
		return a.Final.Start < b.Final.Start
	})
}

func wrapDiffFailure(suspect, parent SuspectKey, err error) error {
	return ErrDiffFailure{Suspect: suspect, Parent: parent, Err: errors.WithStack(err)}
}
