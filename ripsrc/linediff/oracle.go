// Package linediff provides line diff implementations for incblame.
package linediff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

// Oracle diffs lines using difflib SequenceMatcher.
type Oracle struct {
	// AutoJunk enables difflib popular line heuristic. Faster on large files, but the result is less minimal.
	AutoJunk bool
}

var _ incblame.DiffOracle = Oracle{}

// NewOracle returns oracle with heuristics disabled.
func NewOracle() Oracle {
	return Oracle{}
}

func (s Oracle) Diff(old, new []string) ([]incblame.Edit, error) {
	if len(old) == 0 && len(new) == 0 {
		return []incblame.Edit{}, nil
	}
	m := difflib.NewMatcherWithJunk(old, new, s.AutoJunk, nil)
	var res []incblame.Edit
	for _, op := range m.GetOpCodes() {
		e := incblame.Edit{
			Old: incblame.Range(op.I1, op.I2),
			New: incblame.Range(op.J1, op.J2),
		}
		switch op.Tag {
		case 'e':
			e.Kind = incblame.EditEqual
		case 'i':
			e.Kind = incblame.EditInsert
		case 'd':
			e.Kind = incblame.EditDelete
		case 'r':
			e.Kind = incblame.EditReplace
		default:
			return nil, fmt.Errorf("unknown difflib opcode %q", op.Tag)
		}
		res = append(res, e)
	}
	return res, nil
}
