package incblame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eq(o1, o2, n1, n2 int) Edit {
	return Edit{Kind: EditEqual, Old: Range(o1, o2), New: Range(n1, n2)}
}

func ins(o, n1, n2 int) Edit {
	return Edit{Kind: EditInsert, Old: Range(o, o), New: Range(n1, n2)}
}

func del(o1, o2, n int) Edit {
	return Edit{Kind: EditDelete, Old: Range(o1, o2), New: Range(n, n)}
}

func repl(o1, o2, n1, n2 int) Edit {
	return Edit{Kind: EditReplace, Old: Range(o1, o2), New: Range(n1, n2)}
}

func TestValidateEdits(t *testing.T) {
	valid := []Edit{eq(0, 2, 0, 2), ins(2, 2, 3), del(2, 3, 3), repl(3, 4, 3, 5), eq(4, 5, 5, 6)}
	assert.NoError(t, ValidateEdits(valid, 5, 6))
	assert.NoError(t, ValidateEdits(nil, 0, 0))

	cases := map[string][]Edit{
		"gap":            {eq(0, 2, 0, 2), eq(3, 5, 2, 4)},
		"short":          {eq(0, 2, 0, 2)},
		"equal len":      {eq(0, 2, 0, 3), del(2, 5, 3)},
		"insert removes": {Edit{Kind: EditInsert, Old: Range(0, 5), New: Range(0, 4)}},
		"delete adds":    {Edit{Kind: EditDelete, Old: Range(0, 5), New: Range(0, 4)}},
		"invalid range":  {Edit{Kind: EditReplace, Old: Range(5, 0), New: Range(0, 4)}},
		"unknown kind":   {Edit{Kind: EditKind(9), Old: Range(0, 5), New: Range(0, 4)}},
	}
	for name, edits := range cases {
		assert.Error(t, ValidateEdits(edits, 5, 4), name)
	}
}

func TestPassToParent(t *testing.T) {
	s := SuspectKey{"c2", "a.txt"}
	p := SuspectKey{"c1", "a.txt"}
	edits := []Edit{eq(0, 2, 0, 2), ins(2, 2, 3), eq(2, 4, 3, 5)}

	hunks := []UnblamedHunk{{Final: Range(10, 15), Source: Range(0, 5), Suspect: s}}
	carried, rest, err := passToParent(hunks, edits, p)
	require.NoError(t, err)
	assert.Equal(t, []UnblamedHunk{
		{Final: Range(10, 12), Source: Range(0, 2), Suspect: p},
		{Final: Range(13, 15), Source: Range(2, 4), Suspect: p},
	}, carried)
	assert.Equal(t, []UnblamedHunk{
		{Final: Range(12, 13), Source: Range(2, 3), Suspect: s},
	}, rest)
}

func TestPassToParentPartialHunk(t *testing.T) {
	s := SuspectKey{"c2", "a.txt"}
	p := SuspectKey{"c1", "a.txt"}
	edits := []Edit{eq(0, 2, 0, 2), ins(2, 2, 3), eq(2, 4, 3, 5)}

	hunks := []UnblamedHunk{{Final: Range(0, 3), Source: Range(1, 4), Suspect: s}}
	carried, rest, err := passToParent(hunks, edits, p)
	require.NoError(t, err)
	assert.Equal(t, []UnblamedHunk{
		{Final: Range(0, 1), Source: Range(1, 2), Suspect: p},
		{Final: Range(2, 3), Source: Range(2, 3), Suspect: p},
	}, carried)
	assert.Equal(t, []UnblamedHunk{
		{Final: Range(1, 2), Source: Range(2, 3), Suspect: s},
	}, rest)
}

func TestPassToParentJoinsHunks(t *testing.T) {
	s := SuspectKey{"c2", "a.txt"}
	p := SuspectKey{"c1", "a.txt"}
	hunks := []UnblamedHunk{
		{Final: Range(0, 2), Source: Range(0, 2), Suspect: s},
		{Final: Range(2, 4), Source: Range(2, 4), Suspect: s},
	}
	carried, rest, err := passToParent(hunks, identityEdits(4), p)
	require.NoError(t, err)
	assert.Len(t, rest, 0)
	assert.Equal(t, []UnblamedHunk{{Final: Range(0, 4), Source: Range(0, 4), Suspect: p}}, carried)
}

func TestPassToParentReplaced(t *testing.T) {
	s := SuspectKey{"c2", "a.txt"}
	p := SuspectKey{"c1", "a.txt"}
	hunks := []UnblamedHunk{{Final: Range(0, 3), Source: Range(0, 3), Suspect: s}}
	carried, rest, err := passToParent(hunks, []Edit{repl(0, 1, 0, 3)}, p)
	require.NoError(t, err)
	assert.Len(t, carried, 0)
	assert.Equal(t, hunks, rest)
}

func TestPassToParentIncompleteEdits(t *testing.T) {
	s := SuspectKey{"c2", "a.txt"}
	p := SuspectKey{"c1", "a.txt"}
	hunks := []UnblamedHunk{{Final: Range(0, 5), Source: Range(0, 5), Suspect: s}}
	_, _, err := passToParent(hunks, []Edit{eq(0, 2, 0, 2)}, p)
	assert.True(t, IsErrInvariantViolation(err), err)
}

func TestRetarget(t *testing.T) {
	s := SuspectKey{"c2", "a.txt"}
	p := SuspectKey{"c1", "b.txt"}
	hunks := []UnblamedHunk{{Final: Range(0, 5), Source: Range(1, 6), Suspect: s}}
	res := retarget(hunks, p)
	assert.Equal(t, []UnblamedHunk{{Final: Range(0, 5), Source: Range(1, 6), Suspect: p}}, res)
	assert.Equal(t, s, hunks[0].Suspect)
}
