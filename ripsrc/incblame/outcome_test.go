package incblame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRanges(t *testing.T) {
	res, err := normalizeRanges(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, []LineRange{Range(0, 5)}, res)

	res, err = normalizeRanges(nil, 0)
	require.NoError(t, err)
	assert.Len(t, res, 0)

	res, err = normalizeRanges([]LineRange{Range(4, 6), Range(0, 2), Range(1, 3), Range(3, 3), Range(6, 7)}, 10)
	require.NoError(t, err)
	assert.Equal(t, []LineRange{Range(0, 3), Range(4, 7)}, res)

	_, err = normalizeRanges([]LineRange{Range(0, 11)}, 10)
	assert.Error(t, err)

	_, err = normalizeRanges([]LineRange{Range(3, 2)}, 10)
	assert.Error(t, err)
}

func TestCoalesce(t *testing.T) {
	entries := []BlameEntry{
		{Final: Range(0, 2), Source: Range(0, 2), Revision: "c1", Path: "a"},
		{Final: Range(2, 3), Source: Range(2, 3), Revision: "c1", Path: "a"},
		{Final: Range(3, 4), Source: Range(7, 8), Revision: "c1", Path: "a"},
		{Final: Range(4, 5), Source: Range(8, 9), Revision: "c1", Path: "a", Boundary: true},
	}
	res := coalesce(entries)
	assert.Equal(t, "[0,3)->c1 [3,4)->c1 ^[4,5)->c1", entriesString(res))
}

func TestOutcomeTriples(t *testing.T) {
	o := Outcome{
		Lines: 4,
		Entries: []BlameEntry{
			{Final: Range(0, 1), Revision: "c1"},
			{Final: Range(2, 4), Revision: "c2"},
		},
	}
	assert.Equal(t, []Triple{{0, 1, "c1"}, {2, 4, "c2"}}, o.Triples())
	assert.Equal(t, []ObjectID{"c1", "", "c2", "c2"}, o.LineOrigins())
	assert.Equal(t, "[0,1)->c1 [2,4)->c2", o.String())
}

func TestSplitLines(t *testing.T) {
	assert.Len(t, SplitLines(nil), 0)
	assert.Equal(t, []string{"a", "b"}, SplitLines([]byte("a\nb\n")))
	assert.Equal(t, []string{"a", "b"}, SplitLines([]byte("a\r\nb")))
	assert.Equal(t, []string{""}, SplitLines([]byte("\n")))
	assert.True(t, IsBinary([]byte("a\x00b")))
	assert.False(t, IsBinary([]byte("ab\n")))
}
