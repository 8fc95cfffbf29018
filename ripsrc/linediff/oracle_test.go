package linediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

func TestOracleAppend(t *testing.T) {
	edits, err := NewOracle().Diff([]string{"a", "b"}, []string{"a", "b", "c"})
	require.NoError(t, err)
	want := []incblame.Edit{
		{Kind: incblame.EditEqual, Old: incblame.Range(0, 2), New: incblame.Range(0, 2)},
		{Kind: incblame.EditInsert, Old: incblame.Range(2, 2), New: incblame.Range(2, 3)},
	}
	assert.Equal(t, want, edits)
}

func TestOracleReplaceAndDelete(t *testing.T) {
	edits, err := NewOracle().Diff([]string{"a", "b", "c", "d"}, []string{"a", "x", "c"})
	require.NoError(t, err)
	want := []incblame.Edit{
		{Kind: incblame.EditEqual, Old: incblame.Range(0, 1), New: incblame.Range(0, 1)},
		{Kind: incblame.EditReplace, Old: incblame.Range(1, 2), New: incblame.Range(1, 2)},
		{Kind: incblame.EditEqual, Old: incblame.Range(2, 3), New: incblame.Range(2, 3)},
		{Kind: incblame.EditDelete, Old: incblame.Range(3, 4), New: incblame.Range(3, 3)},
	}
	assert.Equal(t, want, edits)
}

func TestOracleEmpty(t *testing.T) {
	edits, err := NewOracle().Diff(nil, nil)
	require.NoError(t, err)
	assert.Len(t, edits, 0)

	edits, err = NewOracle().Diff(nil, []string{"a"})
	require.NoError(t, err)
	want := []incblame.Edit{
		{Kind: incblame.EditInsert, Old: incblame.Range(0, 0), New: incblame.Range(0, 1)},
	}
	assert.Equal(t, want, edits)
}

func TestOracleDeterministic(t *testing.T) {
	old := []string{"x", "a", "x", "b", "x"}
	new := []string{"x", "b", "x", "a", "x"}
	e1, err := NewOracle().Diff(old, new)
	require.NoError(t, err)
	e2, err := NewOracle().Diff(old, new)
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
	assert.NoError(t, incblame.ValidateEdits(e1, len(old), len(new)))
}
