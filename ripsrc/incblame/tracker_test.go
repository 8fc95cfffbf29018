package incblame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerTakeAndClaim(t *testing.T) {
	start := SuspectKey{"c2", "a.txt"}
	parent := SuspectKey{"c1", "a.txt"}
	tr := NewHunkTracker(start, []LineRange{Range(0, 5)})
	assert.False(t, tr.Empty())
	assert.Equal(t, 5, tr.LiveLines())

	hunks := tr.Take(start)
	require.Len(t, hunks, 1)
	assert.True(t, tr.Empty())
	assert.False(t, tr.Has(start))

	tr.Add(UnblamedHunk{Final: Range(3, 5), Source: Range(1, 3), Suspect: parent})
	tr.Add(UnblamedHunk{Final: Range(0, 2), Source: Range(0, 2), Suspect: parent})
	tr.Add(UnblamedHunk{Final: Range(2, 2), Source: Range(2, 2), Suspect: parent})
	assert.True(t, tr.Has(parent))
	assert.Equal(t, 4, tr.LiveLines())

	c2 := Suspect{Revision: Revision{ID: "c2"}, Path: "a.txt"}
	claimed := tr.Claim(c2, []UnblamedHunk{{Final: Range(2, 3), Source: Range(2, 3), Suspect: start}}, false)
	assert.Equal(t, "[2,3)->c2", entriesString(claimed))

	hunks = tr.Take(parent)
	require.Len(t, hunks, 2, "empty hunks are dropped")
	assert.Equal(t, Range(0, 2), hunks[0].Source, "sorted by source")
	assert.Equal(t, Range(1, 3), hunks[1].Source)

	c1 := Suspect{Revision: Revision{ID: "c1"}, Path: "a.txt"}
	tr.Claim(c1, hunks, false)
	entries, err := tr.Drain()
	require.NoError(t, err)
	assert.Equal(t, "[0,2)->c1 [2,3)->c2 [3,5)->c1", entriesString(entries))
}

func TestTrackerDrainUnresolved(t *testing.T) {
	start := SuspectKey{"c2", "a.txt"}
	tr := NewHunkTracker(start, []LineRange{Range(0, 2), Range(4, 6)})
	hunks := tr.Take(start)
	c2 := Suspect{Revision: Revision{ID: "c2"}, Path: "a.txt"}
	tr.Claim(c2, hunks[:1], false)
	tr.Add(hunks[1])
	entries, err := tr.Drain()
	require.NoError(t, err)
	assert.Equal(t, "[0,2)->c2 [4,6)->unresolved", entriesString(entries))
}

func TestTrackerDrainCoverageViolation(t *testing.T) {
	start := SuspectKey{"c2", "a.txt"}
	tr := NewHunkTracker(start, []LineRange{Range(0, 4)})
	hunks := tr.Take(start)
	c2 := Suspect{Revision: Revision{ID: "c2"}, Path: "a.txt"}
	tr.Claim(c2, hunks, false)
	tr.Claim(c2, []UnblamedHunk{{Final: Range(3, 5), Source: Range(3, 5)}}, false)
	_, err := tr.Drain()
	assert.True(t, IsErrInvariantViolation(err), err)
}

func TestTrackerDrainGap(t *testing.T) {
	start := SuspectKey{"c2", "a.txt"}
	tr := NewHunkTracker(start, []LineRange{Range(0, 4)})
	tr.Take(start)
	c2 := Suspect{Revision: Revision{ID: "c2"}, Path: "a.txt"}
	tr.Claim(c2, []UnblamedHunk{{Final: Range(0, 3), Source: Range(0, 3)}}, false)
	_, err := tr.Drain()
	assert.True(t, IsErrInvariantViolation(err), err)
}
