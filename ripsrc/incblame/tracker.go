package incblame

import (
	"sort"
)

// HunkTracker owns the lines of the blamed file that do not have an origin yet, grouped by the suspect currently holding them.
// Hunks are only ever split or removed, each final line belongs to exactly one live hunk or one claimed entry.
type HunkTracker struct {
	live    map[SuspectKey][]UnblamedHunk
	claimed []BlameEntry
	ranges  []LineRange
}

// NewHunkTracker creates tracker with one hunk per range, all held by start suspect.
// Ranges are expected to be normalized (sorted, disjoint, non-empty).
func NewHunkTracker(start SuspectKey, ranges []LineRange) *HunkTracker {
	s := &HunkTracker{}
	s.live = map[SuspectKey][]UnblamedHunk{}
	s.ranges = ranges
	for _, r := range ranges {
		s.Add(UnblamedHunk{Final: r, Source: r, Suspect: start})
	}
	return s
}

// Add gives hunks to their suspects. Empty hunks are dropped.
func (s *HunkTracker) Add(hunks ...UnblamedHunk) {
	for _, h := range hunks {
		if h.Final.Empty() {
			continue
		}
		s.live[h.Suspect] = append(s.live[h.Suspect], h)
	}
}

// Take removes and returns all hunks held by suspect, sorted by position in suspect blob.
func (s *HunkTracker) Take(k SuspectKey) []UnblamedHunk {
	res := s.live[k]
	delete(s.live, k)
	sortHunks(res)
	return res
}

func (s *HunkTracker) Has(k SuspectKey) bool {
	return len(s.live[k]) != 0
}

// Claim confirms suspect as the origin of hunks.
func (s *HunkTracker) Claim(suspect Suspect, hunks []UnblamedHunk, boundary bool) []BlameEntry {
	var res []BlameEntry
	for _, h := range hunks {
		if h.Final.Empty() {
			continue
		}
		e := BlameEntry{
			Final:    h.Final,
			Source:   h.Source,
			Revision: suspect.Revision.ID,
			Path:     suspect.Path,
			Boundary: boundary,
		}
		res = append(res, e)
	}
	s.claimed = append(s.claimed, res...)
	return res
}

// Empty returns true when every tracked line has an origin.
func (s *HunkTracker) Empty() bool {
	return len(s.live) == 0
}

// LiveLines returns the number of lines still without origin.
func (s *HunkTracker) LiveLines() (res int) {
	for _, hunks := range s.live {
		for _, h := range hunks {
			res += h.Final.Len()
		}
	}
	return
}

// Live returns copy of all live hunks ordered by final line. Used for diagnostics.
func (s *HunkTracker) Live() []UnblamedHunk {
	var res []UnblamedHunk
	for _, hunks := range s.live {
		res = append(res, hunks...)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Final.Start < res[j].Final.Start
	})
	return res
}

// Claimed returns entries claimed so far, in claim order.
func (s *HunkTracker) Claimed() []BlameEntry {
	return s.claimed
}

// Drain converts tracker state into ordered entries. Lines still live are attributed to Unresolved.
// Returns ErrInvariantViolation when entries overlap or do not cover tracked ranges exactly.
func (s *HunkTracker) Drain() ([]BlameEntry, error) {
	entries := make([]BlameEntry, 0, len(s.claimed))
	entries = append(entries, s.claimed...)
	for _, h := range s.Live() {
		entries = append(entries, BlameEntry{
			Final:    h.Final,
			Source:   h.Final,
			Revision: Unresolved,
			Path:     h.Suspect.Path,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Final.Start < entries[j].Final.Start
	})
	if err := checkCoverage(entries, s.ranges); err != nil {
		return nil, err
	}
	return coalesce(entries), nil
}
