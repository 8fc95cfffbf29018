package incblame

import (
	"fmt"
	"sort"
	"strings"
)

// Statistics describe the work performed by one run.
type Statistics struct {
	// CommitsVisited is the number of suspects popped from the queue.
	CommitsVisited int
	// DiffsComputed is the number of calls to the diff oracle.
	DiffsComputed int
	// BlobsFetched is the number of blobs loaded from the object source, cache hits are not counted.
	BlobsFetched int
	// FastPathHops is the number of suspects passed to parent without diffing, because the blob did not change.
	FastPathHops int
	// Replays is the number of times hunks reached an already processed suspect and were passed using its recorded diffs.
	Replays int
}

// Outcome is the result of blaming one file.
type Outcome struct {
	Revision ObjectID
	Path     string
	// Lines is the number of lines in the blamed file.
	Lines int
	// Entries are ordered by final line and cover all blamed lines exactly once.
	Entries []BlameEntry
	Stats   Statistics
	// Interrupted is set when the run was cancelled, lines that were not attributed point to Unresolved.
	Interrupted bool
}

// Triple is the minimal serializable form of an entry.
type Triple struct {
	Start    int
	End      int
	Revision ObjectID
}

func (s Outcome) Triples() []Triple {
	res := make([]Triple, 0, len(s.Entries))
	for _, e := range s.Entries {
		res = append(res, Triple{Start: e.Final.Start, End: e.Final.End, Revision: e.Revision})
	}
	return res
}

// LineOrigins returns the origin for each line of the file. Lines outside of blamed ranges are empty.
func (s Outcome) LineOrigins() []ObjectID {
	res := make([]ObjectID, s.Lines)
	for _, e := range s.Entries {
		for i := e.Final.Start; i < e.Final.End && i < len(res); i++ {
			res[i] = e.Revision
		}
	}
	return res
}

// String returns compact string representation of outcome. Useful in tests to see output.
func (s Outcome) String() string {
	return entriesString(s.Entries)
}

// normalizeRanges sorts and merges requested ranges. Empty list means the whole file.
func normalizeRanges(ranges []LineRange, lines int) ([]LineRange, error) {
	if len(ranges) == 0 {
		if lines == 0 {
			return nil, nil
		}
		return []LineRange{Range(0, lines)}, nil
	}
	res := make([]LineRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.Valid() || r.End > lines {
			return nil, fmt.Errorf("invalid line range %v for file with %v lines", r, lines)
		}
		if r.Empty() {
			continue
		}
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	var merged []LineRange
	for _, r := range res {
		if n := len(merged); n > 0 && merged[n-1].End >= r.Start {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged, nil
}

// checkCoverage verifies that sorted entries are disjoint and their union equals ranges.
func checkCoverage(entries []BlameEntry, ranges []LineRange) error {
	var union []LineRange
	for i, e := range entries {
		if e.Final.Empty() {
			return ErrInvariantViolation{Reason: fmt.Sprintf("empty entry %v", e)}
		}
		if i > 0 && entries[i-1].Final.End > e.Final.Start {
			return ErrInvariantViolation{Reason: fmt.Sprintf("overlapping entries %v and %v", entries[i-1], e)}
		}
		if n := len(union); n > 0 && union[n-1].End == e.Final.Start {
			union[n-1].End = e.Final.End
			continue
		}
		union = append(union, e.Final)
	}
	if len(union) != len(ranges) {
		return ErrInvariantViolation{Reason: fmt.Sprintf("entries cover %v, expected %v", rangesString(union), rangesString(ranges))}
	}
	for i := range union {
		if union[i] != ranges[i] {
			return ErrInvariantViolation{Reason: fmt.Sprintf("entries cover %v, expected %v", rangesString(union), rangesString(ranges))}
		}
	}
	return nil
}

// coalesce joins neighbouring entries with the same origin and continuous source lines.
func coalesce(entries []BlameEntry) []BlameEntry {
	var res []BlameEntry
	for _, e := range entries {
		if n := len(res); n > 0 {
			last := &res[n-1]
			if last.Revision == e.Revision && last.Path == e.Path && last.Boundary == e.Boundary &&
				last.Final.End == e.Final.Start && last.Source.End == e.Source.Start {
				last.Final.End = e.Final.End
				last.Source.End = e.Source.End
				continue
			}
		}
		res = append(res, e)
	}
	return res
}

func rangesString(ranges []LineRange) string {
	var out []string
	for _, r := range ranges {
		out = append(out, r.String())
	}
	return strings.Join(out, "")
}
