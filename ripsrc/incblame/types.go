package incblame

import (
	"strconv"
	"strings"
	"time"
)

// ObjectID is a hex encoded content hash of a commit or a blob.
type ObjectID string

// Unresolved is used as the origin of lines that were still unattributed when the run was interrupted.
const Unresolved ObjectID = "unresolved"

// Short returns first 7 chars of the id.
func (id ObjectID) Short() string {
	if len(id) <= 7 {
		return string(id)
	}
	return string(id[:7])
}

// Revision is a commit as seen by the engine.
type Revision struct {
	ID      ObjectID
	Parents []ObjectID
	// OrderKey is a generation number or a timestamp. Descendants are expected to have larger keys than their ancestors.
	OrderKey   int64
	AuthorTime time.Time
	CommitTime time.Time
}

func (r Revision) IsMerge() bool {
	return len(r.Parents) > 1
}

func (r Revision) IsRoot() bool {
	return len(r.Parents) == 0
}

// BlobRef identifies the content of a path at some revision.
type BlobRef struct {
	ID   ObjectID
	Size int64
}

// Identical returns true if both refs point to the same content.
func (b BlobRef) Identical(b2 BlobRef) bool {
	return b.ID != "" && b.ID == b2.ID
}

// LineRange is a half-open interval [Start, End) of line indexes.
type LineRange struct {
	Start int
	End   int
}

func Range(start, end int) LineRange {
	return LineRange{Start: start, End: end}
}

func (r LineRange) Len() int {
	return r.End - r.Start
}

func (r LineRange) Empty() bool {
	return r.End <= r.Start
}

func (r LineRange) Valid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Intersect returns the overlap of both ranges. Result is empty if they do not overlap.
func (r LineRange) Intersect(r2 LineRange) LineRange {
	res := LineRange{Start: max(r.Start, r2.Start), End: min(r.End, r2.End)}
	if res.End < res.Start {
		res.End = res.Start
	}
	return res
}

func (r LineRange) Shift(n int) LineRange {
	return LineRange{Start: r.Start + n, End: r.End + n}
}

// Sub returns the part of r that is n lines long and starts offset lines after r.Start.
func (r LineRange) Sub(offset, n int) LineRange {
	return LineRange{Start: r.Start + offset, End: r.Start + offset + n}
}

func (r LineRange) String() string {
	return "[" + strconv.Itoa(r.Start) + "," + strconv.Itoa(r.End) + ")"
}

// SuspectKey deduplicates suspects. A commit reachable through multiple paths in the graph is processed once per tracked path.
type SuspectKey struct {
	Revision ObjectID
	Path     string
}

func (k SuspectKey) String() string {
	return string(k.Revision) + ":" + k.Path
}

// Suspect is a revision that is believed to still contain unexplained lines of the blamed file.
type Suspect struct {
	Revision Revision
	Path     string
	Blob     BlobRef
}

func (s Suspect) Key() SuspectKey {
	return SuspectKey{Revision: s.Revision.ID, Path: s.Path}
}

// UnblamedHunk is a range of the final file without a confirmed origin yet.
// Final is in the blamed file line numbers, Source is the same lines in the blob of the current suspect.
type UnblamedHunk struct {
	Final   LineRange
	Source  LineRange
	Suspect SuspectKey
}

func (h UnblamedHunk) String() string {
	return h.Suspect.String() + " final:" + h.Final.String() + " source:" + h.Source.String()
}

// BlameEntry binds a range of the final file to the revision that introduced it.
type BlameEntry struct {
	Final    LineRange
	Source   LineRange
	Revision ObjectID
	Path     string
	// Boundary is set when the origin was assigned because history was cut by the Since option.
	Boundary bool
}

// String returns compact string representation of entry. Useful in tests to see output.
func (e BlameEntry) String() string {
	out := e.Final.String() + "->" + string(e.Revision)
	if e.Boundary {
		out = "^" + out
	}
	return out
}

func entriesString(entries []BlameEntry) string {
	var out []string
	for _, e := range entries {
		out = append(out, e.String())
	}
	return strings.Join(out, " ")
}
