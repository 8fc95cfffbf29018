package incblame

import (
	"bytes"
	"context"
)

// ObjectSource provides read-only access to commits and file content.
// Implementations must be safe for concurrent use, the engine prefetches parents in parallel.
type ObjectSource interface {
	// Revision returns commit metadata. Returns ErrObjectMissing if commit is not in the store.
	Revision(ctx context.Context, id ObjectID) (Revision, error)
	// Resolve returns the blob of path at revision. Returns ErrPathNotFound if the path does not exist there.
	Resolve(ctx context.Context, rev ObjectID, path string) (BlobRef, error)
	// Lines returns the content of the blob split into lines. Returns ErrBinary for non-text content.
	Lines(ctx context.Context, blob BlobRef) ([]string, error)
}

// EditKind is type of operation in an edit script.
type EditKind int

const (
	EditEqual EditKind = iota
	EditInsert
	EditDelete
	EditReplace
)

func (k EditKind) String() string {
	switch k {
	case EditEqual:
		return "equal"
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	case EditReplace:
		return "replace"
	}
	return "unknown"
}

// Edit is one operation transforming Old lines into New lines.
type Edit struct {
	Kind EditKind
	Old  LineRange
	New  LineRange
}

func (e Edit) String() string {
	return e.Kind.String() + " old:" + e.Old.String() + " new:" + e.New.String()
}

// DiffOracle computes a line level edit script. Old is the parent content, new is the suspect content.
// Edits must be ordered and cover both sequences without gaps. Implementations must be deterministic.
type DiffOracle interface {
	Diff(old, new []string) ([]Edit, error)
}

// RenameFollower is an optional hook consulted when the tracked path does not exist in any parent.
// Returning ok=false means the file was added in child.
type RenameFollower interface {
	PreviousPath(ctx context.Context, child, parent Revision, path string) (prev string, ok bool, _ error)
}

// SplitLines splits blob content into lines without line terminators. Final newline does not produce an empty line.
func SplitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	parts := bytes.Split(data, []byte("\n"))
	res := make([]string, len(parts))
	for i, p := range parts {
		res[i] = string(bytes.TrimSuffix(p, []byte("\r")))
	}
	return res
}

// IsBinary uses the same heuristic as git, content with a NUL byte in the first 8000 bytes is binary.
func IsBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) != -1
}
