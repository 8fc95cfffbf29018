package incblame

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrBinary is returned by sources when blob content is not text. Blame is not computed for binary files.
var ErrBinary = errors.New("binary content")

// ErrPathNotFound is returned when the path does not exist at the revision.
type ErrPathNotFound struct {
	Revision ObjectID
	Path     string
}

func (s ErrPathNotFound) Error() string {
	return fmt.Sprintf("path not found %v at revision %v", s.Path, s.Revision)
}

func IsErrPathNotFound(err error) bool {
	var e ErrPathNotFound
	return errors.As(err, &e)
}

// ErrObjectMissing is returned when a commit or blob referenced by history can't be loaded.
type ErrObjectMissing struct {
	ID  ObjectID
	Err error
}

func (s ErrObjectMissing) Error() string {
	if s.Err == nil {
		return fmt.Sprintf("object missing %v", s.ID)
	}
	return fmt.Sprintf("object missing %v: %v", s.ID, s.Err)
}

func (s ErrObjectMissing) Unwrap() error {
	return s.Err
}

func IsErrObjectMissing(err error) bool {
	var e ErrObjectMissing
	return errors.As(err, &e)
}

// ErrDiffFailure is returned when the diff oracle can't process a pair of blobs or returns an invalid edit script.
type ErrDiffFailure struct {
	Suspect SuspectKey
	Parent  SuspectKey
	Err     error
}

func (s ErrDiffFailure) Error() string {
	return fmt.Sprintf("diff failed suspect:%v parent:%v: %v", s.Suspect, s.Parent, s.Err)
}

func (s ErrDiffFailure) Unwrap() error {
	return s.Err
}

func IsErrDiffFailure(err error) bool {
	var e ErrDiffFailure
	return errors.As(err, &e)
}

// ErrInvariantViolation means a bug in the engine. Hunks contains the live state when the violation was detected.
type ErrInvariantViolation struct {
	Reason string
	Hunks  []UnblamedHunk
}

func (s ErrInvariantViolation) Error() string {
	if len(s.Hunks) == 0 {
		return "invariant violation: " + s.Reason
	}
	var hunks []string
	for _, h := range s.Hunks {
		hunks = append(hunks, h.String())
	}
	return fmt.Sprintf("invariant violation: %v hunks: %v", s.Reason, strings.Join(hunks, "; "))
}

func IsErrInvariantViolation(err error) bool {
	var e ErrInvariantViolation
	return errors.As(err, &e)
}
