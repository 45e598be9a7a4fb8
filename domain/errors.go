package domain

import "fmt"

// ErrorKind is the move engine's closed error taxonomy (spec.md §7).
// Kinds other than ParseError abort the current batch.
type ErrorKind string

const (
	// InvalidPath covers traversal, control characters, glob
	// metacharacters in a non-glob context, and Unicode basenames
	// without allowUnicode.
	InvalidPath ErrorKind = "invalid_path"

	// SourceNotFound means an expanded source FileRef does not exist.
	SourceNotFound ErrorKind = "source_not_found"

	// ProjectNotFound means a source or target project name could not
	// be resolved against the project table.
	ProjectNotFound ErrorKind = "project_not_found"

	// TargetCollision means a target FileRef already exists and is not
	// the move's own source, or two plan entries share a target.
	TargetCollision ErrorKind = "target_collision"

	// NoMatch means glob expansion of the source patterns yielded zero
	// files.
	NoMatch ErrorKind = "no_match"

	// ParseError is recoverable per-file: the engine treats the file as
	// containing no reference, does not log it, and never surfaces it to
	// the caller as a batch failure.
	ParseError ErrorKind = "parse_error"

	// Internal marks an invariant violation that should be unreachable.
	Internal ErrorKind = "internal"
)

// MoveError is the engine's single error type. FileRef and Other hold
// the offending path(s) so the caller can render a precise message;
// for TargetCollision both colliding entries are set.
type MoveError struct {
	Kind    ErrorKind
	FileRef FileRef
	Other   FileRef
	Message string
	Cause   error
}

// NewMoveError constructs a MoveError without a secondary FileRef.
func NewMoveError(kind ErrorKind, fileRef FileRef, message string) *MoveError {
	return &MoveError{Kind: kind, FileRef: fileRef, Message: message}
}

// NewCollisionError constructs a TargetCollision error naming both
// colliding entries, per spec.md §7.
func NewCollisionError(first, second FileRef) *MoveError {
	return &MoveError{
		Kind:    TargetCollision,
		FileRef: first,
		Other:   second,
		Message: "target already claimed by another move in this batch",
	}
}

// Error implements the error interface.
func (e *MoveError) Error() string {
	switch {
	case e.Other != "":
		return fmt.Sprintf("%s: %s and %s: %s", e.Kind, e.FileRef, e.Other, e.Message)
	case e.FileRef != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.FileRef, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *MoveError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a MoveError of the same Kind, so
// callers can write errors.Is(err, &domain.MoveError{Kind: domain.NoMatch}).
func (e *MoveError) Is(target error) bool {
	other, ok := target.(*MoveError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}
