package domain

// MovePlanEntry is one resolved move within a batch (spec.md §3).
type MovePlanEntry struct {
	Source FileRef
	Target FileRef

	SourceProject *Project
	TargetProject *Project

	// IsSameProject is true when Source and Target share a project.
	IsSameProject bool

	// IsBarrelMove is true when Source is itself the source project's
	// barrel file (moving a project's entry point is never inferred
	// implicitly; this flag lets the engine refuse or special-case it).
	IsBarrelMove bool

	// IsNoOp is true when Target equals Source after normalisation.
	IsNoOp bool
}

// SourceAlias returns the source project's alias, or "" if it has none.
func (e *MovePlanEntry) SourceAlias() string {
	if e.SourceProject == nil {
		return ""
	}
	return e.SourceProject.Alias
}

// MoveRequest is the engine's input for one invocation (spec.md §6).
type MoveRequest struct {
	// Patterns are literal paths or globs; commas split multiple
	// patterns, leading/trailing whitespace is trimmed.
	Patterns []string

	// Project is the target project name (required).
	Project string

	// ProjectDirectory is a literal subpath under the target project's
	// source root. Defaults to "lib" when empty and DeriveProjectDirectory
	// is false.
	ProjectDirectory string

	// DeriveProjectDirectory mirrors each source's subpath under its
	// own source root into the target's source root.
	DeriveProjectDirectory bool

	// SkipExport suppresses adding a barrel export on the target side
	// of a cross-project move.
	SkipExport bool

	// SkipFormat is accepted and threaded through for interface parity
	// with the real generator; formatting itself is out of scope.
	SkipFormat bool

	// AllowUnicode permits Unicode basenames in move targets.
	AllowUnicode bool

	// RemoveEmptyProject deletes a source project's root directory once
	// its last source file (other than the barrel) has been moved out.
	RemoveEmptyProject bool
}

// MovePlan is the ordered, deterministic batch derived from one
// MoveRequest (spec.md §4.6 step 5).
type MovePlan struct {
	Entries []MovePlanEntry
}

// ExecutedMove records the before/after FileRefs of one completed move,
// returned to the caller on success (spec.md §6).
type ExecutedMove struct {
	Source FileRef
	Target FileRef
}

// MoveResult is the engine's output on success.
type MoveResult struct {
	Executed []ExecutedMove
}
