package domain

// ProjectKind distinguishes a publishable library from a deployable
// application, mirroring the Nx workspace graph's project kinds.
type ProjectKind string

const (
	// ProjectKindLibrary is a project other projects may import via its alias.
	ProjectKindLibrary ProjectKind = "library"

	// ProjectKindApplication is a deployable project, typically without
	// an alias of its own.
	ProjectKindApplication ProjectKind = "application"
)

// Project is one workspace project, addressed by a stable name. All
// paths are workspace-relative FileRefs produced by the path resolver.
type Project struct {
	// Name is the project's stable identity.
	Name string

	// Root is the project's root directory.
	Root FileRef

	// SourceRoot is the root of the project's source files.
	SourceRoot FileRef

	// Alias is the workspace-level import alias for this project, if any.
	// Applications commonly have none.
	Alias string

	// Barrel is the project's entry re-export file, if any.
	Barrel FileRef

	// Kind is the project's kind.
	Kind ProjectKind
}

// HasAlias reports whether the project can be imported by alias.
func (p *Project) HasAlias() bool {
	return p != nil && p.Alias != ""
}

// HasBarrel reports whether the project declares a barrel entry point.
func (p *Project) HasBarrel() bool {
	return p != nil && p.Barrel != ""
}

// ProjectTable maps a project name to its definition. It is a static,
// external input for one engine invocation (spec.md §6, consumed).
type ProjectTable map[string]*Project

// ByRoot returns the project whose root is the longest matching prefix
// of fileRef, or nil if none owns it, so a project nested inside
// another's root owns the files under its own root. Ties would need two
// projects with the same root.
func (t ProjectTable) ByRoot(fileRef FileRef) *Project {
	var best *Project
	bestLen := -1
	for _, p := range t {
		root := string(p.Root)
		if fileRef.HasPrefix(root) && len(root) > bestLen {
			best = p
			bestLen = len(root)
		}
	}
	return best
}
