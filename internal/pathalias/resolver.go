// Package pathalias normalises workspace paths and maps them to the
// project and alias they belong to (spec.md §4.1).
package pathalias

import (
	"strings"
	"unicode"

	"github.com/dariusokafor/wsmove/domain"
)

// Resolver answers path/alias questions against a static project and
// alias table for one engine invocation.
type Resolver struct {
	Projects domain.ProjectTable
	Aliases  domain.AliasTable
}

// New creates a Resolver over the given tables.
func New(projects domain.ProjectTable, aliases domain.AliasTable) *Resolver {
	return &Resolver{Projects: projects, Aliases: aliases}
}

// Normalise converts path to POSIX slashes, collapses "." / ".."
// segments, and rejects traversal, control characters, and glob
// metacharacters. allowGlob permits the glob metacharacters for
// callers that pass glob patterns in (the move planner matches its
// glob patterns without calling Normalise).
func Normalise(path string, allowGlob bool) (domain.FileRef, error) {
	raw := path
	p := strings.ReplaceAll(path, "\\", "/")
	p = strings.TrimSpace(p)

	for _, r := range p {
		if unicode.IsControl(r) {
			return "", domain.NewMoveError(domain.InvalidPath, domain.FileRef(raw), "path contains control characters")
		}
	}

	if !allowGlob {
		if strings.ContainsAny(p, "[]*?()") {
			return "", domain.NewMoveError(domain.InvalidPath, domain.FileRef(raw), "path contains glob metacharacters in a non-glob context")
		}
	}

	if strings.Contains(p, ",") {
		return "", domain.NewMoveError(domain.InvalidPath, domain.FileRef(raw), "commas are not permitted in paths")
	}

	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return "", domain.NewMoveError(domain.InvalidPath, domain.FileRef(raw), "path escapes the workspace root")
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	return domain.FileRef(strings.Join(out, "/")), nil
}

// ProjectOf returns the project owning fileRef via longest-prefix
// match on project roots, or nil if none owns it.
func (r *Resolver) ProjectOf(fileRef domain.FileRef) *domain.Project {
	return r.Projects.ByRoot(fileRef)
}

// AliasFor returns the alias registered for a project, or "" if none.
func (r *Resolver) AliasFor(project *domain.Project) string {
	if project == nil {
		return ""
	}
	return project.Alias
}

// BarrelOf returns the project's barrel FileRef, or "" if it has none.
func (r *Resolver) BarrelOf(project *domain.Project) domain.FileRef {
	if project == nil {
		return ""
	}
	return project.Barrel
}

// RelativeSpecifier returns the specifier fromFile should use to refer
// to toFile: a POSIX path starting with "./" or "../", with a
// .ts/.tsx/.js/.jsx suffix on the leaf stripped, but .mjs/.cjs kept.
func RelativeSpecifier(fromFile, toFile domain.FileRef) string {
	fromDir := strings.Split(fromFile.Dir(), "/")
	if fromFile.Dir() == "" {
		fromDir = nil
	}
	toDir := strings.Split(toFile.Dir(), "/")
	if toFile.Dir() == "" {
		toDir = nil
	}

	common := 0
	for common < len(fromDir) && common < len(toDir) && fromDir[common] == toDir[common] {
		common++
	}

	var parts []string
	for i := common; i < len(fromDir); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, toDir[common:]...)

	leaf := toFile.Base()
	if !strings.HasSuffix(leaf, ".mjs") && !strings.HasSuffix(leaf, ".cjs") {
		leaf = stripLeafExtension(leaf)
	}
	parts = append(parts, leaf)

	rel := strings.Join(parts, "/")
	if !strings.HasPrefix(rel, "../") && !strings.HasPrefix(rel, "./") {
		rel = "./" + rel
	}
	return rel
}

func stripLeafExtension(leaf string) string {
	for _, ext := range []string{".tsx", ".jsx", ".ts", ".js"} {
		if strings.HasSuffix(leaf, ext) {
			return strings.TrimSuffix(leaf, ext)
		}
	}
	return leaf
}

// ResolveRelative resolves a relative specifier written inside
// fromFile against fromFile's directory, returning the FileRef it
// points at. The caller is responsible for trying known source
// extensions against the result if it has none (the specifier rarely
// carries one).
func ResolveRelative(fromFile domain.FileRef, specifier string) domain.FileRef {
	dir := fromFile.Dir()
	segments := strings.Split(dir, "/")
	if dir == "" {
		segments = nil
	}

	for _, seg := range strings.Split(specifier, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, seg)
		}
	}
	return domain.FileRef(strings.Join(segments, "/"))
}
