// Package mover implements the move planner and move engine (spec.md
// §4.6, §4.7): turning one MoveRequest into a deterministic,
// ordered MovePlan, and executing that plan against a tree overlay.
package mover

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rivo/uniseg"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/constants"
	"github.com/dariusokafor/wsmove/internal/pathalias"
)

const globMetaCharacters = constants.GlobMetaCharacters

// Planner turns a MoveRequest into a deterministic MovePlan.
type Planner struct {
	overlay  domain.Overlay
	resolver *pathalias.Resolver
}

// NewPlanner creates a Planner over the given overlay and resolver.
func NewPlanner(overlay domain.Overlay, resolver *pathalias.Resolver) *Planner {
	return &Planner{overlay: overlay, resolver: resolver}
}

// Plan expands req's patterns, resolves source/target pairs, and
// returns the ordered, deduplicated batch (spec.md §4.6).
func (p *Planner) Plan(req domain.MoveRequest) (*domain.MovePlan, error) {
	targetProject, ok := p.resolver.Projects[req.Project]
	if !ok {
		return nil, domain.NewMoveError(domain.ProjectNotFound, domain.FileRef(req.Project), "target project does not exist")
	}

	sources, err := p.expandPatterns(req.Patterns)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, domain.NewMoveError(domain.NoMatch, "", "no source files matched the given patterns")
	}

	projectDir := req.ProjectDirectory
	if projectDir == "" && !req.DeriveProjectDirectory {
		projectDir = constants.DefaultProjectDirectory
	}

	entries := make([]domain.MovePlanEntry, 0, len(sources))
	seenTargets := make(map[domain.FileRef]domain.FileRef)

	for _, source := range sources {
		if !p.overlay.Exists(source) {
			return nil, domain.NewMoveError(domain.SourceNotFound, source, "source file does not exist")
		}

		sourceProject := p.resolver.ProjectOf(source)
		if sourceProject == nil {
			return nil, domain.NewMoveError(domain.ProjectNotFound, source, "source file does not belong to any known project")
		}

		target, err := p.computeTarget(source, sourceProject, targetProject, projectDir, req.DeriveProjectDirectory)
		if err != nil {
			return nil, err
		}

		if !req.AllowUnicode && hasUnicodeBasename(target.Base()) {
			return nil, domain.NewMoveError(domain.InvalidPath, target, "target basename contains Unicode characters; pass allowUnicode to permit this")
		}

		isNoOp := target == source

		if !isNoOp {
			if existing, ok := seenTargets[target]; ok {
				return nil, domain.NewCollisionError(existing, source)
			}
			if p.overlay.Exists(target) {
				collision := domain.NewMoveError(domain.TargetCollision, target, "target already exists in the workspace")
				collision.Other = source
				return nil, collision
			}
		}
		seenTargets[target] = source

		entries = append(entries, domain.MovePlanEntry{
			Source:        source,
			Target:        target,
			SourceProject: sourceProject,
			TargetProject: targetProject,
			IsSameProject: sourceProject.Name == targetProject.Name,
			IsBarrelMove:  sourceProject.HasBarrel() && sourceProject.Barrel == source,
			IsNoOp:        isNoOp,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })

	return &domain.MovePlan{Entries: entries}, nil
}

// expandPatterns splits req's comma-separated patterns, expands any
// globs against the workspace's sorted file list, and normalises
// literal paths. The result is sorted and deduplicated.
func (p *Planner) expandPatterns(patterns []string) ([]domain.FileRef, error) {
	var allFiles []domain.FileRef
	var allFilesLoaded bool

	seen := make(map[domain.FileRef]bool)
	var out []domain.FileRef

	for _, raw := range patterns {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			if strings.ContainsAny(part, globMetaCharacters) {
				if !allFilesLoaded {
					allFiles = p.overlay.ListRecursive("")
					allFilesLoaded = true
				}
				for _, f := range allFiles {
					ok, err := doublestar.Match(part, string(f))
					if err != nil {
						return nil, domain.NewMoveError(domain.InvalidPath, domain.FileRef(part), "invalid glob pattern: "+err.Error())
					}
					if ok && !seen[f] {
						seen[f] = true
						out = append(out, f)
					}
				}
				continue
			}

			fileRef, err := pathalias.Normalise(part, false)
			if err != nil {
				return nil, err
			}
			if !seen[fileRef] {
				seen[fileRef] = true
				out = append(out, fileRef)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// computeTarget derives a move's target FileRef from its source,
// source/target projects, and the request's directory options
// (spec.md §4.6 step 3, SPEC_FULL.md §4 directory-derivation supplement).
func (p *Planner) computeTarget(source domain.FileRef, sourceProject, targetProject *domain.Project, projectDir string, derive bool) (domain.FileRef, error) {
	var subdir string
	if derive {
		rel := strings.TrimPrefix(source.Dir(), string(sourceProject.SourceRoot))
		rel = strings.TrimPrefix(rel, "/")
		subdir = rel
	} else {
		subdir = projectDir
	}

	parts := []string{string(targetProject.SourceRoot)}
	if subdir != "" {
		parts = append(parts, subdir)
	}
	parts = append(parts, source.Base())

	return pathalias.Normalise(strings.Join(parts, "/"), false)
}

// hasUnicodeBasename reports whether basename contains any non-ASCII
// grapheme cluster (spec.md §9 "Character-class checks on basenames
// use the Unicode general categories").
func hasUnicodeBasename(basename string) bool {
	gr := uniseg.NewGraphemes(basename)
	for gr.Next() {
		for _, r := range gr.Runes() {
			if r > unicode.MaxASCII {
				return true
			}
		}
	}
	return false
}
