package mover

import (
	"context"
	"strings"
	"sync"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/barrel"
	"github.com/dariusokafor/wsmove/internal/constants"
	"github.com/dariusokafor/wsmove/internal/parser"
	"github.com/dariusokafor/wsmove/internal/pathalias"
	"github.com/dariusokafor/wsmove/internal/rewriter"
	"github.com/dariusokafor/wsmove/internal/scanner"
	"github.com/dariusokafor/wsmove/internal/specref"
	"github.com/dariusokafor/wsmove/internal/tree"
)

// Engine executes a resolved MovePlan against a tree overlay (spec.md
// §4.7): for each entry it updates the moved file's own imports,
// walks the workspace rewriting every specifier that resolved to the
// old location, maintains both barrels, and optionally removes an
// emptied source project.
type Engine struct {
	overlay  *tree.Overlay
	resolver *pathalias.Resolver
	aliases  domain.AliasTable

	scanner  *scanner.Scanner
	rewriter *rewriter.Rewriter
	barrels  *barrel.Manager

	// executor runs the cheap substring pre-filter in parallel across
	// the workspace (spec.md §5); nil means run it serially.
	executor domain.ParallelExecutor
	progress domain.ProgressManager
}

// NewEngine creates an Engine. executor and progress may be nil.
func NewEngine(overlay *tree.Overlay, resolver *pathalias.Resolver, aliases domain.AliasTable, executor domain.ParallelExecutor, progress domain.ProgressManager) *Engine {
	return &Engine{
		overlay:  overlay,
		resolver: resolver,
		aliases:  aliases,
		scanner:  scanner.New(overlay),
		rewriter: rewriter.New(),
		barrels:  barrel.New(overlay),
		executor: executor,
		progress: progress,
	}
}

// Execute runs every non-no-op entry in plan, in order, stopping and
// surfacing the error from the first entry that fails (spec.md §4.7's
// per-entry state machine: planned -> ... -> done, or failed). req is
// the MoveRequest the plan was built from; its SkipExport and
// RemoveEmptyProject flags apply uniformly across the batch.
func (e *Engine) Execute(ctx context.Context, plan *domain.MovePlan, req domain.MoveRequest) (*domain.MoveResult, error) {
	var executed []domain.ExecutedMove

	for _, entry := range plan.Entries {
		if entry.IsNoOp {
			continue
		}
		if err := e.executeOne(ctx, entry, req); err != nil {
			return nil, err
		}
		executed = append(executed, domain.ExecutedMove{Source: entry.Source, Target: entry.Target})
	}

	return &domain.MoveResult{Executed: executed}, nil
}

func (e *Engine) executeOne(ctx context.Context, entry domain.MovePlanEntry, req domain.MoveRequest) error {
	content, ok := e.overlay.Read(entry.Source)
	if !ok {
		return domain.NewMoveError(domain.SourceNotFound, entry.Source, "source vanished during batch execution")
	}

	sourceExportedByBarrel := entry.SourceProject.HasBarrel() &&
		e.barrels.HasExport(entry.SourceProject.Barrel, pathalias.RelativeSpecifier(entry.SourceProject.Barrel, entry.Source))

	movedContent := e.rewriteMovedFile(entry, content)
	e.overlay.Write(entry.Target, movedContent)

	// The source is kept alive in the overlay through the workspace
	// rewrite pass: resolveRelativeFileRef confirms a consumer's
	// specifier by resolving it against the overlay and comparing the
	// result to entry.Source, which only works while that path still
	// resolves. rewriteWorkspace excludes entry.Source from the files
	// it walks, so this never causes the moved file to rewrite itself.
	//
	// Barrels are updated before the workspace rewrite, not after:
	// newSpecifierFor decides between a bare alias import and a deep
	// one by checking whether the target barrel already exports the
	// moved file, so that export has to exist by the time consumers
	// are rewritten.
	if !entry.IsBarrelMove {
		e.updateBarrels(entry, sourceExportedByBarrel)
		e.AddTargetExport(entry, sourceExportedByBarrel, req.SkipExport)
		if err := e.rewriteWorkspace(ctx, entry, sourceExportedByBarrel); err != nil {
			return err
		}
	}

	e.overlay.Delete(entry.Source)
	e.maybeRemoveEmptyProject(entry, req)

	return nil
}

// rewriteMovedFile recomputes S's own relative specifiers against T's
// new location (spec.md §4.4 "Rewrite semantics for the moved file S
// itself"). Parse failures leave the content untouched; that is the
// move's own content becoming unparseable, which is surfaced as a
// swallowed ParseError, never fatal to the batch.
func (e *Engine) rewriteMovedFile(entry domain.MovePlanEntry, content []byte) []byte {
	ast, err := parser.ParseForLanguage(entry.Source.Base(), content)
	if err != nil {
		return content
	}

	specMap := make(map[string]string)
	for _, r := range specref.Collect(ast) {
		if domain.ClassifySpecifier(r.Specifier, e.aliases) != domain.SpecifierRelative {
			continue
		}
		oldTargetFile := e.resolveRelativeFileRef(entry.Source, r.Specifier)
		if oldTargetFile == "" {
			continue
		}

		var newSpec string
		if entry.IsSameProject {
			newSpec = pathalias.RelativeSpecifier(entry.Target, oldTargetFile)
		} else if entry.SourceProject.HasAlias() && entry.SourceProject.HasBarrel() &&
			e.barrels.HasExport(entry.SourceProject.Barrel, pathalias.RelativeSpecifier(entry.SourceProject.Barrel, oldTargetFile)) {
			// The sibling is part of the origin project's public
			// surface: introduce an alias import to the origin (spec.md
			// §4.4, S3).
			newSpec = entry.SourceProject.Alias
		} else {
			// No alias to fall back to, or the sibling isn't re-exported
			// by the origin's barrel: keep a relative path walking back
			// across the move (spec.md S3: "otherwise it contains a
			// relative path walking back into libs/x").
			newSpec = pathalias.RelativeSpecifier(entry.Target, oldTargetFile)
		}

		if newSpec != "" && newSpec != r.Specifier {
			specMap[r.Specifier] = newSpec
		}
	}

	if len(specMap) == 0 {
		return content
	}
	rewritten, _, err := e.rewriter.Rewrite(entry.Target, content, specMap)
	if err != nil {
		return content
	}
	return rewritten
}

// rewriteWorkspace walks every source file other than the moved file
// (and, for a cross-project move, the two barrels, which step 7
// updates explicitly) and rewrites any specifier that resolved to the
// old source (spec.md §4.7 steps 5-6).
func (e *Engine) rewriteWorkspace(ctx context.Context, entry domain.MovePlanEntry, sourceExportedByBarrel bool) error {
	exclude := map[domain.FileRef]bool{entry.Target: true, entry.Source: true}
	if !entry.IsSameProject {
		if entry.SourceProject.HasBarrel() {
			exclude[entry.SourceProject.Barrel] = true
		}
		if entry.TargetProject.HasBarrel() {
			exclude[entry.TargetProject.Barrel] = true
		}
	}

	var files []domain.FileRef
	for _, f := range e.overlay.ListRecursive("") {
		if f.IsSourceFile() && !exclude[f] {
			files = append(files, f)
		}
	}

	candidates := e.candidateStrings(entry, sourceExportedByBarrel)
	toProcess := e.cheapFilter(ctx, files, candidates)

	var task domain.TaskProgress
	if e.progress != nil {
		task = e.progress.StartTask("Rewriting workspace", len(toProcess))
		defer task.Complete()
	}

	for _, f := range toProcess {
		e.processFile(f, entry, sourceExportedByBarrel, candidates)
		if task != nil {
			task.Increment(1)
		}
	}
	return nil
}

// cheapFilter runs the scanner's substring pre-filter across files,
// optionally in parallel (spec.md §5): a necessary, not sufficient,
// condition that the structural pass confirms serially afterward.
func (e *Engine) cheapFilter(ctx context.Context, files []domain.FileRef, candidates []string) []domain.FileRef {
	if len(candidates) == 0 {
		return nil
	}

	signature := scanner.Signature(candidates)
	hits := make(map[domain.FileRef]bool, len(files))
	var mu sync.Mutex

	if e.executor == nil {
		for _, f := range files {
			if e.cheapProbe(f, signature, candidates) {
				hits[f] = true
			}
		}
	} else {
		tasks := make([]domain.ExecutableTask, 0, len(files))
		for _, f := range files {
			f := f
			tasks = append(tasks, cheapScanTask{
				engine:     e,
				fileRef:    f,
				signature:  signature,
				candidates: candidates,
				hits:       hits,
				mu:         &mu,
			})
		}
		_ = e.executor.Execute(ctx, tasks)
	}

	out := make([]domain.FileRef, 0, len(hits))
	for _, f := range files {
		if hits[f] {
			out = append(out, f)
		}
	}
	return out
}

func (e *Engine) cheapProbe(f domain.FileRef, signature string, candidates []string) bool {
	content, ok := e.overlay.Read(f)
	if !ok {
		return false
	}
	if e.overlay.NegativeScanHit(f, signature) {
		return false
	}
	if !scanner.CheapPass(content, candidates) {
		e.overlay.RecordNegativeScan(f, signature)
		return false
	}
	return true
}

// cheapScanTask adapts Engine.cheapProbe to domain.ExecutableTask so
// the cheap pass can run under a domain.ParallelExecutor.
type cheapScanTask struct {
	engine     *Engine
	fileRef    domain.FileRef
	signature  string
	candidates []string
	hits       map[domain.FileRef]bool
	mu         *sync.Mutex
}

func (t cheapScanTask) Name() string { return string(t.fileRef) }

func (t cheapScanTask) Execute(_ context.Context) (any, error) {
	hit := t.engine.cheapProbe(t.fileRef, t.signature, t.candidates)
	if hit {
		t.mu.Lock()
		t.hits[t.fileRef] = true
		t.mu.Unlock()
	}
	return hit, nil
}

func (t cheapScanTask) IsEnabled() bool { return true }

// processFile runs the structural pass and rewriter over one
// workspace file that survived the cheap pre-filter.
func (e *Engine) processFile(f domain.FileRef, entry domain.MovePlanEntry, sourceExportedByBarrel bool, candidates []string) {
	content, ok := e.overlay.Read(f)
	if !ok {
		return
	}
	signature := scanner.Signature(candidates)

	ast, err := parser.ParseForLanguage(f.Base(), content)
	if err != nil {
		e.overlay.RecordNegativeScan(f, signature)
		return
	}

	fProject := e.resolver.ProjectOf(f)
	specMap := make(map[string]string)
	for _, r := range specref.Collect(ast) {
		if !e.specifierResolvesToSource(f, r.Specifier, entry, sourceExportedByBarrel) {
			continue
		}
		newSpec := e.newSpecifierFor(f, fProject, entry)
		if newSpec != "" && newSpec != r.Specifier {
			specMap[r.Specifier] = newSpec
		}
	}

	if len(specMap) == 0 {
		return
	}

	rewritten, changed, err := e.rewriter.Rewrite(f, content, specMap)
	if err != nil || !changed {
		return
	}
	e.overlay.Write(f, rewritten)
}

// candidateStrings is a sound, necessary-condition candidate set for
// the cheap pass: every relative specifier that could resolve to
// source contains its stripped leaf basename verbatim, and every alias
// specifier that could resolve to source contains the source
// project's alias verbatim (spec.md §4.7 step 5).
func (e *Engine) candidateStrings(entry domain.MovePlanEntry, sourceExportedByBarrel bool) []string {
	leaf := domain.StripResolvableExtension(entry.Source.Base())
	candidates := []string{leaf}
	if sourceExportedByBarrel && entry.SourceAlias() != "" {
		candidates = append(candidates, entry.SourceAlias())
	}
	return candidates
}

// specifierResolvesToSource reports whether specifier, written inside
// f, currently resolves to entry.Source.
func (e *Engine) specifierResolvesToSource(f domain.FileRef, specifier string, entry domain.MovePlanEntry, sourceExportedByBarrel bool) bool {
	switch domain.ClassifySpecifier(specifier, e.aliases) {
	case domain.SpecifierRelative:
		resolved := e.resolveRelativeFileRef(f, specifier)
		return resolved != "" && resolved == entry.Source
	case domain.SpecifierAlias:
		aliasEntry, rest, ok := e.aliases.Match(specifier)
		if !ok || aliasEntry.Project != entry.SourceProject.Name {
			return false
		}
		if rest == "" {
			return sourceExportedByBarrel && aliasEntry.Pattern == entry.SourceAlias()
		}
		// A deep alias import (e.g. "@w/a/lib/util") bypasses the
		// barrel entirely and resolves the subpath directly under the
		// source project's source root; the engine itself emits this
		// form for a skip-export cross-project move (spec.md §4.7 step
		// 5's "sourceAlias + optional subpath").
		resolved := e.resolveAliasSubpath(entry.SourceProject, rest)
		return resolved != "" && resolved == entry.Source
	default:
		return false
	}
}

// newSpecifierFor computes the specifier f should use, post-move, to
// keep referring to entry.Target (spec.md §4.4).
func (e *Engine) newSpecifierFor(f domain.FileRef, fProject *domain.Project, entry domain.MovePlanEntry) string {
	if fProject != nil && fProject.Name == entry.TargetProject.Name {
		return pathalias.RelativeSpecifier(f, entry.Target)
	}
	if entry.TargetProject.HasAlias() {
		exported := entry.TargetProject.HasBarrel() && e.barrels.HasExport(entry.TargetProject.Barrel, pathalias.RelativeSpecifier(entry.TargetProject.Barrel, entry.Target))
		return e.aliasSpecifierFor(entry.Target, entry.TargetProject, exported)
	}
	return pathalias.RelativeSpecifier(f, entry.Target)
}

// aliasSpecifierFor builds the specifier consumers outside a project
// use to reach a file inside it: the bare alias when the project's
// barrel already re-exports the file, or a deep import (alias + path
// segment inside the source root) otherwise (spec.md §4.4).
func (e *Engine) aliasSpecifierFor(target domain.FileRef, project *domain.Project, exported bool) string {
	if !project.HasAlias() {
		return ""
	}
	if exported {
		return project.Alias
	}
	rel := strings.TrimPrefix(string(target), string(project.SourceRoot))
	rel = strings.TrimPrefix(rel, "/")
	rel = domain.StripResolvableExtension(rel)
	if rel == "" {
		return project.Alias
	}
	return project.Alias + "/" + rel
}

// resolveRelativeFileRef resolves a relative specifier written inside
// fromFile to the FileRef it currently points at, trying each
// resolvable extension when the specifier omits one. Returns "" if no
// such file exists in the overlay.
func (e *Engine) resolveRelativeFileRef(fromFile domain.FileRef, specifier string) domain.FileRef {
	base := pathalias.ResolveRelative(fromFile, specifier)
	if e.overlay.Exists(base) {
		return base
	}
	for _, ext := range constants.SourceExtensions {
		cand := domain.FileRef(string(base) + ext)
		if e.overlay.Exists(cand) {
			return cand
		}
	}
	return ""
}

// resolveAliasSubpath resolves a deep alias import's subpath (the part
// of the specifier after the alias pattern) against project's source
// root, trying each resolvable extension when the subpath omits one.
// Returns "" if no such file exists in the overlay.
func (e *Engine) resolveAliasSubpath(project *domain.Project, rest string) domain.FileRef {
	base := domain.FileRef(string(project.SourceRoot) + "/" + rest)
	if e.overlay.Exists(base) {
		return base
	}
	for _, ext := range constants.SourceExtensions {
		cand := domain.FileRef(string(base) + ext)
		if e.overlay.Exists(cand) {
			return cand
		}
	}
	return ""
}

// updateBarrels applies the source side of the barrel policy matrix
// (spec.md §4.5): a same-project move's existing export is left for
// rewriteWorkspace, which runs afterwards, to rewrite in place (the
// barrel is just another project file); a cross-project move removes
// the source-side export. The target-side export is added separately
// by AddTargetExport.
func (e *Engine) updateBarrels(entry domain.MovePlanEntry, sourceExportedByBarrel bool) {
	if !sourceExportedByBarrel || entry.IsSameProject {
		return
	}
	oldRel := pathalias.RelativeSpecifier(entry.SourceProject.Barrel, entry.Source)
	e.barrels.RemoveExport(entry.SourceProject.Barrel, oldRel)
}

// AddTargetExport adds the target-side barrel entry for a cross-project
// move, unless skipExport is set. Kept as a separate call from
// updateBarrels so skipExport's effect is visible on its own at the
// call site, mirroring the policy matrix's two independent columns.
func (e *Engine) AddTargetExport(entry domain.MovePlanEntry, sourceExportedByBarrel bool, skipExport bool) {
	if !sourceExportedByBarrel || entry.IsSameProject || skipExport || !entry.TargetProject.HasBarrel() {
		return
	}
	newRel := pathalias.RelativeSpecifier(entry.TargetProject.Barrel, entry.Target)
	e.barrels.AddExport(entry.TargetProject.Barrel, newRel)
}

// maybeRemoveEmptyProject deletes a source project's root directory
// once its last source file, other than its own barrel, has moved out
// (spec.md §4.7 step 8).
func (e *Engine) maybeRemoveEmptyProject(entry domain.MovePlanEntry, req domain.MoveRequest) {
	if !req.RemoveEmptyProject || entry.IsSameProject {
		return
	}
	remaining := 0
	for _, f := range e.overlay.ProjectSourceFiles(entry.SourceProject.SourceRoot) {
		if entry.SourceProject.HasBarrel() && f == entry.SourceProject.Barrel {
			continue
		}
		remaining++
	}
	if remaining == 0 {
		e.overlay.DeleteDir(entry.SourceProject.Root)
	}
}
