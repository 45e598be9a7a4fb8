package mover

import (
	"testing"

	"github.com/dariusokafor/wsmove/domain"
	"github.com/dariusokafor/wsmove/internal/pathalias"
	"github.com/dariusokafor/wsmove/internal/testutil"
)

func twoProjectWorkspace() domain.ProjectTable {
	return domain.ProjectTable{
		"a": {
			Name: "a", Root: "libs/a", SourceRoot: "libs/a/src",
			Alias: "@w/a", Barrel: "libs/a/src/index.ts", Kind: domain.ProjectKindLibrary,
		},
		"b": {
			Name: "b", Root: "libs/b", SourceRoot: "libs/b/src",
			Alias: "@w/b", Barrel: "libs/b/src/index.ts", Kind: domain.ProjectKindLibrary,
		},
	}
}

func newTestPlanner(t *testing.T, files map[string]string) (*Planner, domain.Overlay) {
	t.Helper()
	o := testutil.NewWorkspace(t, files)
	projects := twoProjectWorkspace()
	aliases := domain.AliasTable{
		"@w/a": {Pattern: "@w/a", Project: "a"},
		"@w/b": {Pattern: "@w/b", Project: "b"},
	}
	resolver := pathalias.New(projects, aliases)
	return NewPlanner(o, resolver), o
}

func TestPlanMovesOneFileIntoDefaultLibDirectory(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/util.ts":  "export const util = 1;",
		"libs/a/src/index.ts":     "export * from './lib/util';\n",
		"libs/b/src/index.ts":     "",
	})
	plan, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/util.ts"},
		Project:  "b",
	})
	testutil.AssertNoError(t, err)
	if len(plan.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(plan.Entries))
	}
	e := plan.Entries[0]
	if e.Target != "libs/b/src/lib/util.ts" {
		t.Errorf("expected target libs/b/src/lib/util.ts, got %s", e.Target)
	}
	if e.IsSameProject {
		t.Error("expected a cross-project move")
	}
	if e.IsNoOp {
		t.Error("expected not a no-op")
	}
}

func TestPlanDerivesProjectDirectory(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/nested/deep/util.ts": "export const util = 1;",
		"libs/b/src/index.ts":            "",
	})
	plan, err := p.Plan(domain.MoveRequest{
		Patterns:               []string{"libs/a/src/nested/deep/util.ts"},
		Project:                "b",
		DeriveProjectDirectory: true,
	})
	testutil.AssertNoError(t, err)
	if plan.Entries[0].Target != "libs/b/src/nested/deep/util.ts" {
		t.Errorf("expected derived directory to be preserved, got %s", plan.Entries[0].Target)
	}
}

func TestPlanExpandsGlobPatterns(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/one.ts":   "export const one = 1;",
		"libs/a/src/lib/two.ts":   "export const two = 2;",
		"libs/a/src/lib/skip.txt": "not a source file",
		"libs/b/src/index.ts":     "",
	})
	plan, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/*.ts"},
		Project:  "b",
	})
	testutil.AssertNoError(t, err)
	if len(plan.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(plan.Entries))
	}
	if plan.Entries[0].Source >= plan.Entries[1].Source {
		t.Error("expected entries sorted deterministically by source path")
	}
}

func TestPlanRejectsUnknownTargetProject(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/util.ts": "export const util = 1;",
	})
	_, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/util.ts"},
		Project:  "nonexistent",
	})
	testutil.AssertError(t, err)
	moveErr, ok := err.(*domain.MoveError)
	if !ok || moveErr.Kind != domain.ProjectNotFound {
		t.Errorf("expected ProjectNotFound, got %v", err)
	}
}

func TestPlanRejectsMissingSource(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/b/src/index.ts": "",
	})
	_, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/missing.ts"},
		Project:  "b",
	})
	testutil.AssertError(t, err)
	moveErr, ok := err.(*domain.MoveError)
	if !ok || moveErr.Kind != domain.SourceNotFound {
		t.Errorf("expected SourceNotFound, got %v", err)
	}
}

func TestPlanRejectsNoMatchingGlob(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/b/src/index.ts": "",
	})
	_, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/*.ts"},
		Project:  "b",
	})
	testutil.AssertError(t, err)
	moveErr, ok := err.(*domain.MoveError)
	if !ok || moveErr.Kind != domain.NoMatch {
		t.Errorf("expected NoMatch, got %v", err)
	}
}

func TestPlanRejectsTargetCollisionWithExistingFile(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/util.ts": "export const util = 1;",
		"libs/b/src/lib/util.ts": "export const existing = 1;",
	})
	_, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/util.ts"},
		Project:  "b",
	})
	testutil.AssertError(t, err)
	moveErr, ok := err.(*domain.MoveError)
	if !ok || moveErr.Kind != domain.TargetCollision {
		t.Errorf("expected TargetCollision, got %v", err)
	}
}

func TestPlanRejectsTwoSourcesCollidingOnOneTarget(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/util.ts":      "export const util = 1;",
		"libs/a/src/other/util.ts":    "export const util2 = 1;",
	})
	_, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/util.ts", "libs/a/src/other/util.ts"},
		Project:  "b",
	})
	testutil.AssertError(t, err)
	moveErr, ok := err.(*domain.MoveError)
	if !ok || moveErr.Kind != domain.TargetCollision {
		t.Errorf("expected TargetCollision, got %v", err)
	}
}

func TestPlanDetectsNoOpWhenTargetEqualsSource(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/util.ts": "export const util = 1;",
	})
	plan, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/util.ts"},
		Project:  "a",
	})
	testutil.AssertNoError(t, err)
	if len(plan.Entries) != 1 || !plan.Entries[0].IsNoOp {
		t.Error("expected a no-op entry when moving a file back to its own location")
	}
}

func TestPlanRejectsUnicodeBasenameByDefault(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/café.ts": "export const x = 1;",
	})
	_, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/lib/café.ts"},
		Project:  "b",
	})
	testutil.AssertError(t, err)
	moveErr, ok := err.(*domain.MoveError)
	if !ok || moveErr.Kind != domain.InvalidPath {
		t.Errorf("expected InvalidPath, got %v", err)
	}
}

func TestPlanAllowsUnicodeBasenameWhenPermitted(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/lib/café.ts": "export const x = 1;",
	})
	plan, err := p.Plan(domain.MoveRequest{
		Patterns:     []string{"libs/a/src/lib/café.ts"},
		Project:      "b",
		AllowUnicode: true,
	})
	testutil.AssertNoError(t, err)
	if len(plan.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(plan.Entries))
	}
}

func TestPlanMarksBarrelMove(t *testing.T) {
	p, _ := newTestPlanner(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/util';\n",
	})
	plan, err := p.Plan(domain.MoveRequest{
		Patterns: []string{"libs/a/src/index.ts"},
		Project:  "b",
	})
	testutil.AssertNoError(t, err)
	if !plan.Entries[0].IsBarrelMove {
		t.Error("expected moving a project's own barrel to be flagged IsBarrelMove")
	}
}
