package barrel

import (
	"testing"

	"github.com/dariusokafor/wsmove/internal/testutil"
)

func TestAddExportAppendsStarExport(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/existing';\n",
	})
	m := New(o)
	m.AddExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts",
		"export * from './lib/existing';\nexport * from './lib/util';\n")
}

func TestAddExportIsIdempotent(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/util';\n",
	})
	m := New(o)
	m.AddExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts", "export * from './lib/util';\n")
}

func TestAddExportToEmptyBarrel(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "",
	})
	m := New(o)
	m.AddExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts", "export * from './lib/util';\n")
}

func TestAddExportAddsMissingTrailingNewline(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/existing';",
	})
	m := New(o)
	m.AddExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts",
		"export * from './lib/existing';\nexport * from './lib/util';\n")
}

func TestHasExportMatchesStarForm(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/util';\n",
	})
	m := New(o)
	if !m.HasExport("libs/a/src/index.ts", "./lib/util") {
		t.Error("expected HasExport to find the star export")
	}
	if m.HasExport("libs/a/src/index.ts", "./lib/other") {
		t.Error("expected HasExport to report false for an absent specifier")
	}
}

func TestHasExportMatchesNamedForm(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export { util, helper } from './lib/util';\n",
	})
	m := New(o)
	if !m.HasExport("libs/a/src/index.ts", "./lib/util") {
		t.Error("expected HasExport to find the named re-export")
	}
}

func TestRemoveExportDeletesStarLine(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/a';\nexport * from './lib/util';\nexport * from './lib/b';\n",
	})
	m := New(o)
	m.RemoveExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts",
		"export * from './lib/a';\nexport * from './lib/b';\n")
}

func TestRemoveExportDeletesNamedLine(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export { util } from './lib/util';\n",
	})
	m := New(o)
	m.RemoveExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts", "")
}

func TestRemoveExportNeverDeletesBarrelFile(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/util';\n",
	})
	m := New(o)
	m.RemoveExport("libs/a/src/index.ts", "./lib/util")
	if !o.Exists("libs/a/src/index.ts") {
		t.Fatal("expected the barrel file to still exist after removing its only export")
	}
	testutil.RequireContent(t, o, "libs/a/src/index.ts", "")
}

func TestRemoveExportNoOpWhenNotPresent(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{
		"libs/a/src/index.ts": "export * from './lib/other';\n",
	})
	m := New(o)
	m.RemoveExport("libs/a/src/index.ts", "./lib/util")
	testutil.RequireContent(t, o, "libs/a/src/index.ts", "export * from './lib/other';\n")
}

func TestRemoveExportOnMissingBarrelIsNoOp(t *testing.T) {
	o := testutil.NewWorkspace(t, map[string]string{})
	m := New(o)
	m.RemoveExport("libs/a/src/index.ts", "./lib/util")
	if o.Exists("libs/a/src/index.ts") {
		t.Error("expected no barrel file to be created")
	}
}
