package tree

import (
	"testing"

	"github.com/dariusokafor/wsmove/domain"
)

func TestWriteThenReadReflectsStagedContent(t *testing.T) {
	o := New()
	o.Write("libs/a/src/lib/util.ts", []byte("export const x = 1;"))

	content, ok := o.Read("libs/a/src/lib/util.ts")
	if !ok {
		t.Fatal("expected file to exist")
	}
	if string(content) != "export const x = 1;" {
		t.Errorf("got %q", content)
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	o := New()
	o.Write("libs/a/src/lib/util.ts", []byte("x"))
	o.Delete("libs/a/src/lib/util.ts")

	if o.Exists("libs/a/src/lib/util.ts") {
		t.Fatal("expected file to be gone after delete")
	}
}

func TestExistenceCacheInvalidatedOnWrite(t *testing.T) {
	o := New()
	if o.Exists("libs/a/src/lib/util.ts") {
		t.Fatal("expected false before write")
	}
	o.Write("libs/a/src/lib/util.ts", []byte("x"))
	if !o.Exists("libs/a/src/lib/util.ts") {
		t.Fatal("expected true after write invalidates the cache")
	}
}

func TestListRecursiveSortedOrder(t *testing.T) {
	o := New()
	o.Write("libs/a/src/lib/b.ts", []byte("b"))
	o.Write("libs/a/src/lib/a.ts", []byte("a"))
	o.Write("libs/a/src/index.ts", []byte("idx"))

	got := o.ListRecursive("libs/a")
	want := []domain.FileRef{"libs/a/src/index.ts", "libs/a/src/lib/a.ts", "libs/a/src/lib/b.ts"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProjectSourceFilesCacheInvalidatedOnWrite(t *testing.T) {
	o := New()
	o.Write("libs/a/src/lib/a.ts", []byte("a"))

	first := o.ProjectSourceFiles("libs/a/src")
	if len(first) != 1 {
		t.Fatalf("got %v", first)
	}

	o.Write("libs/a/src/lib/b.ts", []byte("b"))
	second := o.ProjectSourceFiles("libs/a/src")
	if len(second) != 2 {
		t.Fatalf("expected cache invalidation to pick up new file, got %v", second)
	}
}

func TestNegativeScanCacheInvalidatedOnWrite(t *testing.T) {
	o := New()
	o.Write("libs/a/src/lib/consumer.ts", []byte("no import here"))
	o.RecordNegativeScan("libs/a/src/lib/consumer.ts", "sig")

	if !o.NegativeScanHit("libs/a/src/lib/consumer.ts", "sig") {
		t.Fatal("expected negative scan hit before rewrite")
	}

	o.Write("libs/a/src/lib/consumer.ts", []byte("import x from './x'"))
	if o.NegativeScanHit("libs/a/src/lib/consumer.ts", "sig") {
		t.Fatal("expected negative scan cache to be invalidated on write")
	}
}

func TestDeleteDirRemovesEverythingUnderIt(t *testing.T) {
	o := New()
	o.Write("libs/a/src/lib/a.ts", []byte("a"))
	o.Write("libs/a/src/index.ts", []byte("idx"))

	o.DeleteDir("libs/a")

	if o.Exists("libs/a/src/lib/a.ts") || o.Exists("libs/a/src/index.ts") {
		t.Fatal("expected all files under the deleted directory to be gone")
	}
}
