package tree

import (
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/dariusokafor/wsmove/domain"
)

// DiskBacking is a Backing that reads through to the real filesystem
// rooted at Root, skipping whatever the workspace's root .gitignore
// excludes (grounded on the teacher's app/file_helper.go loadGitIgnore).
type DiskBacking struct {
	Root string
	gi   *ignore.GitIgnore
}

// NewDiskBacking creates a disk-backed read-through view rooted at root.
func NewDiskBacking(root string) *DiskBacking {
	gi, _ := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	return &DiskBacking{Root: root, gi: gi}
}

// Read implements Backing.
func (d *DiskBacking) Read(fileRef domain.FileRef) ([]byte, bool) {
	b, err := os.ReadFile(filepath.Join(d.Root, filepath.FromSlash(string(fileRef))))
	if err != nil {
		return nil, false
	}
	return b, true
}

// List implements Backing.
func (d *DiskBacking) List() []domain.FileRef {
	var out []domain.FileRef
	_ = filepath.Walk(d.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(d.Root, path)
		if relErr != nil {
			return nil
		}
		relSlash := filepath.ToSlash(rel)
		if d.gi != nil && d.gi.MatchesPath(relSlash) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if info.Name() == "node_modules" || info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		out = append(out, domain.FileRef(relSlash))
		return nil
	})
	return out
}

// Flush writes every staged Present entry to disk and removes every
// staged Deleted entry. This is the caller-side persistence step
// spec.md §3 leaves to the consumer; it lives here, not in the engine.
func (o *Overlay) Flush(root string) error {
	o.mu.Lock()
	staged := make(map[domain.FileRef]entry, len(o.staged))
	for k, v := range o.staged {
		staged[k] = v
	}
	o.mu.Unlock()

	for fileRef, e := range staged {
		full := filepath.Join(root, filepath.FromSlash(string(fileRef)))
		switch e.state {
		case statePresent:
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(full, e.content, 0o644); err != nil {
				return err
			}
		case stateDeleted:
			if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}
