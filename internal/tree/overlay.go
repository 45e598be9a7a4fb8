// Package tree implements the in-memory workspace overlay the move
// engine mutates (spec.md §4.2), plus the per-run caches layered on
// top of it (spec.md §3 "ScanCache").
package tree

import (
	"sort"
	"strings"
	"sync"

	"github.com/dariusokafor/wsmove/domain"
)

type entryState int

const (
	stateDeleted entryState = iota
	statePresent
)

type entry struct {
	state   entryState
	content []byte
}

// Backing is a read-through filesystem view consulted on a cache miss.
// A nil Backing yields a pure in-memory tree, which is what tests use.
type Backing interface {
	Read(fileRef domain.FileRef) (content []byte, ok bool)
	List() []domain.FileRef
}

// Overlay is a mapping FileRef -> Present(bytes) | Deleted, layered
// over an optional read-through filesystem view. All domain.Overlay
// mutations land here; the caller flushes staged changes separately.
type Overlay struct {
	mu      sync.Mutex
	backing Backing
	staged  map[domain.FileRef]entry

	// existence is populated on first probe and invalidated by write/delete.
	existence map[domain.FileRef]bool

	// projectFiles caches each project's source-file listing, keyed by
	// source root; invalidated wholesale for a root on any write/delete
	// under it.
	projectFiles map[domain.FileRef][]domain.FileRef

	// negativeScan remembers (file, specifier-set-signature) pairs the
	// scanner's cheap pass has already proven contain no reference, so
	// a move that rescans the same candidate set skips the substring
	// pass entirely.
	negativeScan map[string]bool
}

// New creates an overlay with no backing filesystem (pure in-memory).
func New() *Overlay {
	return NewWithBacking(nil)
}

// NewWithBacking creates an overlay that falls through to backing on a
// staged cache miss.
func NewWithBacking(backing Backing) *Overlay {
	return &Overlay{
		backing:      backing,
		staged:       make(map[domain.FileRef]entry),
		existence:    make(map[domain.FileRef]bool),
		projectFiles: make(map[domain.FileRef][]domain.FileRef),
		negativeScan: make(map[string]bool),
	}
}

// Read implements domain.Overlay.
func (o *Overlay) Read(fileRef domain.FileRef) ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.readLocked(fileRef)
}

func (o *Overlay) readLocked(fileRef domain.FileRef) ([]byte, bool) {
	if e, ok := o.staged[fileRef]; ok {
		if e.state == stateDeleted {
			return nil, false
		}
		return e.content, true
	}
	if o.backing != nil {
		return o.backing.Read(fileRef)
	}
	return nil, false
}

// Write implements domain.Overlay.
func (o *Overlay) Write(fileRef domain.FileRef, content []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.staged[fileRef] = entry{state: statePresent, content: content}
	o.invalidateLocked(fileRef)
}

// Delete implements domain.Overlay.
func (o *Overlay) Delete(fileRef domain.FileRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.staged[fileRef] = entry{state: stateDeleted}
	o.invalidateLocked(fileRef)
}

// DeleteDir implements domain.Overlay.
func (o *Overlay) DeleteDir(dir domain.FileRef) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, f := range o.listRecursiveLocked(dir) {
		o.staged[f] = entry{state: stateDeleted}
		o.invalidateLocked(f)
	}
	o.invalidateLocked(dir)
}

// Exists implements domain.Overlay.
func (o *Overlay) Exists(fileRef domain.FileRef) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if cached, ok := o.existence[fileRef]; ok {
		return cached
	}
	_, ok := o.readLocked(fileRef)
	o.existence[fileRef] = ok
	return ok
}

// ListRecursive implements domain.Overlay.
func (o *Overlay) ListRecursive(dir domain.FileRef) []domain.FileRef {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.listRecursiveLocked(dir)
}

func (o *Overlay) listRecursiveLocked(dir domain.FileRef) []domain.FileRef {
	seen := make(map[domain.FileRef]bool)
	var out []domain.FileRef

	if o.backing != nil {
		for _, f := range o.backing.List() {
			if f.HasPrefix(string(dir)) {
				if e, staged := o.staged[f]; staged {
					if e.state == statePresent {
						if !seen[f] {
							seen[f] = true
							out = append(out, f)
						}
					}
					continue
				}
				if !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		}
	}

	for f, e := range o.staged {
		if e.state != statePresent {
			continue
		}
		if !f.HasPrefix(string(dir)) {
			continue
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// invalidateLocked drops cached existence/project-listing/negative-scan
// state that a write or delete under path may have stale. Must be
// called with mu held.
func (o *Overlay) invalidateLocked(path domain.FileRef) {
	delete(o.existence, path)
	for root := range o.projectFiles {
		if path.HasPrefix(string(root)) || domain.FileRef(root).HasPrefix(string(path)) {
			delete(o.projectFiles, root)
		}
	}
	for key := range o.negativeScan {
		if strings.HasPrefix(key, string(path)+"\x00") {
			delete(o.negativeScan, key)
		}
	}
}

// ProjectSourceFiles returns the cached list of source files under a
// project's source root, computing and caching it on first use.
func (o *Overlay) ProjectSourceFiles(sourceRoot domain.FileRef) []domain.FileRef {
	o.mu.Lock()
	defer o.mu.Unlock()

	if cached, ok := o.projectFiles[sourceRoot]; ok {
		return cached
	}

	var out []domain.FileRef
	for _, f := range o.listRecursiveLocked(sourceRoot) {
		if f.IsSourceFile() {
			out = append(out, f)
		}
	}
	o.projectFiles[sourceRoot] = out
	return out
}

// NegativeScanHit reports whether fileRef is already known to contain
// no reference to any specifier in signature (a cache key built by the
// scanner from its candidate set).
func (o *Overlay) NegativeScanHit(fileRef domain.FileRef, signature string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.negativeScan[string(fileRef)+"\x00"+signature]
}

// RecordNegativeScan marks fileRef as proven to contain no reference to
// any specifier in signature.
func (o *Overlay) RecordNegativeScan(fileRef domain.FileRef, signature string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.negativeScan[string(fileRef)+"\x00"+signature] = true
}

var _ domain.Overlay = (*Overlay)(nil)
