// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index builds the name → file mapping for one directory tree.
package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/copywrite/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// 🧭 CollisionPolicy decides what happens when two files in one tree share a base name
type CollisionPolicy string

const (
	// CollisionLastWins keeps the file whose full path sorts last
	CollisionLastWins CollisionPolicy = "last-wins"
	// CollisionReject rejects the tree
	CollisionReject CollisionPolicy = "error"
)

// Valid reports whether p is a known policy
func (p CollisionPolicy) Valid() bool {
	return p == CollisionLastWins || p == CollisionReject
}

// 📄 FileEntry identifies one discovered file
type FileEntry struct {
	path string
	name string
	size int64
	mode os.FileMode

	digestMu  sync.Mutex
	hashed    bool
	digest    store.Digest
	digestErr error
}

// NewFileEntry creates an entry for the file described by info
func NewFileEntry(info store.FileInfo) *FileEntry {
	return &FileEntry{
		path: info.Path,
		name: info.Name(),
		size: info.Size,
		mode: info.Mode,
	}
}

// Path returns the absolute path of the file
func (e *FileEntry) Path() string { return e.path }

// Name returns the base name, the matching key
func (e *FileEntry) Name() string { return e.name }

// Size returns the size reported when the file was listed
func (e *FileEntry) Size() int64 { return e.size }

// Mode returns the permission bits reported when the file was listed
func (e *FileEntry) Mode() os.FileMode { return e.mode }

func (e *FileEntry) String() string { return e.path }

// 🔑 Digest computes the content digest on first use and caches the outcome,
// read errors included. A failure caused by ctx is returned without being
// cached so a later call with a live context hashes again. Safe for
// concurrent callers.
func (e *FileEntry) Digest(ctx context.Context, fs store.FileStore) (store.Digest, error) {
	e.digestMu.Lock()
	defer e.digestMu.Unlock()

	if e.hashed {
		return e.digest, e.digestErr
	}

	digest, err := fs.Hash(ctx, e.path)
	if err != nil && (ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return store.Digest{}, err
	}

	e.digest, e.digestErr, e.hashed = digest, err, true
	return e.digest, e.digestErr
}

// ⚠️ Collision records two files in one tree that share a base name
type Collision struct {
	Name    string
	Kept    string
	Dropped string
}

// CollisionError is returned by Build under CollisionReject
type CollisionError struct {
	Dir       string
	Collision Collision
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("duplicate file name %q in %s: %s and %s", e.Collision.Name, e.Dir, e.Collision.Dropped, e.Collision.Kept)
}

// 🗂️ Index maps file names to entries. Read-only after Build.
type Index struct {
	dir        string
	entries    map[string]*FileEntry
	order      []string
	collisions []Collision
}

// Dir returns the indexed directory
func (i *Index) Dir() string { return i.dir }

// Len returns the number of distinct names
func (i *Index) Len() int { return len(i.order) }

// Get returns the entry for name
func (i *Index) Get(name string) (*FileEntry, bool) {
	e, ok := i.entries[name]
	return e, ok
}

// Names returns the keys in discovery order
func (i *Index) Names() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Collisions returns the duplicate names that were resolved by last-wins
func (i *Index) Collisions() []Collision {
	out := make([]Collision, len(i.collisions))
	copy(out, i.collisions)
	return out
}

// 🔧 Options controls Build
type Options struct {
	Recursive bool
	Collision CollisionPolicy
	// Ignore holds doublestar patterns matched against slash-separated paths relative to the root
	Ignore []string
}

// 🏗️ Build lists dir and indexes its files by base name. Listed paths are
// sorted first so discovery order, and with it the winner of a name
// collision, does not depend on the lister.
func Build(ctx context.Context, lister store.DirectoryLister, dir string, opts Options) (*Index, error) {
	logger := zerolog.Ctx(ctx)

	policy := opts.Collision
	if policy == "" {
		policy = CollisionLastWins
	}
	if !policy.Valid() {
		return nil, errors.Errorf("unknown collision policy %q", policy)
	}

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	files, err := lister.ListFiles(ctx, dir, opts.Recursive)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}

	sort.Slice(files, func(a, b int) bool { return files[a].Path < files[b].Path })

	idx := &Index{
		dir:     dir,
		entries: make(map[string]*FileEntry, len(files)),
		order:   make([]string, 0, len(files)),
	}

	for _, f := range files {
		if ignored(dir, f.Path, opts.Ignore) {
			logger.Debug().Str("path", f.Path).Msg("file ignored by pattern")
			continue
		}

		entry := NewFileEntry(f)
		prev, exists := idx.entries[entry.name]
		if !exists {
			idx.entries[entry.name] = entry
			idx.order = append(idx.order, entry.name)
			continue
		}

		collision := Collision{Name: entry.name, Kept: entry.path, Dropped: prev.path}
		if policy == CollisionReject {
			return nil, &CollisionError{Dir: dir, Collision: collision}
		}

		logger.Warn().
			Str("name", collision.Name).
			Str("kept", collision.Kept).
			Str("dropped", collision.Dropped).
			Msg("duplicate file name, keeping the last path")

		// the key keeps its first-seen position
		idx.entries[entry.name] = entry
		idx.collisions = append(idx.collisions, collision)
	}

	logger.Debug().Str("dir", dir).Int("files", idx.Len()).Msg("indexed directory")
	return idx, nil
}

func ignored(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
