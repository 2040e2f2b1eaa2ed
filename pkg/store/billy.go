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

package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	defaultFileMode = 0o644
	executableBits  = 0o111
)

var errNotDirectory = errors.Base("not a directory")

// tmpSeq makes temporary names unique within the process
var tmpSeq atomic.Uint64

// 🗄️ BillyStore implements FileStore and DirectoryLister on top of a billy.Filesystem
type BillyStore struct {
	fs billy.Filesystem
	mu sync.Locker
}

var (
	_ FileStore       = (*BillyStore)(nil)
	_ DirectoryLister = (*BillyStore)(nil)
)

// 🏭 New wraps a filesystem that is safe for concurrent use
func New(fs billy.Filesystem) *BillyStore {
	return &BillyStore{fs: fs, mu: noopLocker{}}
}

// 🏭 NewOS returns a store over the host filesystem; paths are absolute
func NewOS() *BillyStore {
	return New(osfs.New(string(filepath.Separator)))
}

// 🏭 NewMemory returns an in-memory store. memfs keeps its tree in plain
// maps, so every primitive is serialized.
func NewMemory() *BillyStore {
	return &BillyStore{fs: memfs.New(), mu: &sync.Mutex{}}
}

// 📖 Read implements FileStore.Read
func (s *BillyStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, ioError("read", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	return data, nil
}

// ✍️ Write implements FileStore.Write
func (s *BillyStore) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return ioError("write", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mode := os.FileMode(defaultFileMode)
	if info, err := s.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ioError("write", path, err)
	}

	return ioError("write", path, s.replace(path, mode, bytes.NewReader(data)))
}

// 🔑 Hash implements FileStore.Hash
func (s *BillyStore) Hash(ctx context.Context, path string) (Digest, error) {
	var digest Digest
	if err := ctx.Err(); err != nil {
		return digest, ioError("hash", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.fs.Open(path)
	if err != nil {
		return digest, ioError("hash", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return digest, ioError("hash", path, err)
	}
	copy(digest[:], h.Sum(nil))

	zerolog.Ctx(ctx).Trace().Str("path", path).Str("digest", digest.Short()).Msg("hashed file")
	return digest, nil
}

// 📦 Copy implements FileStore.Copy. The destination is replaced through a
// temporary sibling and a rename, so readers never see a partial file.
func (s *BillyStore) Copy(ctx context.Context, src, dst string) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, ioError("copy", dst, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	srcInfo, err := s.fs.Stat(src)
	if err != nil {
		return FileInfo{}, ioError("copy", src, err)
	}

	in, err := s.fs.Open(src)
	if err != nil {
		return FileInfo{}, ioError("copy", src, err)
	}
	defer in.Close()

	if err := s.replace(dst, srcInfo.Mode().Perm(), in); err != nil {
		return FileInfo{}, ioError("copy", dst, err)
	}

	dstInfo, err := s.fs.Stat(dst)
	if err != nil {
		return FileInfo{}, ioError("copy", dst, err)
	}

	return FileInfo{Path: dst, Size: dstInfo.Size(), Mode: dstInfo.Mode().Perm()}, nil
}

// 🔓 MarkExecutable implements FileStore.MarkExecutable
func (s *BillyStore) MarkExecutable(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return ioError("chmod", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.fs.Stat(path)
	if err != nil {
		return ioError("chmod", path, err)
	}

	mode := info.Mode().Perm()
	if mode&executableBits == executableBits {
		return nil
	}

	// billy has no chmod, so the file is rewritten with the new mode
	data, err := util.ReadFile(s.fs, path)
	if err != nil {
		return ioError("chmod", path, err)
	}

	return ioError("chmod", path, s.replace(path, mode|executableBits, bytes.NewReader(data)))
}

// 📂 ListFiles implements DirectoryLister.ListFiles
func (s *BillyStore) ListFiles(ctx context.Context, dir string, recursive bool) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ioError("list", dir, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.fs.Stat(dir)
	if err != nil {
		return nil, ioError("list", dir, err)
	}
	if !root.IsDir() {
		return nil, ioError("list", dir, errNotDirectory)
	}

	if !recursive {
		entries, err := s.fs.ReadDir(dir)
		if err != nil {
			return nil, ioError("list", dir, err)
		}

		files := make([]FileInfo, 0, len(entries))
		for _, entry := range entries {
			if !entry.Mode().IsRegular() {
				continue
			}
			files = append(files, FileInfo{
				Path: s.fs.Join(dir, entry.Name()),
				Size: entry.Size(),
				Mode: entry.Mode().Perm(),
			})
		}
		return files, nil
	}

	var files []FileInfo
	err = util.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return ioError("list", path, err)
		}
		if err := ctx.Err(); err != nil {
			return ioError("list", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, FileInfo{
			Path: path,
			Size: info.Size(),
			Mode: info.Mode().Perm(),
		})
		return nil
	})
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			return nil, ioErr
		}
		return nil, ioError("list", dir, err)
	}

	return files, nil
}

// replace writes r to a temporary sibling of path created with mode and
// renames it over path. Callers hold s.mu.
func (s *BillyStore) replace(path string, mode os.FileMode, r io.Reader) error {
	tmp := s.fs.Join(filepath.Dir(path), fmt.Sprintf(".%s.%d.%d.copywrite", filepath.Base(path), os.Getpid(), tmpSeq.Add(1)))

	out, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return errors.Errorf("creating temporary file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = s.fs.Remove(tmp)
		return errors.Errorf("writing temporary file: %w", err)
	}

	if err := out.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Errorf("closing temporary file: %w", err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Errorf("renaming temporary file: %w", err)
	}

	return nil
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}
