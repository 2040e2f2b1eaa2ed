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
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
)

// 🔑 Digest is a SHA-256 over the full content of a file
type Digest [32]byte

// String returns the lowercase hex form of the digest
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, enough for log lines
func (d Digest) Short() string {
	return d.String()[:12]
}

// 📄 FileInfo describes one regular file as seen by a DirectoryLister or FileStore
type FileInfo struct {
	Path string      // Absolute path
	Size int64       // Size in bytes
	Mode os.FileMode // Permission bits
}

// Name returns the base file name
func (f FileInfo) Name() string {
	return filepath.Base(f.Path)
}

// 💾 FileStore is the low-level file primitive used by the sync pipeline.
// Every failure is reported as an *IOError.
type FileStore interface {
	// Read returns the full content of path
	Read(ctx context.Context, path string) ([]byte, error)
	// Write replaces the content of path, creating it with mode 0644 when missing
	Write(ctx context.Context, path string, data []byte) error
	// Hash returns the content digest of path
	Hash(ctx context.Context, path string) (Digest, error)
	// Copy overwrites dst with the content of src, carrying over the permission bits of src
	Copy(ctx context.Context, src, dst string) (FileInfo, error)
	// MarkExecutable ORs the execute bits for owner, group and other into the mode of path
	MarkExecutable(ctx context.Context, path string) error
}

// 📂 DirectoryLister enumerates the regular files under a directory
type DirectoryLister interface {
	// ListFiles returns every regular file in dir, descending into
	// subdirectories when recursive is set
	ListFiles(ctx context.Context, dir string, recursive bool) ([]FileInfo, error)
}
