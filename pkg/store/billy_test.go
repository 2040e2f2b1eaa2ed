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
	"crypto/sha256"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func paths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	sort.Strings(out)
	return out
}

// 🧪 TestStoreReadWriteHash checks the primitives against both backends
func TestStoreReadWriteHash(t *testing.T) {
	backends := []struct {
		name  string
		store func(t *testing.T) (*BillyStore, string)
	}{
		{
			name: "memory",
			store: func(t *testing.T) (*BillyStore, string) {
				return NewMemory(), "/work"
			},
		},
		{
			name: "os",
			store: func(t *testing.T) (*BillyStore, string) {
				return NewOS(), t.TempDir()
			},
		},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			ctx := testContext(t)
			s, root := b.store(t)
			path := filepath.Join(root, "nested", "a.txt")

			require.NoError(t, s.Write(ctx, path, []byte("hello")))

			data, err := s.Read(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, "hello", string(data))

			digest, err := s.Hash(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, Digest(sha256.Sum256([]byte("hello"))), digest)
			assert.Len(t, digest.String(), 64)
			assert.Len(t, digest.Short(), 12)

			// overwrite keeps a single file in place
			require.NoError(t, s.Write(ctx, path, []byte("bye")))
			files, err := s.ListFiles(ctx, root, true)
			require.NoError(t, err)
			assert.Equal(t, []string{path}, paths(files), "no temporary files should be left behind")
		})
	}
}

// 🧪 TestStoreCopy checks content and mode propagation
func TestStoreCopy(t *testing.T) {
	ctx := testContext(t)
	root := t.TempDir()
	s := NewOS()

	src := filepath.Join(root, "src", "run.sh")
	dst := filepath.Join(root, "dst", "run.sh")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\necho hi\n"), 0o750))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o600))

	info, err := s.Copy(ctx, src, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, info.Path)
	assert.Equal(t, int64(len("#!/bin/sh\necho hi\n")), info.Size)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho hi\n", string(data))

	stat, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), stat.Mode().Perm(), "mode should follow the source")
}

// 🧪 TestStoreCopyErrors checks that failures surface as IOError
func TestStoreCopyErrors(t *testing.T) {
	ctx := testContext(t)
	s := NewMemory()
	require.NoError(t, s.Write(ctx, "/dst/a.txt", []byte("Z")))

	_, err := s.Copy(ctx, "/src/missing.txt", "/dst/a.txt")
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "copy", ioErr.Op)
	assert.Equal(t, "/src/missing.txt", ioErr.Path)
	assert.True(t, IsNotExist(err))

	data, err := s.Read(ctx, "/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "Z", string(data), "destination should be untouched")
}

// 🧪 TestStoreMarkExecutable checks that execute bits are added without touching content
func TestStoreMarkExecutable(t *testing.T) {
	ctx := testContext(t)
	s := NewMemory()
	require.NoError(t, s.Write(ctx, "/bin/tool.js", []byte("console.log(1)")))

	require.NoError(t, s.MarkExecutable(ctx, "/bin/tool.js"))

	files, err := s.ListFiles(ctx, "/bin", false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, os.FileMode(0o755), files[0].Mode)

	data, err := s.Read(ctx, "/bin/tool.js")
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(data))

	// already executable is a no-op
	require.NoError(t, s.MarkExecutable(ctx, "/bin/tool.js"))
}

// 🧪 TestListFiles covers recursion and error cases
func TestListFiles(t *testing.T) {
	ctx := testContext(t)
	s := NewMemory()
	for _, p := range []string{"/tree/a.txt", "/tree/sub/b.txt", "/tree/sub/deep/c.txt"} {
		require.NoError(t, s.Write(ctx, p, []byte(p)))
	}

	tests := []struct {
		name        string
		dir         string
		recursive   bool
		want        []string
		errContains string
	}{
		{
			name:      "recursive",
			dir:       "/tree",
			recursive: true,
			want:      []string{"/tree/a.txt", "/tree/sub/b.txt", "/tree/sub/deep/c.txt"},
		},
		{
			name: "flat",
			dir:  "/tree",
			want: []string{"/tree/a.txt"},
		},
		{
			name:        "missing_dir",
			dir:         "/nope",
			recursive:   true,
			errContains: "list /nope",
		},
		{
			name:        "not_a_directory",
			dir:         "/tree/a.txt",
			errContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := s.ListFiles(ctx, tt.dir, tt.recursive)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				var ioErr *IOError
				assert.True(t, errors.As(err, &ioErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(files))
		})
	}
}

// 🧪 TestCancelledContext checks that primitives refuse to start after cancellation
func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	s := NewMemory()
	_, err := s.Hash(ctx, "/a")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
