package filestore

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "uploads"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	s, err := New(root, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(s.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, filepath.IsAbs(s.Root()))
}

func TestNew_RootIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := New(filepath.Join(file, "sub"), zap.NewNop())
	require.Error(t, err)
}

func TestStore_LoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	content := []byte("0123456789")

	name, err := s.Store(bytes.NewReader(content), "report.pdf", 1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotContains(t, name, string(filepath.Separator))

	f, err := s.Load(name, 1)
	require.NoError(t, err)
	defer f.Close()

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	p, err := s.PathFor(1, name)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root(), "user_1", name), p)
}

func TestStore_UniqueNames(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Store(strings.NewReader("a"), "same.txt", 1)
	require.NoError(t, err)
	b, err := s.Store(strings.NewReader("b"), "same.txt", 1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestStore_RejectsTraversalBeforeTouchingDisk(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"../evil.txt", "..", "a/../../b", `..\win.txt`, "dir/file.txt", "nul\x00.txt", "", "  "} {
		_, err := s.Store(strings.NewReader("x"), name, 1)
		require.ErrorIs(t, err, ErrInvalidFileName, "name %q", name)
	}

	_, err := os.Stat(filepath.Join(s.Root(), "user_1"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "owner dir must not be created")
}

func TestStore_NoTempLeftovers(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Store(strings.NewReader("data"), "a.txt", 3)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(s.Root(), "user_3"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestStore_ReaderFailureLeavesNothing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Store(failingReader{}, "a.txt", 3)
	require.Error(t, err)

	names, err := s.ListStored(3)
	require.NoError(t, err)
	assert.Empty(t, names)

	entries, err := os.ReadDir(filepath.Join(s.Root(), "user_3"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"report.pdf":     ".pdf",
		"archive.tar.gz": ".gz",
		".bashrc":        "",
		"trailing.":      "",
		"noext":          "",
	}
	for in, want := range tests {
		assert.Equal(t, want, extension(in), in)
	}
}

func TestLoad_OwnerIsolation(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Store(strings.NewReader("secret"), "a.txt", 1)
	require.NoError(t, err)

	_, err = s.Load(name, 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_UnsafeNames(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "top.txt"), []byte("x"), 0o600))

	for _, name := range []string{"../top.txt", "..", ".", "", "user_1/../top.txt", `..\top.txt`} {
		_, err := s.Load(name, 1)
		require.ErrorIs(t, err, ErrInvalidPath, "name %q", name)
	}
}

func TestLoad_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	s := newTestStore(t)
	outside := filepath.Join(t.TempDir(), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	dir := filepath.Join(s.Root(), "user_1")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link.txt")))

	_, err := s.Load("link.txt", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_Missing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load("does-not-exist.txt", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Idempotent(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Store(strings.NewReader("x"), "a.txt", 1)
	require.NoError(t, err)

	assert.True(t, s.Delete(name, 1))
	assert.False(t, s.Delete(name, 1))

	exists, err := s.Exists(1, name)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDelete_OtherOwner(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Store(strings.NewReader("x"), "a.txt", 1)
	require.NoError(t, err)

	assert.False(t, s.Delete(name, 2))

	exists, err := s.Exists(1, name)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDelete_UnsafeName(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.Delete("../x", 1))
}

func TestPathFor_Pure(t *testing.T) {
	s := newTestStore(t)

	p, err := s.PathFor(9, "abc.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Root(), "user_9", "abc.txt"), p)

	_, err = os.Stat(filepath.Join(s.Root(), "user_9"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = s.PathFor(9, "../abc.txt")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestListStored(t *testing.T) {
	s := newTestStore(t)

	names, err := s.ListStored(1)
	require.NoError(t, err)
	assert.Empty(t, names)

	a, err := s.Store(strings.NewReader("a"), "a.txt", 1)
	require.NoError(t, err)
	b, err := s.Store(strings.NewReader("b"), "b.txt", 1)
	require.NoError(t, err)
	_, err = s.Store(strings.NewReader("c"), "c.txt", 2)
	require.NoError(t, err)

	names, err = s.ListStored(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, names)
}
