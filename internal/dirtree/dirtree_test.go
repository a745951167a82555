package dirtree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte("x"), 0o644))
}

func TestExpandCollectsRegularFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/sel/a.txt")
	writeFile(t, fsys, "/sel/b/c.txt")
	writeFile(t, fsys, "/sel/b/d/e.txt")
	require.NoError(t, fsys.MkdirAll("/sel/empty", 0o755))

	got := Expand(fsys, "/sel", 1, nil)
	assert.ElementsMatch(t, []string{"/sel/a.txt", "/sel/b/c.txt", "/sel/b/d/e.txt"}, got)
}

func TestExpandAppendsToExistingList(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/sel/a.txt")

	got := Expand(fsys, "/sel", 1, []string{"/other/first.txt"})
	assert.Equal(t, []string{"/other/first.txt", "/sel/a.txt"}, got)
}

func TestExpandSingleSeparator(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/sel/a.txt")

	withSlash := Expand(fsys, "/sel/", 1, nil)
	withoutSlash := Expand(fsys, "/sel", 1, nil)
	assert.Equal(t, []string{"/sel/a.txt"}, withSlash)
	assert.Equal(t, withSlash, withoutSlash)
}

func TestExpandMissingDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.Empty(t, Expand(fsys, "/nope", 1, nil))
}

func TestExpandDepthLimit(t *testing.T) {
	fsys := afero.NewMemMapFs()

	// Level i (1-based) holds f.txt and the directory for level i+1.
	const levels = 300
	dir := "/deep"
	for i := 1; i <= levels; i++ {
		writeFile(t, fsys, dir+"/f.txt")
		dir += "/d"
	}

	got := Expand(fsys, "/deep", 1, nil)
	require.Len(t, got, MaxDepth)
	for _, p := range got {
		depth := strings.Count(strings.TrimPrefix(p, "/deep"), "/d") + 1
		assert.LessOrEqual(t, depth, MaxDepth, p)
	}
}

func TestExpandStartsBeyondLimit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, "/sel/a.txt")
	assert.Empty(t, Expand(fsys, "/sel", MaxDepth+1, nil))
}

func TestExpandSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	fsys := afero.NewOsFs()

	require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// A cycle back to the root must not be followed.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	got := Expand(fsys, root, 1, nil)
	assert.Equal(t, []string{filepath.Join(root, "real.txt")}, got)
}
