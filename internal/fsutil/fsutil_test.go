package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rel(parts ...string) string {
	return "." + string(os.PathSeparator) + filepath.Join(parts...)
}

func TestExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.txt", []byte("x"), 0o644))

	assert.True(t, Exists(fsys, "/a.txt"))
	assert.False(t, Exists(fsys, "/b.txt"))
	assert.False(t, Exists(fsys, ""))
}

func TestIsDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/d", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/f", nil, 0o644))

	assert.True(t, IsDir(fsys, "/d", false))
	assert.True(t, IsDir(fsys, "/d", true))
	assert.False(t, IsDir(fsys, "/f", false))
	assert.False(t, IsDir(fsys, "/missing", true))
	assert.False(t, IsDir(fsys, "", true))
}

func TestIsDirSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	fsys := afero.NewOsFs()
	assert.True(t, IsDir(fsys, filepath.Join(dir, "link"), true))
	assert.False(t, IsDir(fsys, filepath.Join(dir, "link"), false))
}

func TestFileSize(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/f", []byte("hello"), 0o644))
	require.NoError(t, fsys.MkdirAll("/d", 0o755))

	f, err := fsys.Open("/f")
	require.NoError(t, err)
	defer f.Close()
	n, err := FileSize(f)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	d, err := fsys.Open("/d")
	require.NoError(t, err)
	defer d.Close()
	_, err = FileSize(d)
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestListDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/d/b.txt", nil, 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/d/a.txt", nil, 0o644))
	require.NoError(t, fsys.MkdirAll("/d/sub", 0o755))

	names, err := ListDir(fsys, "/d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)

	_, err = ListDir(fsys, "/missing")
	assert.Error(t, err)
}

func TestMkdirsRelative(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, fsys afero.Fs)
		dir     string
		wantErr error
	}{
		{name: "nested", dir: rel("a", "b", "c")},
		{name: "dot", dir: "."},
		{name: "already there", dir: rel("a", "b"), setup: func(t *testing.T, fsys afero.Fs) {
			require.NoError(t, fsys.MkdirAll(rel("a", "b"), 0o755))
		}},
		{name: "partly there", dir: rel("a", "b", "c"), setup: func(t *testing.T, fsys afero.Fs) {
			require.NoError(t, fsys.MkdirAll(rel("a"), 0o755))
		}},
		{name: "absolute", dir: string(os.PathSeparator) + "tmp", wantErr: ErrNotRelative},
		{name: "bare name", dir: "a", wantErr: ErrNotRelative},
		{name: "empty", dir: "", wantErr: ErrNotRelative},
		{name: "parent escape", dir: rel("..", "x"), wantErr: ErrNotRelative},
		{name: "file in the way", dir: rel("a", "b"), wantErr: ErrNotDir, setup: func(t *testing.T, fsys afero.Fs) {
			require.NoError(t, afero.WriteFile(fsys, rel("a"), []byte("x"), 0o644))
		}},
		{name: "target is a file", dir: rel("a"), wantErr: ErrNotDir, setup: func(t *testing.T, fsys afero.Fs) {
			require.NoError(t, afero.WriteFile(fsys, rel("a"), []byte("x"), 0o644))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			if tt.setup != nil {
				tt.setup(t, fsys)
			}
			err := MkdirsRelative(fsys, tt.dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, IsDir(fsys, tt.dir, false))
		})
	}
}

func TestMkdirsRelativeSymlinkComponent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	fsys := afero.NewBasePathFs(afero.NewOsFs(), dir)
	assert.ErrorIs(t, MkdirsRelative(fsys, rel("link", "sub")), ErrNotDir)
	assert.NoError(t, MkdirsRelative(fsys, rel("real", "sub")))

	st, err := os.Stat(filepath.Join(dir, "real", "sub"))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}
