//go:build unix

package logging

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorLogWorldWritable(t *testing.T) {
	old := syscall.Umask(0o022)
	defer syscall.Umask(old)

	l, _ := newTestLog(t)
	l.Error("shared")

	st, err := os.Stat(l.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o666), st.Mode().Perm())
}
