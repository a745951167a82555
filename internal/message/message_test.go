package message

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBase64Data(t *testing.T) {
	raw, err := NewImage([]byte{0x89, 'P', 'N', 'G'}).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"image","mime":"image/png","data":"iVBORw=="}`, string(raw))

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, p.Data)
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"video"}`))
	assert.Error(t, err)
	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("FILES")
	require.NoError(t, err)
	assert.Equal(t, KindFiles, k)

	_, err = ParseKind("audio")
	assert.Error(t, err)
}

func TestRelativeNames(t *testing.T) {
	sep := string(filepath.Separator)
	j := func(parts ...string) string { return strings.Join(parts, sep) }

	t.Run("directory selection", func(t *testing.T) {
		p := NewFiles([]string{
			j("", "tmp", "sub", "x.txt"),
			j("", "tmp", "sub", "y", "z.txt"),
			j("", "tmp", "b.txt"),
		}, j("", "tmp", ""))
		assert.Equal(t, []string{"sub/x.txt", "sub/y/z.txt", "b.txt"}, p.RelativeNames())
	})

	t.Run("no path len", func(t *testing.T) {
		p := NewFiles([]string{j("", "tmp", "a.txt"), j("", "var", "b.txt")}, "")
		assert.Equal(t, []string{"a.txt", "b.txt"}, p.RelativeNames())
	})

	t.Run("entry outside base", func(t *testing.T) {
		p := NewFiles([]string{j("", "tmp", "a.txt"), j("", "opt", "c.txt")}, j("", "tmp", ""))
		assert.Equal(t, []string{"a.txt", "c.txt"}, p.RelativeNames())
	})

	t.Run("base from a selection entry that was skipped", func(t *testing.T) {
		// First selected entry /a/missing was dropped; its base /a/ is kept.
		p := NewFiles([]string{j("", "tmp", "docs", "x.txt")}, j("", "a", ""))
		assert.Equal(t, 3, p.PathLen)
		assert.Equal(t, []string{"x.txt"}, p.RelativeNames())
	})

	t.Run("path len only, not on a separator", func(t *testing.T) {
		p := &Payload{Kind: KindFiles, Files: []string{"/tmp/docs/x.txt"}, PathLen: 3}
		assert.Equal(t, []string{"x.txt"}, p.RelativeNames())
	})

	t.Run("path len only, on a separator", func(t *testing.T) {
		p := &Payload{Kind: KindFiles, Files: []string{"/tmp/docs/x.txt", "/tmp/docs/y/z.txt"}, PathLen: len("/tmp/")}
		assert.Equal(t, []string{"docs/x.txt", "docs/y/z.txt"}, p.RelativeNames())
	})
}

func TestLogPayloadDebugPreview(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogPayload("clipboard read", NewText([]byte(strings.Repeat("a", 200))))
	out := buf.String()
	assert.Contains(t, out, "kind=text")
	assert.Contains(t, out, strings.Repeat("a", 120)+"…")
	assert.NotContains(t, out, strings.Repeat("a", 121))
}
