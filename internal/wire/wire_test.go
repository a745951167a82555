package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipshare/internal/crypto"
	"go.klb.dev/clipshare/internal/message"
)

func TestStream(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	require.NoError(t, w.WriteMsg(message.NewText([]byte("hello\nworld"))))
	require.NoError(t, w.WriteMsg(message.NewFiles([]string{"/tmp/a.txt"}, "/tmp/")))

	assert.Equal(t, 2, strings.Count(buf.String(), "\n"), "one line per payload")

	r := NewReader(&buf, nil)
	p, err := r.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, message.KindText, p.Kind)
	assert.Equal(t, "hello\nworld", string(p.Data))

	p, err = r.ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/a.txt"}, p.Files)
	assert.Equal(t, "/tmp/", p.Base)
	assert.Equal(t, 5, p.PathLen)

	_, err = r.ReadMsg()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadLargeMessage(t *testing.T) {
	var buf bytes.Buffer
	img := bytes.Repeat([]byte{0xAB}, 200*1024)
	require.NoError(t, NewWriter(&buf, nil).WriteMsg(message.NewImage(img)))

	p, err := NewReader(&buf, nil).ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, img, p.Data)
}

func TestReadTruncated(t *testing.T) {
	_, err := NewReader(strings.NewReader(`{"kind":"text"`), nil).ReadMsg()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadGarbage(t *testing.T) {
	_, err := NewReader(strings.NewReader("garbage\n"), nil).ReadMsg()
	assert.Error(t, err)
}

func TestEncryptedStream(t *testing.T) {
	key, err := crypto.DeriveKey("shared token")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, key).WriteMsg(message.NewText([]byte("secret text"))))
	assert.NotContains(t, buf.String(), "secret")
	assert.NotContains(t, buf.String(), `"kind"`)

	p, err := NewReader(bytes.NewReader(buf.Bytes()), key).ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, "secret text", string(p.Data))

	wrong, _ := crypto.DeriveKey("wrong")
	_, err = NewReader(bytes.NewReader(buf.Bytes()), wrong).ReadMsg()
	assert.ErrorIs(t, err, crypto.ErrOpen)

	_, err = NewReader(bytes.NewReader(buf.Bytes()), nil).ReadMsg()
	assert.Error(t, err, "sealed line is not JSON")
}
