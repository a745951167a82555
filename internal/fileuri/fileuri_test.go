package fileuri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain path", in: "file:///tmp/a.txt", want: "/tmp/a.txt"},
		{name: "space", in: "file:///tmp/my%20file.txt", want: "/tmp/my file.txt"},
		{name: "lowercase hex", in: "file:///tmp/%c3%a9t%c3%a9", want: "/tmp/été"},
		{name: "uppercase hex", in: "file:///tmp/%C3%A9", want: "/tmp/é"},
		{name: "escape at end", in: "file:///tmp/x%25", want: "/tmp/x%"},
		{name: "host part kept", in: "file://host/share", want: "host/share"},
		{name: "empty path", in: "file://", want: ""},
		{name: "missing scheme", in: "/tmp/a.txt", wantErr: true},
		{name: "other scheme", in: "http://example.com/a", wantErr: true},
		{name: "empty input", in: "", wantErr: true},
		{name: "truncated escape", in: "file:///tmp/a%2", wantErr: true},
		{name: "lone percent", in: "file:///tmp/a%", wantErr: true},
		{name: "non hex escape", in: "file:///tmp/%zz", wantErr: true},
		{name: "half hex escape", in: "file:///tmp/%4g", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), len(tt.in))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	paths := []string{
		"/tmp/a.txt",
		"/home/user/My Documents/report (final).pdf",
		"/tmp/100%/#hash?query&amp=1",
		"/tmp/\x01ctl\x7f/\xff\xfe",
		"/tmp/été/日本語.txt",
	}
	for _, p := range paths {
		uri := Encode(p)
		assert.NotContains(t, uri[len(Scheme):], " ")
		got, err := Decode(uri)
		require.NoError(t, err, uri)
		assert.Equal(t, p, got)
	}
}

func TestEncodeEscapesReservedBytes(t *testing.T) {
	assert.Equal(t, "file:///a%20b/%25/%3F", Encode("/a b/%/?"))
	assert.Equal(t, "file:///plain-name_1.2~x", Encode("/plain-name_1.2~x"))
}
