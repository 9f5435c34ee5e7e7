package dispatch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestNewTranscoder(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		passThru bool
	}{
		{"", "UTF-8", true},
		{"utf-8", "UTF-8", true},
		{"UTF8", "UTF-8", true},
		{"GBK", "GBK", false},
		{"Shift_JIS", "Shift_JIS", false},
		{"ISO-8859-1", "ISO-8859-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := NewTranscoder(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tc.Name())
			assert.Equal(t, tt.passThru, tc.enc == nil)
		})
	}

	_, err := NewTranscoder("no-such-charset")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestDrainTranscodesToGBK(t *testing.T) {
	tc, err := NewTranscoder("GBK")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Drain(strings.NewReader("转换完成 ok\n"), &out, tc))

	want, err := simplifiedchinese.GBK.NewEncoder().String("转换完成 ok\n")
	require.NoError(t, err)
	assert.Equal(t, want, out.String())
}

func TestDrainReplacesUnsupportedRunes(t *testing.T) {
	tc, err := NewTranscoder("ISO-8859-1")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Drain(strings.NewReader("a中b\n"), &out, tc))
	got := out.Bytes()
	require.Len(t, got, 4)
	assert.Equal(t, byte('a'), got[0])
	assert.NotEqual(t, byte('a'), got[1])
	assert.Equal(t, "b\n", string(got[2:]))
}
