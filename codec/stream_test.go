package codec

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	tokens := []string{"cat", "dog", "car", "größe"}
	for i, tok := range tokens {
		require.NoError(t, w.WriteEntry(tok, int64(i*32)))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, int64(buf.Len()), w.Written())

	// Stream and slice encodings agree.
	var want []byte
	for i, tok := range tokens {
		want = AppendEntry(want, tok, int64(i*32))
	}
	assert.Equal(t, want, buf.Bytes())

	r := NewReader(&buf)
	for i, tok := range tokens {
		got, off, err := r.ReadEntry()
		require.NoError(t, err)
		assert.Equal(t, tok, got)
		assert.Equal(t, int64(i*32), off)
	}

	_, _, err := r.ReadEntry()
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestWriterRejects(t *testing.T) {
	w := NewWriter(io.Discard)
	assert.ErrorIs(t, w.WriteOffset(-5), ErrCorruptData)
	assert.ErrorIs(t, w.WriteString("\xff"), ErrCorruptData)
	assert.Zero(t, w.Written())
}

func TestReaderCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"truncated length", []byte{0x80}},
		{"truncated string", []byte{4, 'a'}},
		{"missing offset", []byte{1, 'a'}},
		{"truncated offset", []byte{1, 'a', 0x80}},
		{"overflow offset", append([]byte{1, 'a'}, bytes.Repeat([]byte{0xff}, 10)...)},
		{"invalid utf8", []byte{1, 0xff, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewReader(bytes.NewReader(tt.input)).ReadEntry()
			require.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReaderPropagatesIOErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewReader(failingReader{boom}).ReadOffset()
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCorruptData)
}
