package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/glovebin/blobstore"
	"github.com/hupe1980/glovebin/internal/fs"
	"github.com/hupe1980/glovebin/internal/resource"
	"github.com/hupe1980/glovebin/store"
)

const animalsText = "cat 1 0 0 0\ndog 0 1 0 0\ncar 0.9 0.1 0 0\n"

var animals = []Record{
	{"cat", []float64{1, 0, 0, 0}},
	{"dog", []float64{0, 1, 0, 0}},
	{"car", []float64{0.9, 0.1, 0, 0}},
}

type recordingObserver struct {
	mu      sync.Mutex
	records int
	bytes   int
	runs    int
	lastErr error
}

func (o *recordingObserver) OnRecord(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records++
	o.bytes += n
}

func (o *recordingObserver) OnConvert(_ time.Duration, _ int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs++
	o.lastErr = err
}

func collect(t *testing.T, src string, skipHeader bool) ([]Record, error) {
	t.Helper()
	var out []Record
	for r, err := range TextSource(strings.NewReader(src), skipHeader) {
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func TestTextSource(t *testing.T) {
	got, err := collect(t, animalsText, false)
	require.NoError(t, err)
	assert.Equal(t, animals, got)

	got, err = collect(t, "400000 4\r\ncat 1 0 0 0\r\n\r\n   \ndog 0 1 0 0 \n", true)
	require.NoError(t, err)
	assert.Equal(t, []Record{animals[0], animals[1]}, got)
}

func TestTextSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		is   error
	}{
		{"bad float", "cat 1 0\ndog 0 x\n", 2, ErrMalformedLine},
		{"token only", "cat 1 0\ndog\n", 2, ErrEmptyVector},
		{"empty token", " 1 2\n", 1, ErrMalformedLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := collect(t, tt.src, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)

			var le *LineError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.line, le.Line)
		})
	}
}

func TestWriteStream_RoundTrip(t *testing.T) {
	var dict, vec bytes.Buffer
	st, err := WriteStream(t.Context(), SliceSource(animals), &dict, &vec)
	require.NoError(t, err)
	assert.Equal(t, Stats{Records: 3, Dim: 4, BlockSize: 32, DictBytes: int64(dict.Len()), VecBytes: 96}, st)

	var got []Record
	for e, err := range store.Scan(&dict, &vec) {
		require.NoError(t, err)
		got = append(got, Record{e.Token, e.Vector.Values()})
	}
	assert.Equal(t, animals, got)
}

func TestWriteStream_InconsistentDimension(t *testing.T) {
	records := append([]Record{}, animals...)
	records = append(records, Record{"bird", []float64{1, 2, 3}})

	var dict, vec bytes.Buffer
	st, err := WriteStream(t.Context(), SliceSource(records), &dict, &vec)
	assert.ErrorIs(t, err, ErrInconsistentDimension)

	var de *DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 4, de.Record)
	assert.Equal(t, "bird", de.Token)
	assert.Equal(t, 32, de.Want)
	assert.Equal(t, 24, de.Got)
	assert.Equal(t, 3, st.Records)
}

func TestWriteStream_EmptyVector(t *testing.T) {
	var dict, vec bytes.Buffer
	_, err := WriteStream(t.Context(), SliceSource([]Record{{Token: "x"}}), &dict, &vec)
	assert.ErrorIs(t, err, ErrEmptyVector)
}

func TestWriteStream_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	var dict, vec bytes.Buffer
	_, err := WriteStream(ctx, SliceSource(animals), &dict, &vec)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteStream_ProgressAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	obs := &recordingObserver{}
	var dict, vec bytes.Buffer
	_, err := WriteStream(t.Context(), SliceSource(animals), &dict, &vec,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithMetrics(obs),
		WithProgressInterval(0),
	)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "conversion progress")
	assert.Equal(t, 3, obs.records)
	assert.Equal(t, 96, obs.bytes)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "glove.test.txt")
	require.NoError(t, os.WriteFile(src, []byte("3 4\n"+animalsText), 0o644))

	obs := &recordingObserver{}
	st, err := ConvertFile(t.Context(), src, "", WithSkipHeader(true), WithMetrics(obs))
	require.NoError(t, err)
	assert.Equal(t, 3, st.Records)
	assert.Equal(t, 1, obs.runs)
	assert.NoError(t, obs.lastErr)

	a, err := store.OpenDense(filepath.Join(dir, "glove.test"))
	require.NoError(t, err)
	defer a.Close()

	for _, r := range animals {
		v, err := a.Lookup(r.Token)
		require.NoError(t, err)
		assert.Equal(t, r.Values, v.Values())
	}
	assert.False(t, a.Contains("bird"))
	assert.Equal(t, 32, a.Mapped().BlockSize())
}

func compress(t *testing.T, c Compression, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = zw
	case CompressionLZ4:
		w = lz4.NewWriter(&buf)
	default:
		t.Fatalf("unexpected compression %q", c)
	}
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestConvertBlob_Compressed(t *testing.T) {
	tests := []struct {
		name string
		c    Compression
	}{
		{"glove.txt.gz", CompressionGzip},
		{"glove.txt.zst", CompressionZstd},
		{"glove.txt.lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := blobstore.NewMemoryStore()
			bs.Put(tt.name, compress(t, tt.c, []byte(animalsText)))

			prefix := filepath.Join(t.TempDir(), "out", "glove")
			st, err := ConvertBlob(t.Context(), bs, tt.name, prefix)
			require.NoError(t, err)
			assert.Equal(t, 3, st.Records)

			m, err := store.OpenPrefix(prefix)
			require.NoError(t, err)
			defer m.Close()
			v, err := m.LookupDense("car")
			require.NoError(t, err)
			assert.Equal(t, animals[2].Values, v.Values())
		})
	}
}

func TestConvertBlob_Throttled(t *testing.T) {
	bs := blobstore.NewMemoryStore()
	bs.Put("a.txt", []byte(animalsText))
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})

	prefix := filepath.Join(t.TempDir(), "a")
	st, err := ConvertBlob(t.Context(), bs, "a.txt", prefix, WithController(rc))
	require.NoError(t, err)

	// Outputs pass through the throttled writers unchanged.
	a, err := store.OpenDense(prefix)
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, st.Records, a.Mapped().Len())
	v, err := a.Lookup("car")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.1, 0, 0}, v.Values())
}

func TestConvertBlob_FailureLeavesNoOutput(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		pattern string
		fault   fs.Fault
		is      error
	}{
		{name: "dimension", src: animalsText + "bird 1 2\n", is: ErrInconsistentDimension},
		{name: "parse", src: animalsText + "bird 1 2 x 4\n", is: ErrMalformedLine},
		{name: "empty", src: "\n\n", is: ErrEmptySource},
		{name: "vec write", src: animalsText, pattern: store.VecSuffix, fault: fs.Fault{FailAfterBytes: 10}, is: fs.ErrInjected},
		{name: "dict rename", src: animalsText, pattern: store.DictSuffix, fault: fs.Fault{FailAfterBytes: -1, FailOnRename: true}, is: fs.ErrInjected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := blobstore.NewMemoryStore()
			bs.Put("src.txt", []byte(tt.src))
			ffs := fs.NewFaultyFS(nil)
			if tt.pattern != "" {
				ffs.AddRule(tt.pattern, tt.fault)
			}

			dir := t.TempDir()
			obs := &recordingObserver{}
			_, err := ConvertBlob(t.Context(), bs, "src.txt", filepath.Join(dir, "src"),
				WithFileSystem(ffs), WithMetrics(obs))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.True(t, errors.Is(obs.lastErr, tt.is))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestConvertBlob_FailureKeepsPreviousStore(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		fault   fs.Fault
	}{
		{name: "dict sync", pattern: store.DictSuffix, fault: fs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{name: "dict close", pattern: store.DictSuffix, fault: fs.Fault{FailAfterBytes: -1, FailOnClose: true}},
		{name: "vec sync", pattern: store.VecSuffix, fault: fs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{name: "vec rename", pattern: store.VecSuffix, fault: fs.Fault{FailAfterBytes: -1, FailOnRename: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := filepath.Join(t.TempDir(), "emb")
			dictPath, vecPath := store.Paths(prefix)
			require.NoError(t, os.WriteFile(dictPath, []byte("old dict"), 0o644))
			require.NoError(t, os.WriteFile(vecPath, []byte("old vec"), 0o644))

			bs := blobstore.NewMemoryStore()
			bs.Put("src.txt", []byte(animalsText))
			ffs := fs.NewFaultyFS(nil)
			ffs.AddRule(tt.pattern, tt.fault)

			_, err := ConvertBlob(t.Context(), bs, "src.txt", prefix, WithFileSystem(ffs))
			require.ErrorIs(t, err, fs.ErrInjected)

			dict, err := os.ReadFile(dictPath)
			require.NoError(t, err)
			assert.Equal(t, "old dict", string(dict))
			vec, err := os.ReadFile(vecPath)
			require.NoError(t, err)
			assert.Equal(t, "old vec", string(vec))

			entries, err := os.ReadDir(filepath.Dir(prefix))
			require.NoError(t, err)
			assert.Len(t, entries, 2, "temporary files must be removed")
		})
	}
}

func TestConvertBlob_MissingSource(t *testing.T) {
	_, err := ConvertBlob(t.Context(), blobstore.NewMemoryStore(), "nope.txt", filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCompressionHelpers(t *testing.T) {
	assert.Equal(t, CompressionGzip, DetectCompression("a.txt.GZ"))
	assert.Equal(t, CompressionZstd, DetectCompression("a.zst"))
	assert.Equal(t, CompressionLZ4, DetectCompression("a.lz4"))
	assert.Equal(t, CompressionNone, DetectCompression("a.txt"))

	assert.Equal(t, "dir/glove.6B.50d", OutputPrefix("dir/glove.6B.50d.txt.gz"))
	assert.Equal(t, "glove.6B.50d", OutputPrefix("glove.6B.50d.txt"))
	assert.Equal(t, "vectors", OutputPrefix("vectors.zst"))

	_, err := Decompress(strings.NewReader(""), "a", Compression("brotli"))
	assert.Error(t, err)
	_, err = Decompress(strings.NewReader("not gzip"), "a.gz", CompressionAuto)
	assert.Error(t, err)
}
