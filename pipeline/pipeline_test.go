package pipeline

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parzip/parzip/errs"
	"github.com/parzip/parzip/format"
	"github.com/parzip/parzip/section"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func randomData(t *testing.T, size int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(7))
	data := make([]byte, size)
	_, err := rng.Read(data)
	require.NoError(t, err)

	return data
}

// countFrames walks a container and returns its frame count.
func countFrames(t *testing.T, path string, magic uint32) int {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	fi, err := f.Stat()
	require.NoError(t, err)

	_, err = section.ReadHeader(f, magic)
	require.NoError(t, err)

	fr := section.NewFrameReader(f, uint64(fi.Size())-section.HeaderSize)

	frames := 0
	for {
		_, err := fr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		frames++
	}

	return frames
}

func roundTrip(t *testing.T, data []byte, opts ...Option) (Stats, Stats, []byte) {
	t.Helper()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "input")
	arcPath := filepath.Join(dir, "archive")
	outPath := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(inPath, data, 0o644))

	ctx := context.Background()

	cStats, err := Compress(ctx, inPath, arcPath, opts...)
	require.NoError(t, err)

	dStats, err := Decompress(ctx, arcPath, outPath, opts...)
	require.NoError(t, err)

	restored, err := os.ReadFile(outPath)
	require.NoError(t, err)

	return cStats, dStats, restored
}

func TestRoundTripTenMiB(t *testing.T) {
	// 10MiB of pseudo-random bytes in 1MiB chunks across 4 workers.
	original := randomData(t, 10<<20)

	cStats, dStats, restored := roundTrip(t, original, WithWorkers(4))

	require.True(t, bytes.Equal(original, restored))
	require.Equal(t, 10, cStats.Chunks)
	require.Equal(t, 10, dStats.Chunks)
	require.Equal(t, int64(10<<20), cStats.OriginalSize)
	require.Equal(t, cStats.Digest, dStats.Digest, "content digests must agree end to end")
}

func TestRoundTripContainerFrameCount(t *testing.T) {
	original := randomData(t, 10<<20)

	dir := t.TempDir()
	inPath := filepath.Join(dir, "input")
	arcPath := filepath.Join(dir, "archive")
	require.NoError(t, os.WriteFile(inPath, original, 0o644))

	_, err := Compress(context.Background(), inPath, arcPath, WithWorkers(4))
	require.NoError(t, err)

	require.Equal(t, 10, countFrames(t, arcPath, section.DefaultMagic))
}

func TestRoundTripSmallerThanOneChunk(t *testing.T) {
	// 100 bytes, far below the 1MiB window: exactly one chunk and one frame.
	original := randomData(t, 100)

	cStats, _, restored := roundTrip(t, original)

	require.Equal(t, original, restored)
	require.Equal(t, 1, cStats.Chunks)
}

func TestRoundTripEmptyInput(t *testing.T) {
	cStats, dStats, restored := roundTrip(t, nil)

	require.Empty(t, restored)
	require.Equal(t, 0, cStats.Chunks)
	require.Equal(t, 0, dStats.Chunks)
	require.Equal(t, int64(section.HeaderSize), cStats.CompressedSize,
		"empty input is a bare header with zero frames")
	require.Equal(t, cStats.Digest, dStats.Digest)
}

func TestRoundTripFinalShortChunk(t *testing.T) {
	// Deliberately not a multiple of the chunk size.
	original := randomData(t, 3*1024+17)

	cStats, _, restored := roundTrip(t, original, WithChunkSize(1024))

	require.Equal(t, original, restored)
	require.Equal(t, 4, cStats.Chunks)
}

func TestRoundTripAllCodecs(t *testing.T) {
	original := randomData(t, 2<<20)

	for _, comp := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionFlate,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			_, _, restored := roundTrip(t, original, WithCompression(comp), WithWorkers(4))
			require.True(t, bytes.Equal(original, restored))
		})
	}
}

func TestOutputIndependentOfWorkerCount(t *testing.T) {
	// The container must be byte-identical no matter how completion order
	// varies, and worker count is the strongest completion-order scrambler
	// available without reaching into the pool.
	original := randomData(t, 5<<20)
	inPath := writeTempFile(t, original)

	dir := t.TempDir()
	serial := filepath.Join(dir, "serial")
	parallel := filepath.Join(dir, "parallel")

	ctx := context.Background()

	_, err := Compress(ctx, inPath, serial, WithWorkers(1))
	require.NoError(t, err)
	_, err = Compress(ctx, inPath, parallel, WithWorkers(8), WithQueueDepth(16))
	require.NoError(t, err)

	a, err := os.ReadFile(serial)
	require.NoError(t, err)
	b, err := os.ReadFile(parallel)
	require.NoError(t, err)

	require.True(t, bytes.Equal(a, b))
}

func TestDecompressRejectsFlippedMagic(t *testing.T) {
	inPath := writeTempFile(t, randomData(t, 4096))
	arcPath := filepath.Join(t.TempDir(), "archive")

	ctx := context.Background()
	_, err := Compress(ctx, inPath, arcPath)
	require.NoError(t, err)

	arc, err := os.ReadFile(arcPath)
	require.NoError(t, err)
	arc[0] ^= 0xFF
	require.NoError(t, os.WriteFile(arcPath, arc, 0o644))

	_, err = Decompress(ctx, arcPath, filepath.Join(t.TempDir(), "out"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestDecompressRejectsTruncatedContainer(t *testing.T) {
	inPath := writeTempFile(t, randomData(t, 256*1024))
	arcPath := filepath.Join(t.TempDir(), "archive")

	ctx := context.Background()
	_, err := Compress(ctx, inPath, arcPath)
	require.NoError(t, err)

	arc, err := os.ReadFile(arcPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(arcPath, arc[:len(arc)-7], 0o644))

	_, err = Decompress(ctx, arcPath, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err, "a container cut mid-frame must never decode successfully")
}

func TestDecompressRejectsSizeMismatch(t *testing.T) {
	original := randomData(t, 64*1024)
	inPath := writeTempFile(t, original)
	arcPath := filepath.Join(t.TempDir(), "archive")

	ctx := context.Background()
	_, err := Compress(ctx, inPath, arcPath)
	require.NoError(t, err)

	// Corrupt the recorded original size: the sum of decompressed frame
	// lengths will no longer match.
	arc, err := os.ReadFile(arcPath)
	require.NoError(t, err)
	arc[4]++
	require.NoError(t, os.WriteFile(arcPath, arc, 0o644))

	_, err = Decompress(ctx, arcPath, filepath.Join(t.TempDir(), "out"))
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestCustomMagicRoundTrip(t *testing.T) {
	const magic = uint32(0x50415243)

	original := randomData(t, 8192)
	_, _, restored := roundTrip(t, original, WithMagic(magic))
	require.Equal(t, original, restored)

	// A container written with a custom magic must not open with the default.
	inPath := writeTempFile(t, original)
	arcPath := filepath.Join(t.TempDir(), "archive")

	ctx := context.Background()
	_, err := Compress(ctx, inPath, arcPath, WithMagic(magic))
	require.NoError(t, err)

	_, err = Decompress(ctx, arcPath, filepath.Join(t.TempDir(), "out"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestCompressCancelledContext(t *testing.T) {
	inPath := writeTempFile(t, randomData(t, 4<<20))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compress(ctx, inPath, filepath.Join(t.TempDir(), "archive"), WithChunkSize(64*1024))
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompressMissingInput(t *testing.T) {
	_, err := Compress(context.Background(),
		filepath.Join(t.TempDir(), "does-not-exist"),
		filepath.Join(t.TempDir(), "archive"))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	t.Run("rejects non-positive chunk size", func(t *testing.T) {
		_, err := NewConfig(WithChunkSize(0))
		require.Error(t, err)
	})

	t.Run("rejects non-positive workers", func(t *testing.T) {
		_, err := NewConfig(WithWorkers(0))
		require.Error(t, err)
	})

	t.Run("rejects non-positive queue depth", func(t *testing.T) {
		_, err := NewConfig(WithQueueDepth(-1))
		require.Error(t, err)
	})

	t.Run("rejects unknown compression", func(t *testing.T) {
		_, err := NewConfig(WithCompression(format.CompressionType(0x7F)))
		require.Error(t, err)
	})

	t.Run("derives queue depth from workers", func(t *testing.T) {
		cfg, err := NewConfig(WithWorkers(3))
		require.NoError(t, err)
		require.Equal(t, 6, cfg.queueDepth)
	})

	t.Run("invalid level surfaces at codec creation", func(t *testing.T) {
		cfg, err := NewConfig(WithLevel(99))
		require.NoError(t, err)

		_, err = cfg.Codec()
		require.ErrorIs(t, err, errs.ErrInvalidLevel)
	})
}

func TestStats(t *testing.T) {
	t.Run("ratio and savings", func(t *testing.T) {
		s := Stats{OriginalSize: 1000, CompressedSize: 250}
		require.InDelta(t, 0.25, s.CompressionRatio(), 1e-9)
		require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)
	})

	t.Run("zero original size", func(t *testing.T) {
		s := Stats{CompressedSize: section.HeaderSize}
		require.Zero(t, s.CompressionRatio())
	})
}
