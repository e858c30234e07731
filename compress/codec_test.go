package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parzip/parzip/errs"
	"github.com/parzip/parzip/format"
)

func testData(t *testing.T, size int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	data := make([]byte, size)
	_, err := rng.Read(data)
	require.NoError(t, err)

	return data
}

func compressibleData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i / 64)
	}

	return data
}

func allCodecs(t *testing.T) map[string]Codec {
	t.Helper()

	flate, err := NewFlateCodec(format.LevelDefault, DefaultSizeHint)
	require.NoError(t, err)

	return map[string]Codec{
		"noop":  NewNoOpCodec(),
		"flate": flate,
		"zstd":  NewZstdCodec(),
		"s2":    NewS2Codec(),
		"lz4":   NewLZ4Codec(DefaultSizeHint),
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("random data", func(t *testing.T) {
				original := testData(t, 64*1024)

				compressed, err := codec.Compress(original)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, original, decompressed)
			})

			t.Run("compressible data", func(t *testing.T) {
				original := compressibleData(256 * 1024)

				compressed, err := codec.Compress(original)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(original, decompressed))
			})

			t.Run("single byte", func(t *testing.T) {
				compressed, err := codec.Compress([]byte{0x42})
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, []byte{0x42}, decompressed)
			})

			t.Run("empty input", func(t *testing.T) {
				compressed, err := codec.Compress(nil)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Empty(t, decompressed)
			})
		})
	}
}

func TestCodecCompressionReducesSize(t *testing.T) {
	original := compressibleData(1 << 20)

	for name, codec := range allCodecs(t) {
		if name == "noop" {
			continue
		}

		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(original)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(original))
		})
	}
}

func TestFlateCodec(t *testing.T) {
	t.Run("invalid level rejected", func(t *testing.T) {
		_, err := NewFlateCodec(10, DefaultSizeHint)
		require.ErrorIs(t, err, errs.ErrInvalidLevel)

		_, err = NewFlateCodec(-3, DefaultSizeHint)
		require.ErrorIs(t, err, errs.ErrInvalidLevel)
	})

	t.Run("valid level range accepted", func(t *testing.T) {
		for level := -2; level <= 9; level++ {
			codec, err := NewFlateCodec(level, DefaultSizeHint)
			require.NoError(t, err, "level %d", level)
			require.Equal(t, level, codec.Level())
		}
	})

	t.Run("decompress doubles past small size hint", func(t *testing.T) {
		// A 16-byte starting buffer forces multiple doubling rounds for a
		// 64KiB chunk.
		codec, err := NewFlateCodec(format.LevelDefault, 16)
		require.NoError(t, err)

		original := testData(t, 64*1024)
		compressed, err := codec.Compress(original)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, original, decompressed)
	})

	t.Run("corrupt stream fails", func(t *testing.T) {
		codec, err := NewFlateCodec(format.LevelDefault, DefaultSizeHint)
		require.NoError(t, err)

		_, err = codec.Decompress([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02})
		require.ErrorIs(t, err, errs.ErrDecompressFailed)
	})

	t.Run("truncated stream fails", func(t *testing.T) {
		codec, err := NewFlateCodec(format.LevelDefault, DefaultSizeHint)
		require.NoError(t, err)

		compressed, err := codec.Compress(testData(t, 32*1024))
		require.NoError(t, err)

		_, err = codec.Decompress(compressed[:len(compressed)/2])
		require.Error(t, err, "a stream without an end marker must not decode")
	})

	t.Run("levels affect output size", func(t *testing.T) {
		original := compressibleData(1 << 20)

		fast, err := NewFlateCodec(format.LevelFastest, DefaultSizeHint)
		require.NoError(t, err)
		best, err := NewFlateCodec(format.LevelBest, DefaultSizeHint)
		require.NoError(t, err)

		fastOut, err := fast.Compress(original)
		require.NoError(t, err)
		bestOut, err := best.Compress(original)
		require.NoError(t, err)

		require.LessOrEqual(t, len(bestOut), len(fastOut))
	})
}

func TestZstdCodecCorruptData(t *testing.T) {
	codec := NewZstdCodec()

	_, err := codec.Decompress([]byte("this is not a zstd frame"))
	require.ErrorIs(t, err, errs.ErrDecompressFailed)
}

func TestS2CodecCorruptData(t *testing.T) {
	codec := NewS2Codec()

	_, err := codec.Decompress([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	require.ErrorIs(t, err, errs.ErrDecompressFailed)
}

func TestLZ4Codec(t *testing.T) {
	t.Run("corrupt data fails", func(t *testing.T) {
		codec := NewLZ4Codec(DefaultSizeHint)

		_, err := codec.Decompress([]byte{0xFF, 0xFF, 0xFF, 0xFF})
		require.Error(t, err)
	})

	t.Run("short size hint triggers doubling", func(t *testing.T) {
		writer := NewLZ4Codec(DefaultSizeHint)
		original := compressibleData(128 * 1024)

		compressed, err := writer.Compress(original)
		require.NoError(t, err)

		// Reader configured with a hint far below the decompressed size.
		reader := NewLZ4Codec(1024)
		decompressed, err := reader.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, original, decompressed)
	})
}

func TestCreateCodec(t *testing.T) {
	t.Run("creates each supported type", func(t *testing.T) {
		types := []format.CompressionType{
			format.CompressionNone,
			format.CompressionFlate,
			format.CompressionZstd,
			format.CompressionS2,
			format.CompressionLZ4,
		}

		for _, typ := range types {
			codec, err := CreateCodec(typ, format.LevelDefault, DefaultSizeHint)
			require.NoError(t, err, "type %s", typ)
			require.NotNil(t, codec)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := CreateCodec(format.CompressionType(0xFF), format.LevelDefault, DefaultSizeHint)
		require.Error(t, err)
	})

	t.Run("rejects invalid flate level", func(t *testing.T) {
		_, err := CreateCodec(format.CompressionFlate, 42, DefaultSizeHint)
		require.ErrorIs(t, err, errs.ErrInvalidLevel)
	})
}
