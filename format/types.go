package format

// CompressionType identifies the per-chunk compression codec.
type CompressionType uint8

const (
	CompressionNone  CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionFlate CompressionType = 0x2 // CompressionFlate represents DEFLATE compression.
	CompressionZstd  CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2    CompressionType = 0x4 // CompressionS2 represents S2 compression.
	CompressionLZ4   CompressionType = 0x5 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionFlate:
		return "Flate"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a codec name to its CompressionType.
// It returns false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "none":
		return CompressionNone, true
	case "flate", "deflate":
		return CompressionFlate, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// Compression levels for codecs that honor a level parameter (currently Flate).
// The range mirrors DEFLATE levels: -2..9, where -1 selects the library's
// balanced default.
const (
	LevelDefault       = -1
	LevelNoCompression = 0
	LevelFastest       = 1
	LevelBest          = 9
)
