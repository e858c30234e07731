// Package compress provides the per-chunk compression codecs used by the
// parzip pipeline.
//
// Each codec operates on one self-contained in-memory buffer: a chunk
// compresses independently of every other chunk, which is the property that
// makes parallel compression and parallel decompression possible. The trade
// is compression ratio — no codec here shares a dictionary or window across
// chunks, and that is deliberate.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - Flate (format.CompressionFlate): DEFLATE streams, the container
//     default. Honors the configured compression level.
//   - Zstd (format.CompressionZstd): best ratio, moderate speed.
//   - S2 (format.CompressionS2): balanced ratio and speed.
//   - LZ4 (format.CompressionLZ4): fastest decompression.
//   - None (format.CompressionNone): pass-through, for benchmarking and
//     incompressible data.
//
// All codecs follow the same buffer discipline: compression sizes its output
// using the algorithm's worst-case bound and trims to the produced length;
// decompression starts from the configured chunk-size hint and doubles the
// output buffer until the stream's end marker is reached, failing if the
// expansion safety limit is exceeded.
//
// Codecs are stateless per call and safe for concurrent use by multiple
// pipeline workers.
package compress
