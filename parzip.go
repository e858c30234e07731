// Package parzip compresses and decompresses whole files by splitting them
// into fixed-size chunks and processing the chunks in parallel across a
// worker pool.
//
// Each chunk compresses independently into a self-contained stream, and the
// chunks are reassembled into a binary container in strict chunk-index
// order, so output is byte-identical across runs regardless of which worker
// finishes first. Trading a little compression ratio (no cross-chunk
// dictionary) buys fully parallel compression and decompression.
//
// # Container Format
//
//	[magic: 4 bytes LE][original_size: 8 bytes LE]
//	repeat per chunk in ascending index order:
//	  [compressed_length: 4 bytes LE]
//	  [compressed_length bytes of codec output]
//
// # Basic Usage
//
// Compressing and restoring a file with default settings (1MiB chunks, one
// worker per CPU, DEFLATE):
//
//	import "github.com/parzip/parzip"
//
//	stats, err := parzip.CompressFile("data.bin", "data.bin.pz")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%.1f%% saved across %d chunks\n", stats.SpaceSavings(), stats.Chunks)
//
//	_, err = parzip.DecompressFile("data.bin.pz", "restored.bin")
//
// Tuning the pipeline:
//
//	stats, err := parzip.CompressFile("data.bin", "data.bin.pz",
//	    parzip.WithWorkers(8),
//	    parzip.WithChunkSize(4<<20),
//	    parzip.WithCompression(format.CompressionZstd),
//	)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the pipeline
// package, simplifying the most common use cases. For context-aware calls
// and fine-grained control, use the pipeline package directly.
package parzip

import (
	"context"

	"github.com/parzip/parzip/pipeline"
)

// Option configures the pipeline. See pipeline.WithWorkers,
// pipeline.WithChunkSize, pipeline.WithCompression, pipeline.WithLevel,
// pipeline.WithQueueDepth, and pipeline.WithMagic.
type Option = pipeline.Option

// Stats summarizes a completed run.
type Stats = pipeline.Stats

// Re-exported option constructors for the common tunables.
var (
	WithWorkers     = pipeline.WithWorkers
	WithChunkSize   = pipeline.WithChunkSize
	WithQueueDepth  = pipeline.WithQueueDepth
	WithCompression = pipeline.WithCompression
	WithLevel       = pipeline.WithLevel
	WithMagic       = pipeline.WithMagic
)

// CompressFile compresses inputPath into a parzip container at outputPath.
func CompressFile(inputPath, outputPath string, opts ...Option) (Stats, error) {
	return pipeline.Compress(context.Background(), inputPath, outputPath, opts...)
}

// DecompressFile restores the original file from a parzip container.
func DecompressFile(inputPath, outputPath string, opts ...Option) (Stats, error) {
	return pipeline.Decompress(context.Background(), inputPath, outputPath, opts...)
}
