package pipeline

import (
	"fmt"
	"runtime"

	"github.com/parzip/parzip/compress"
	"github.com/parzip/parzip/format"
	"github.com/parzip/parzip/internal/options"
	"github.com/parzip/parzip/section"
)

// DefaultChunkSize is the default window size the producer reads per chunk.
const DefaultChunkSize = 1 << 20 // 1MiB

// Config holds the pipeline's tunables. Chunk size, magic, worker count,
// queue depth, codec, and level are all configuration rather than
// compile-time constants, so every one of them is testable.
type Config struct {
	chunkSize   int
	workers     int
	queueDepth  int
	compression format.CompressionType
	level       int
	magic       uint32
}

// Option is a functional option for configuring the pipeline.
type Option = options.Option[*Config]

// NewConfig creates a Config with defaults applied, then the given options.
//
// Defaults: 1MiB chunks, one worker per CPU, queue depth of twice the
// worker count, Flate compression at the library's balanced level, and the
// standard container magic.
func NewConfig(opts ...Option) (*Config, error) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	cfg := &Config{
		chunkSize:   DefaultChunkSize,
		workers:     workers,
		compression: format.CompressionFlate,
		level:       format.LevelDefault,
		magic:       section.DefaultMagic,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.queueDepth < 1 {
		cfg.queueDepth = 2 * cfg.workers
	}

	return cfg, nil
}

// Codec creates the chunk codec described by the config.
func (c *Config) Codec() (compress.Codec, error) {
	return compress.CreateCodec(c.compression, c.level, c.chunkSize)
}

// WithChunkSize sets the producer's read window size in bytes.
func WithChunkSize(size int) Option {
	return options.New(func(c *Config) error {
		if size < 1 {
			return fmt.Errorf("chunk size must be positive, got %d", size)
		}
		c.chunkSize = size

		return nil
	})
}

// WithWorkers sets the number of pool workers.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		c.workers = n

		return nil
	})
}

// WithQueueDepth bounds the pending queue. Submission blocks once the queue
// holds this many tasks, bounding in-flight memory to depth × chunk size.
func WithQueueDepth(depth int) Option {
	return options.New(func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("queue depth must be positive, got %d", depth)
		}
		c.queueDepth = depth

		return nil
	})
}

// WithCompression sets the per-chunk codec. Both sides of a container must
// use the same codec; the container records no codec id.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		switch comp {
		case format.CompressionNone, format.CompressionFlate, format.CompressionZstd,
			format.CompressionS2, format.CompressionLZ4:
			c.compression = comp
			return nil
		default:
			return fmt.Errorf("invalid compression type: %v", comp)
		}
	})
}

// WithLevel sets the compression level for level-aware codecs. Validation
// happens when the codec is created, since the valid range is per-codec.
func WithLevel(level int) Option {
	return options.NoError(func(c *Config) {
		c.level = level
	})
}

// WithMagic overrides the container magic constant. Both sides of a
// container must agree on the magic.
func WithMagic(magic uint32) Option {
	return options.NoError(func(c *Config) {
		c.magic = magic
	})
}
