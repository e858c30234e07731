package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/parzip/parzip/internal/pool"
	"github.com/parzip/parzip/log"
	"github.com/parzip/parzip/section"
)

// writerBufferSize is the bufio buffer for container reads and writes.
const writerBufferSize = 256 * 1024

// Compress compresses inputPath into a parzip container at outputPath.
//
// The input is read in chunk-size windows, compressed across the pool, and
// reassembled in strict chunk-index order. After each submission the driver
// opportunistically drains every result that is next in line, so output lags
// input by the pipeline's internal buffering rather than the whole file.
//
// On any error the output file is left in an unspecified partial state and
// must be discarded by the caller.
func Compress(ctx context.Context, inputPath, outputPath string, opts ...Option) (stats Stats, err error) {
	start := time.Now()

	cfg, err := NewConfig(opts...)
	if err != nil {
		return stats, err
	}

	codec, err := cfg.Codec()
	if err != nil {
		return stats, err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return stats, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return stats, fmt.Errorf("stat input: %w", err)
	}
	size := fi.Size()

	out, err := os.Create(outputPath)
	if err != nil {
		return stats, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	bw := bufio.NewWriterSize(out, writerBufferSize)

	header := section.NewHeader(cfg.magic, uint64(size))
	if _, err = bw.Write(header.Bytes()); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	chunkSize := int64(cfg.chunkSize)
	chunks := (size + chunkSize - 1) / chunkSize

	log.L().Debug("compress starting",
		zap.String("input", inputPath),
		zap.Int64("size", size),
		zap.Int64("chunks", chunks),
		zap.Int("workers", cfg.workers),
		zap.Stringer("compression", cfg.compression))

	wp := NewWorkerPool(cfg.workers, cfg.queueDepth, func(t *Task) ([]byte, error) {
		return codec.Compress(t.Input)
	})
	unwatch := wp.WatchContext(ctx)
	defer unwatch()
	defer func() {
		if err != nil {
			wp.Fail(err) // unblock workers before waiting for them
		}
		wp.Close()
		wp.Wait()
	}()

	digest := xxhash.New()
	compressedSize := int64(section.HeaderSize)
	next := uint64(0)

	writeFrame := func(t *Task) error {
		n, werr := section.WriteFrame(bw, t.Output)
		if werr != nil {
			return fmt.Errorf("write frame %d: %w", t.Index, werr)
		}
		compressedSize += int64(n)
		next++

		return nil
	}

	for idx := uint64(0); int64(idx) < chunks; idx++ {
		window := chunkSize
		if remain := size - int64(idx)*chunkSize; remain < window {
			window = remain
		}

		buf, release := pool.GetByteSlice(int(window))
		if _, err = io.ReadFull(in, buf); err != nil {
			return stats, fmt.Errorf("read chunk %d: %w", idx, err)
		}
		_, _ = digest.Write(buf)

		if err = wp.Submit(ctx, &Task{Index: idx, Input: buf, release: release}); err != nil {
			return stats, err
		}

		// Drain everything that is already next in line.
		for {
			task, ok, derr := wp.TryTakeCompleted(next)
			if derr != nil {
				err = derr
				return stats, err
			}
			if !ok {
				break
			}
			if err = writeFrame(task); err != nil {
				return stats, err
			}
		}
	}

	// All windows submitted; drain the rest strictly in order.
	wp.Close()
	for int64(next) < chunks {
		task, terr := wp.TakeCompleted(next)
		if terr != nil {
			err = terr
			return stats, err
		}
		if err = writeFrame(task); err != nil {
			return stats, err
		}
	}

	if err = bw.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	stats = Stats{
		Chunks:         int(chunks),
		OriginalSize:   size,
		CompressedSize: compressedSize,
		Digest:         digest.Sum64(),
		Workers:        cfg.workers,
		Elapsed:        time.Since(start),
	}

	log.L().Debug("compress complete",
		zap.Int("chunks", stats.Chunks),
		zap.Int64("compressedSize", stats.CompressedSize),
		zap.Float64("ratio", stats.CompressionRatio()),
		zap.Uint64("digest", stats.Digest),
		zap.Duration("elapsed", stats.Elapsed))

	return stats, nil
}
