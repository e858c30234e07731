package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/parzip/parzip/errs"
	"github.com/parzip/parzip/log"
	"github.com/parzip/parzip/section"
)

// Decompress reconstructs the original file from a parzip container.
//
// Frames are read in file order, decompressed across the pool, and written
// back in strict chunk-index order with the same interleaved-drain
// discipline as Compress. The header's recorded original size is enforced:
// a container whose reassembled output length differs fails with
// errs.ErrSizeMismatch rather than producing silently wrong output.
func Decompress(ctx context.Context, inputPath, outputPath string, opts ...Option) (stats Stats, err error) {
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

	br := bufio.NewReaderSize(in, writerBufferSize)

	header, err := section.ReadHeader(br, cfg.magic)
	if err != nil {
		return stats, err
	}

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

	log.L().Debug("decompress starting",
		zap.String("input", inputPath),
		zap.Uint64("originalSize", header.OriginalSize),
		zap.Int("workers", cfg.workers),
		zap.Stringer("compression", cfg.compression))

	wp := NewWorkerPool(cfg.workers, cfg.queueDepth, func(t *Task) ([]byte, error) {
		return codec.Decompress(t.Input)
	})
	unwatch := wp.WatchContext(ctx)
	defer unwatch()
	defer func() {
		if err != nil {
			wp.Fail(err)
		}
		wp.Close()
		wp.Wait()
	}()

	digest := xxhash.New()
	var next, submitted uint64
	var written uint64

	writeChunk := func(t *Task) error {
		if _, werr := bw.Write(t.Output); werr != nil {
			return fmt.Errorf("write chunk %d: %w", t.Index, werr)
		}
		_, _ = digest.Write(t.Output)
		written += uint64(len(t.Output))
		next++

		return nil
	}

	fr := section.NewFrameReader(br, uint64(fi.Size())-section.HeaderSize)

	for {
		payload, ferr := fr.Next()
		if errors.Is(ferr, io.EOF) {
			break
		}
		if ferr != nil {
			err = ferr
			return stats, err
		}

		if err = wp.Submit(ctx, &Task{Index: submitted, Input: payload}); err != nil {
			return stats, err
		}
		submitted++

		for {
			task, ok, derr := wp.TryTakeCompleted(next)
			if derr != nil {
				err = derr
				return stats, err
			}
			if !ok {
				break
			}
			if err = writeChunk(task); err != nil {
				return stats, err
			}
		}
	}

	wp.Close()
	for next < submitted {
		task, terr := wp.TakeCompleted(next)
		if terr != nil {
			err = terr
			return stats, err
		}
		if err = writeChunk(task); err != nil {
			return stats, err
		}
	}

	if err = bw.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	if written != header.OriginalSize {
		err = fmt.Errorf("%w: reassembled %d bytes, header records %d",
			errs.ErrSizeMismatch, written, header.OriginalSize)
		return stats, err
	}

	stats = Stats{
		Chunks:         int(submitted),
		OriginalSize:   int64(written),
		CompressedSize: fi.Size(),
		Digest:         digest.Sum64(),
		Workers:        cfg.workers,
		Elapsed:        time.Since(start),
	}

	log.L().Debug("decompress complete",
		zap.Int("chunks", stats.Chunks),
		zap.Int64("originalSize", stats.OriginalSize),
		zap.Uint64("digest", stats.Digest),
		zap.Duration("elapsed", stats.Elapsed))

	return stats, nil
}
