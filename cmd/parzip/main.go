// Command parzip compresses and decompresses files through the parallel
// chunked pipeline.
//
// Usage:
//
//	parzip <compress|decompress> <input-path> <output-path>
//
// Setting PARZIP_DEBUG in the environment enables verbose pipeline
// diagnostics on stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/parzip/parzip/log"
	"github.com/parzip/parzip/pipeline"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: parzip <compress|decompress> <input-path> <output-path>")
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	if os.Getenv("PARZIP_DEBUG") != "" {
		if err := log.Init(true); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer log.L().Sync() //nolint:errcheck
	}

	if len(args) != 3 {
		usage(stderr)
		return 1
	}

	command, inputPath, outputPath := args[0], args[1], args[2]

	var (
		stats pipeline.Stats
		err   error
	)

	switch command {
	case "compress":
		stats, err = pipeline.Compress(ctx, inputPath, outputPath)
	case "decompress":
		stats, err = pipeline.Decompress(ctx, inputPath, outputPath)
	default:
		fmt.Fprintf(stderr, "Invalid command %q. Use 'compress' or 'decompress'\n", command)
		usage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log.L().Info("done",
		zap.String("command", command),
		zap.Int("chunks", stats.Chunks),
		zap.Int64("originalSize", stats.OriginalSize),
		zap.Int64("compressedSize", stats.CompressedSize),
		zap.Duration("elapsed", stats.Elapsed))

	return 0
}
