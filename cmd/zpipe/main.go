package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Kosikowski/swift-zlib-sub001/config"
	"github.com/Kosikowski/swift-zlib-sub001/internal/adapters/czlib"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
	"github.com/Kosikowski/swift-zlib-sub001/internal/core/services/fileproc"
	"github.com/Kosikowski/swift-zlib-sub001/pkg/logger"
)

var (
	flagConfig   string
	flagFormat   string
	flagLevel    int
	flagChunk    int
	flagQuiet    bool
	flagInterval time.Duration
)

func main() {
	root := &cobra.Command{
		Use:           "zpipe",
		Short:         "Streaming compression of files with bounded memory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "stream format: raw, zlib, gzip or auto (decompress only)")
	root.PersistentFlags().IntVarP(&flagLevel, "level", "l", domain.DefaultCompression, "compression level, -1 or 0-9")
	root.PersistentFlags().IntVar(&flagChunk, "chunk-size", 0, "chunk size in bytes")
	root.PersistentFlags().DurationVar(&flagInterval, "progress", time.Second, "interval between progress reports")
	root.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")

	root.AddCommand(newTransformCommand("compress", "Compress a file"))
	root.AddCommand(newTransformCommand("decompress", "Decompress a file"))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the native codec version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("zlib", czlib.Version())
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newTransformCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <source> <destination>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, name, args[0], args[1])
		},
	}
}

func runTransform(cmd *cobra.Command, op, src, dst string) error {
	log := logger.New("zpipe")
	defer log.Sync()

	cfg := config.DefaultConfig()
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the configuration file only when given explicitly.
	flags := cmd.Flags()
	if flagFormat != "" {
		cfg.Codec.Format = flagFormat
	}
	if flagChunk > 0 {
		cfg.File.ChunkSize = flagChunk
	}
	if flags.Changed("level") {
		cfg.Codec.Level = flagLevel
	}
	if flags.Changed("progress") {
		cfg.File.ProgressInterval = flagInterval
	}

	format, err := cfg.Codec.FormatVariant()
	if err != nil {
		return err
	}
	sopts := &domain.SessionOptions{
		Format:      format,
		Level:       cfg.Codec.Level,
		WindowSize:  cfg.Codec.WindowSize,
		MemoryLevel: cfg.Codec.MemoryLevel,
	}
	fopts := &domain.FileOptions{
		ChunkSize:        cfg.File.ChunkSize,
		ProgressInterval: cfg.File.ProgressInterval,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onProgress := fileproc.ProgressFunc(nil)
	if !flagQuiet {
		onProgress = printProgress
	}

	proc := fileproc.New(fopts, log)
	start := time.Now()
	if op == "compress" {
		err = proc.CompressFile(ctx, src, dst, sopts, onProgress)
	} else {
		err = proc.DecompressFile(ctx, src, dst, sopts, onProgress)
	}
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\n%s finished in %s\n", op, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func printProgress(snap domain.ProgressSnapshot) bool {
	if snap.TotalBytes > 0 {
		fmt.Fprintf(os.Stderr, "\r%s: %s / %s (%.1f%%) at %s/s",
			snap.Phase,
			humanize.Bytes(snap.ProcessedBytes),
			humanize.Bytes(snap.TotalBytes),
			snap.Percentage,
			humanize.Bytes(uint64(snap.Throughput)))
	} else {
		fmt.Fprintf(os.Stderr, "\r%s: %s at %s/s",
			snap.Phase,
			humanize.Bytes(snap.ProcessedBytes),
			humanize.Bytes(uint64(snap.Throughput)))
	}
	return true
}
