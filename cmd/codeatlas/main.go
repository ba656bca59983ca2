package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/phuslu/log"

	"github.com/dshills/codeatlas/internal/config"
	"github.com/dshills/codeatlas/internal/history"
	"github.com/dshills/codeatlas/internal/indexer"
	"github.com/dshills/codeatlas/internal/logger"
	"github.com/dshills/codeatlas/internal/mcp"
	"github.com/dshills/codeatlas/internal/partition"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("CodeAtlas Index Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", history.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", history.DriverName)
		os.Exit(0)
	}

	if len(os.Args) > 1 && os.Args[1] == "index" {
		os.Exit(runIndex(os.Args[2:]))
	}

	runServe()
}

// runServe starts the MCP server on stdio. All logging goes to stderr
// because stdout carries the MCP protocol stream.
func runServe() {
	level := os.Getenv("CODEATLAS_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.Setup(level, os.Stderr)

	log.Info().
		Str("version", version).
		Str("build_mode", history.BuildMode).
		Str("driver", history.DriverName).
		Msg("CodeAtlas MCP server starting")

	server, err := mcp.NewServer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create MCP server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Info().Msg("MCP server ready, listening on stdio")
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}

	log.Info().Msg("server stopped")
}

// runIndex performs a one-shot index of a project root from the command line.
func runIndex(args []string) int {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	maxEntries := fs.Int("max-entries", 0, "cap on emitted entries (0 = config default)")
	partitionBy := fs.String("partition-by", "", "partition strategy: domain, importance, or none")
	outputDir := fs.String("output", "", "artifact directory (default: <root>/.codeatlas)")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger.Setup(*logLevel, os.Stderr)

	root := fs.Arg(0)
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve project root")
		return 1
	}

	cfg, err := config.Load(root)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}
	if *maxEntries > 0 {
		cfg.MaxEntries = *maxEntries
	}
	if *partitionBy != "" {
		cfg.PartitionBy = partition.Strategy(*partitionBy)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
		if !filepath.IsAbs(cfg.OutputDir) {
			cfg.OutputDir = filepath.Join(root, cfg.OutputDir)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	var provider history.Provider = history.NewGitProvider(root)
	cached, err := history.NewCachedProvider(provider, root, cfg.CachePath())
	if err != nil {
		log.Warn().Err(err).Msg("revision cache unavailable, continuing without it")
	} else {
		provider = cached
		defer cached.Close()
	}

	idx := indexer.New(provider, indexer.LogReporter{})
	stats, err := idx.Run(context.Background(), root, indexer.Options{
		ProjectName: cfg.ProjectName,
		MaxEntries:  cfg.MaxEntries,
		PartitionBy: cfg.PartitionBy,
		OutputDir:   cfg.OutputDir,
	})
	if err != nil {
		log.Error().Err(err).Msg("indexing failed")
		return 1
	}

	log.Info().
		Str("project", cfg.ProjectName).
		Int("files_indexed", stats.FilesIndexed).
		Int("entries_kept", stats.EntriesKept).
		Int("partitions", stats.PartitionsWritten).
		Dur("duration", stats.Duration).
		Msg("index complete")

	if stats.FilesFailed > 0 {
		log.Warn().Int("files_failed", stats.FilesFailed).Msg("some files could not be indexed")
	}
	return 0
}
