// Command scale-build generates Rust modules from a FileDescriptorSet
// without going through protoc's plugin protocol.
//
//	protoc --include_imports --include_source_info -o set.pb foo.proto
//	scale-build -descriptor_set set.pb -out src/generated -include_file mod.rs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
	"github.com/alis-exchange/protoc-gen-scale/config"
	"github.com/alis-exchange/protoc-gen-scale/output"
	"github.com/alis-exchange/protoc-gen-scale/services"
)

type options struct {
	descriptorSet string
	outDir        string
	configPath    string
	manifestPath  string
	includeFile   string
	services      string
	workers       int
	verbose       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.descriptorSet, "descriptor_set", "", "FileDescriptorSet to generate from (required)")
	flag.StringVar(&opts.outDir, "out", ".", "output directory")
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flag.StringVar(&opts.manifestPath, "manifest", "", "write a JSON manifest of the written files")
	flag.StringVar(&opts.includeFile, "include_file", "", "write an include file nesting every module")
	flag.StringVar(&opts.services, "services", "", "service generator: "+strings.Join(services.Names(), ", "))
	flag.IntVar(&opts.workers, "workers", 0, "parallel file writes (default GOMAXPROCS)")
	flag.BoolVar(&opts.verbose, "v", false, "log every written file")
	flag.Parse()

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("scale-build failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	if opts.descriptorSet == "" {
		return errors.New("-descriptor_set is required")
	}

	// --- Load Descriptors ---
	data, err := os.ReadFile(opts.descriptorSet)
	if err != nil {
		return fmt.Errorf("read descriptor set: %w", err)
	}
	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("unmarshal descriptor set: %w", err)
	}
	// Link the set once so unresolved imports and type names fail here rather
	// than as dangling Rust paths.
	if _, err := protodesc.NewFiles(fds); err != nil {
		return fmt.Errorf("invalid descriptor set: %w", err)
	}

	// --- Configuration ---
	cfg := codegen.NewConfig()
	if opts.configPath != "" {
		f, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		if err := f.Apply(cfg, logger); err != nil {
			return err
		}
	}
	if opts.includeFile != "" {
		cfg.IncludeFile(opts.includeFile)
	}
	if opts.services != "" {
		sg, err := services.New(opts.services, logger)
		if err != nil {
			return err
		}
		cfg.ServiceGenerator(sg)
	}

	// --- Generate ---
	requests := make([]codegen.Request, 0, len(fds.GetFile()))
	for _, f := range fds.GetFile() {
		requests = append(requests, codegen.NewRequest(f))
	}
	result, err := codegen.Generate(cfg, requests, codegen.WithLogger(logger))
	if err != nil {
		return err
	}

	// --- Write ---
	manifest, err := output.NewWriter(opts.outDir).
		WithWorkers(opts.workers).
		WithLogger(logger).
		Write(ctx, result)
	if err != nil {
		return err
	}
	logger.Info("generated", "files", len(manifest.Files), "changed", len(manifest.ChangedFiles()))

	if opts.manifestPath != "" {
		return output.WriteManifest(opts.manifestPath, manifest)
	}
	return nil
}
