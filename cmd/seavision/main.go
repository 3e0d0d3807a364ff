// Command seavision runs an image-processing pipeline described by a JSON
// document, in linear or graph mode.
//
// usage: seavision <pipeline.json> <input_image> <output_image> [--graph]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/ctxlog"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/pkg/seavision"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("seavision %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("usage: seavision <pipeline.json> <input_image> <output_image> [--graph]")
	}

	pipelineFile := args[0]
	inputImage := args[1]
	outputImage := args[2]
	useGraph := len(args) == 4 && args[3] == "--graph"

	// .env overrides are optional
	_ = godotenv.Load()
	logger := newLogger(os.Getenv("SEAVISION_LOG_LEVEL"))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	logger.Info("starting pipeline",
		"config", pipelineFile,
		"input", inputImage,
		"output", outputImage,
		"mode", mode(useGraph))

	rt := seavision.NewRuntime()

	var result *seavision.Buffer
	var err error
	if useGraph {
		result, err = rt.RunGraphFile(ctx, pipelineFile, func(name string, completed, total int) {
			fmt.Printf("node %d/%d: %s\n", completed, total, name)
		})
		if err == nil {
			stats := rt.Stats()
			logger.Info("graph execution completed",
				"total_nodes", stats.TotalNodes,
				"executed_nodes", stats.ExecutedNodes,
				"execution_time", stats.Duration)
		}
	} else {
		result, err = rt.RunPipelineFile(ctx, pipelineFile, inputImage)
	}
	if err != nil {
		return err
	}

	if err := imaging.Save(outputImage, result); err != nil {
		return err
	}
	logger.Info("output saved", "path", outputImage)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func mode(useGraph bool) string {
	if useGraph {
		return "graph"
	}
	return "linear"
}
