package seavision

import (
	"context"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/adapters/config"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/app/executor"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/app/pipeline"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/graph"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/ops"
)

// Re-export core types for convenience.
type (
	Buffer       = imaging.Buffer
	Region       = imaging.Region
	Graph        = graph.Graph
	Node         = graph.Node
	Stats        = executor.Stats
	ProgressFunc = executor.ProgressFunc

	PipelineConfig = config.PipelineConfig
	GraphConfig    = config.GraphConfig
)

// Runtime bundles an executor and a linear runner over one operation
// registry.
type Runtime struct {
	executor *executor.Executor
	runner   *pipeline.Runner
}

// NewRuntime constructs a runtime over the built-in operation registry.
func NewRuntime() *Runtime {
	return &Runtime{
		executor: executor.New(),
		runner:   pipeline.NewRunner(),
	}
}

// NewRuntimeWithRegistry constructs a runtime over a custom registry.
func NewRuntimeWithRegistry(registry *ops.Registry) *Runtime {
	return &Runtime{
		executor: executor.New(executor.WithRegistry(registry)),
		runner:   pipeline.NewRunnerWithRegistry(registry),
	}
}

// RunGraphFile loads a graph document and executes it with optional
// progress reporting, returning the terminal buffer.
func (rt *Runtime) RunGraphFile(ctx context.Context, path string, progress ProgressFunc) (*Buffer, error) {
	if err := rt.executor.LoadGraphFile(ctx, path); err != nil {
		return nil, err
	}
	return rt.executor.ExecuteWithProgress(ctx, progress)
}

// RunPipelineFile reads a pipeline document (auto-detecting its form),
// loads the input image, folds the operations and returns the result.
func (rt *Runtime) RunPipelineFile(ctx context.Context, path, inputImage string) (*Buffer, error) {
	cfg, err := config.ReadPipeline(path)
	if err != nil {
		return nil, err
	}
	input, err := imaging.Load(inputImage)
	if err != nil {
		return nil, err
	}
	return rt.runner.Run(ctx, cfg, input)
}

// Stats returns the statistics of the most recent graph run.
func (rt *Runtime) Stats() Stats {
	return rt.executor.Stats()
}
