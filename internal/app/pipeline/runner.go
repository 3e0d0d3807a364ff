// Package pipeline executes linear operation sequences by folding each
// step's result into the next step's input.
package pipeline

import (
	"context"
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/adapters/config"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/ops"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/ctxlog"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/infrastructure/metrics"
)

// Runner folds a linear pipeline over an input buffer.
type Runner struct {
	registry *ops.Registry
}

// NewRunner creates a runner backed by the default operation registry.
func NewRunner() *Runner {
	return &Runner{registry: ops.Default()}
}

// NewRunnerWithRegistry creates a runner with an explicit registry.
func NewRunnerWithRegistry(registry *ops.Registry) *Runner {
	return &Runner{registry: registry}
}

// Run applies every step in order, starting from input. A step declaring
// the whole image falls back to the pipeline's global region. Parameters
// are validated before each apply; a rejection aborts the run.
func (r *Runner) Run(ctx context.Context, cfg *config.PipelineConfig, input *imaging.Buffer) (*imaging.Buffer, error) {
	logger := ctxlog.FromContext(ctx)
	result := input

	for i, step := range cfg.Operations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		op, err := r.registry.Lookup(step.Type)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := op.ValidateParams(step.Parameters); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Type, err)
		}

		region := step.Region.ToRegion()
		if region.FullImage {
			region = cfg.GlobalRegion.ToRegion()
		}

		logger.Debug("applying operation", "step", i+1, "type", step.Type)
		result, err = op.Apply(result, region, step.Parameters)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Type, err)
		}
		metrics.IncOperationApplies(step.Type)
	}

	return result, nil
}
