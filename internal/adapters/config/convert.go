package config

import (
	"fmt"
)

// ConvertPipelineToGraph rewrites a linear pipeline as a graph: a
// synthesized source, one transform per operation named
// "<type>_<1-based index>", and a sink, chained in declaration order.
func ConvertPipelineToGraph(pipeline *PipelineConfig) *GraphConfig {
	graph := &GraphConfig{
		InputImage:  pipeline.InputImage,
		OutputImage: pipeline.OutputImage,
	}

	graph.Nodes = append(graph.Nodes, NodeConfig{
		ID:        "input",
		Name:      "input",
		Type:      "input",
		ImagePath: pipeline.InputImage,
	})
	graph.InputNodeID = "input"

	prevID := "input"
	for i, op := range pipeline.Operations {
		region := op.Region
		if region == nil {
			// full-image steps inherit the global region
			region = pipeline.GlobalRegion
		}
		node := NodeConfig{
			ID:         fmt.Sprintf("%s_%d", op.Type, i+1),
			Type:       op.Type,
			Parameters: op.Parameters,
			Region:     region,
			Inputs:     []string{prevID},
		}
		node.Name = node.ID
		graph.Nodes = append(graph.Nodes, node)
		prevID = node.ID
	}

	graph.Nodes = append(graph.Nodes, NodeConfig{
		ID:        "output",
		Name:      "output",
		Type:      "output",
		ImagePath: pipeline.OutputImage,
		Inputs:    []string{prevID},
	})
	graph.OutputNodeID = "output"

	return graph
}

// ConvertGraphToPipeline flattens a graph to a linear pipeline, keeping
// only transform nodes' type, parameters and region. Source/sink nodes and
// edge topology are intentionally dropped.
func ConvertGraphToPipeline(graph *GraphConfig) *PipelineConfig {
	pipeline := &PipelineConfig{
		Operations:  []OperationConfig{},
		InputImage:  graph.InputImage,
		OutputImage: graph.OutputImage,
	}
	for _, node := range graph.Nodes {
		if node.Type == "input" || node.Type == "output" {
			continue
		}
		pipeline.Operations = append(pipeline.Operations, OperationConfig{
			Type:       node.Type,
			Parameters: node.Parameters,
			Region:     node.Region,
		})
	}
	return pipeline
}
