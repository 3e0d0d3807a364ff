package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/pkg/validation"
)

// rawDocument is used to sniff the document form before decoding fully.
type rawDocument struct {
	Nodes      json.RawMessage `json:"nodes"`
	Operations json.RawMessage `json:"operations"`
}

// isGraphForm reports whether the raw document carries a "nodes" array.
// A document with an "operations" array, or with neither, is linear.
func isGraphForm(raw rawDocument) bool {
	return len(raw.Nodes) > 0
}

// ReadPipeline reads a pipeline document, auto-detecting its form. A graph
// document is converted to linear form for callers that only fold
// operations.
func ReadPipeline(path string) (*PipelineConfig, error) {
	data, raw, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	if isGraphForm(raw) {
		graphCfg, err := decodeGraph(data, path)
		if err != nil {
			return nil, err
		}
		pipeline := ConvertGraphToPipeline(graphCfg)
		return pipeline, nil
	}

	var cfg PipelineConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	if cfg.Operations == nil {
		return nil, fmt.Errorf("%w: %q: pipeline must contain an \"operations\" array", ErrParse, path)
	}
	if err := validation.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	return &cfg, nil
}

// ReadGraph reads a graph document. Linear documents are rejected with
// ErrNotGraphForm.
func ReadGraph(path string) (*GraphConfig, error) {
	data, raw, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if !isGraphForm(raw) {
		return nil, fmt.Errorf("%w: %q: graph must contain a \"nodes\" array", ErrNotGraphForm, path)
	}
	return decodeGraph(data, path)
}

func readDocument(path string) ([]byte, rawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rawDocument{}, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, rawDocument{}, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	return data, raw, nil
}

func decodeGraph(data []byte, path string) (*GraphConfig, error) {
	var cfg GraphConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	for i := range cfg.Nodes {
		// display name defaults to the identifier
		if cfg.Nodes[i].Name == "" {
			cfg.Nodes[i].Name = cfg.Nodes[i].ID
		}
	}
	if err := validation.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
	}
	return &cfg, nil
}
