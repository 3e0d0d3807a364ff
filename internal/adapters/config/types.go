// Package config reads pipeline documents: JSON files describing either a
// linear operation list or a graph of named nodes, with lossless
// conversion between the two forms.
package config

import (
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

// RegionConfig is the stored form of a region of interest. A missing or
// zero-size region means "whole image".
type RegionConfig struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ToRegion converts to the domain region, deriving the full-image sentinel.
func (r *RegionConfig) ToRegion() imaging.Region {
	if r == nil {
		return imaging.FullRegion()
	}
	return imaging.NewRegion(r.X, r.Y, r.Width, r.Height)
}

// FromRegion converts a domain region back to its stored form.
func FromRegion(region imaging.Region) *RegionConfig {
	if region.FullImage {
		return nil
	}
	return &RegionConfig{X: region.X, Y: region.Y, Width: region.Width, Height: region.Height}
}

// OperationConfig is one step of a linear pipeline.
type OperationConfig struct {
	Type       string             `json:"type" validate:"required"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
	Region     *RegionConfig      `json:"roi,omitempty"`
}

// PipelineConfig is the linear pipeline document.
type PipelineConfig struct {
	GlobalRegion *RegionConfig     `json:"roi,omitempty"`
	Operations   []OperationConfig `json:"operations" validate:"dive"`
	InputImage   string            `json:"input_image,omitempty"`
	OutputImage  string            `json:"output_image,omitempty"`
}

// NodeConfig is one node of a graph document.
type NodeConfig struct {
	ID         string             `json:"id" validate:"required,node_id"`
	Name       string             `json:"name,omitempty"`
	Type       string             `json:"type" validate:"required"`
	Parameters map[string]float64 `json:"parameters,omitempty"`
	Inputs     []string           `json:"inputs,omitempty"`
	Region     *RegionConfig      `json:"roi,omitempty"`
	ImagePath  string             `json:"image_path,omitempty"`
}

// ConnectionConfig is a stored port-qualified edge.
type ConnectionConfig struct {
	FromNode string `json:"from_node" validate:"required"`
	FromPort int    `json:"from_port"`
	ToNode   string `json:"to_node" validate:"required"`
	ToPort   int    `json:"to_port"`
}

// GraphConfig is the graph pipeline document.
type GraphConfig struct {
	Nodes        []NodeConfig       `json:"nodes" validate:"dive"`
	Connections  []ConnectionConfig `json:"connections,omitempty" validate:"dive"`
	InputNodeID  string             `json:"input_node_id,omitempty"`
	OutputNodeID string             `json:"output_node_id,omitempty"`
	InputImage   string             `json:"input_image,omitempty"`
	OutputImage  string             `json:"output_image,omitempty"`
}
