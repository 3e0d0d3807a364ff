// Package seavision is the public facade of the pipeline system. It wires
// the configuration reader, operation registry and graph executor together
// so callers can run a pipeline document in one call without importing
// internal packages.
package seavision
