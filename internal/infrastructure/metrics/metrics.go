package metrics

import (
	"expvar"
)

// Per-operation apply counts keyed by operation name.
var operationApplies = expvar.NewMap("seavision_operation_applies_total")

// Executor metrics.
var (
	graphsLoaded     = new(expvar.Int)
	executionsTotal  = new(expvar.Int)
	executionsFailed = new(expvar.Int)
	nodesExecuted    = new(expvar.Int)
	lastExecutionMs  = new(expvar.Int)
)

func init() {
	expvar.Publish("seavision_graphs_loaded_total", graphsLoaded)
	expvar.Publish("seavision_executions_total", executionsTotal)
	expvar.Publish("seavision_executions_failed_total", executionsFailed)
	expvar.Publish("seavision_nodes_executed_total", nodesExecuted)
	expvar.Publish("seavision_last_execution_ms", lastExecutionMs)
}

// Executor helpers
func IncGraphsLoaded()            { graphsLoaded.Add(1) }
func IncExecutions()              { executionsTotal.Add(1) }
func IncExecutionsFailed()        { executionsFailed.Add(1) }
func AddNodesExecuted(n int64)    { nodesExecuted.Add(n) }
func SetLastExecutionMs(ms int64) { lastExecutionMs.Set(ms) }

// Operation helpers
func IncOperationApplies(name string) { operationApplies.Add(name, 1) }
