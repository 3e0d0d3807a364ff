package graph

// Connection is a port-qualified directed edge from one node's output port
// to another node's input port. It is kept in sync with the plain
// adjacency lists on the endpoint nodes by every mutating graph operation.
type Connection struct {
	FromNode string `json:"from_node"`
	FromPort int    `json:"from_port"`
	ToNode   string `json:"to_node"`
	ToPort   int    `json:"to_port"`
}
