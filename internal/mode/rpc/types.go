// ABOUTME: RPC request/response types for external comparison frontends
// ABOUTME: JSON-serializable types carried over the JSONL protocol

package rpc

// Request represents an RPC request from an external client.
type Request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Response represents an RPC response to an external client.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error represents an RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Methods
const (
	MethodCreate     = "create"
	MethodAction     = "action"
	MethodState      = "state"
	MethodResult     = "result"
	MethodClose      = "close"
	MethodListScales = "list_scales"
)
