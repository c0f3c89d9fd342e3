package socketrpc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// JSON-RPC 2.0 Method Reference
//
// The socket RPC server exposes model.CatalogQuerier over a Unix domain
// socket, one newline-delimited JSON object per message. Each method maps
// 1:1 to the CatalogQuerier interface.
//
//   Method         Params                                   Result
//   ───────────    ───────────────────────────────────────  ───────────────
//   AllProducts    (none)                                   []Product
//   Products       {Query: {category: string, search: string}}  []Product
//   Product        {ID: int}                                Product
//   Categories     (none)                                   []string
//   Featured       (none)                                   []Product
//   Trending       {Limit: int}                             []Product
//   Discounted     {Limit: int}                             []Product
//
// Products, Trending and Discounted accept empty or null params (no filter,
// no limit).
//
// Error codes follow JSON-RPC 2.0:
//   -32700  Parse error (malformed JSON)
//   -32601  Method not found
//   -32602  Invalid params
//   -32603  Internal error (marshal failure)
//   -32000  Application error (query failure)
//   -32004  Product not found

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
	codeApplication    = -32000
	codeNotFound       = -32004
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return e.Message }

// DefaultSocketPath returns the default Unix socket path.
// It prefers $XDG_RUNTIME_DIR/pharmacare/pharmacare.sock, falling back to
// ~/.local/state/pharmacare/pharmacare.sock.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "pharmacare", "pharmacare.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/pharmacare.sock"
	}
	return filepath.Join(home, ".local", "state", "pharmacare", "pharmacare.sock")
}
