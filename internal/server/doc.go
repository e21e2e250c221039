// Package server exposes fondo generation to other programs.
//
// Two front ends share the same generation path (package generate):
// an MCP (Model Context Protocol) server over stdio and a small HTTP
// server with a websocket endpoint for streaming progress.
//
// # Protocol
//
// The MCP server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - fondo_generate: Grow an image and return it as base64 PNG, or write it
//     to the given output path. The dominant colours are reported alongside.
//   - fondo_kinds: List the accepted growth patterns.
//
// When a tools/call request carries "_meta": {"progressToken": ...},
// fondo_generate emits notifications/progress messages while growing.
//
// # HTTP
//
// NewHTTP returns an http.Handler with the routes:
//   - GET /generate: options as query parameters, responds with the encoded image
//   - GET /kinds: the growth patterns as JSON
//   - GET /ws: websocket; the client sends one options message and receives
//     progress messages followed by a result or error message
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
