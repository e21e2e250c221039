package server

import (
	"encoding/json"
	"fmt"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/fondo/internal/config"
	"github.com/ironsheep/fondo/internal/generate"
	"github.com/ironsheep/fondo/internal/render"
)

// defaultPalette is the number of dominant colours reported when the
// client does not ask for a specific count.
const defaultPalette = 5

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "fondo_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token of the request.
	Meta *struct {
		ProgressToken interface{} `json:"progressToken,omitempty"`
	} `json:"_meta,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	var token interface{}
	if params.Meta != nil {
		token = params.Meta.ProgressToken
	}

	result, err := s.executeTool(params.Name, params.Arguments, token)
	if err != nil {
		log.WithError(err).WithField("tool", params.Name).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage, progressToken interface{}) (interface{}, error) {
	switch name {
	case "fondo_generate":
		return s.handleGenerate(args, progressToken)
	case "fondo_kinds":
		return config.Kinds(), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type generateArgs struct {
	config.Options
	// Palette is the number of dominant colours to report; nil selects the default.
	Palette *int `json:"palette,omitempty"`
}

// GenerateResult is returned by fondo_generate.
type GenerateResult struct {
	*generate.Result
	Path    string                  `json:"path,omitempty"`
	Encoded *render.EncodedImage    `json:"image,omitempty"`
	Palette []render.ColorFrequency `json:"palette,omitempty"`
}

func (a generateArgs) paletteSize() int {
	if a.Palette == nil {
		return defaultPalette
	}
	return *a.Palette
}

func (s *Server) handleGenerate(args json.RawMessage, progressToken interface{}) (interface{}, error) {
	var a generateArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	hooks := generate.Hooks{MaxPixels: s.maxPixels}
	if progressToken != nil && s.notify != nil {
		hooks.Progress = func(done, total int) {
			s.notify(&MCPNotification{
				JSONRPC: "2.0",
				Method:  "notifications/progress",
				Params: map[string]interface{}{
					"progressToken": progressToken,
					"progress":      done,
					"total":         total,
				},
			})
		}
	}

	// An empty output means "return the image inline", so keep it out of
	// FillDefaults.
	output := a.Output
	res, err := generate.Run(a.Options, hooks)
	if err != nil {
		return nil, err
	}
	return buildResult(res, output, a.paletteSize())
}

// buildResult saves or encodes the image and attaches the palette.
func buildResult(res *generate.Result, output string, palette int) (*GenerateResult, error) {
	out := &GenerateResult{Result: res}
	if palette > 0 {
		out.Palette = render.DominantColors(res.Image, palette).Colors
	}

	if output != "" {
		if err := render.Save(res.Image, output); err != nil {
			return nil, err
		}
		out.Path = output
		return out, nil
	}

	enc, err := render.Encode(res.Image, imaging.PNG)
	if err != nil {
		return nil, err
	}
	out.Encoded = enc
	return out, nil
}
