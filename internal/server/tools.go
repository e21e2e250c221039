package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "fondo_generate",
			Description: "Grow a coloured background image from seed points. Colour diffuses from each seed with small random steps " +
				"until every pixel is painted. Returns the image as base64 PNG, or writes it to 'output' when given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"size": map[string]interface{}{
						"type":        "string",
						"description": "Image size in WxH format. Default 500x500",
						"default":     "500x500",
					},
					"number": map[string]interface{}{
						"type":        "integer",
						"description": "Number of seed points. Random positions are added until this many exist",
					},
					"positions": map[string]interface{}{
						"type":        "string",
						"description": "Colon-separated list of x,y seed positions, e.g. 0,0:50,50",
					},
					"colours": map[string]interface{}{
						"type":        "string",
						"description": "Colon-separated list of r,g,b or #rrggbb seed colours. The last colour repeats for remaining seeds",
					},
					"random": map[string]interface{}{
						"type":        "boolean",
						"description": "Fill missing seed colours randomly instead of repeating the last one",
					},
					"delta": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum per-channel colour change per step (>= 1). Default 4",
						"default":     4,
					},
					"kind": map[string]interface{}{
						"type":        "string",
						"description": "Growth pattern: 0-100 (stack with that neighbour shuffle chance), 'tree', 'treerev', or 'default' (random)",
						"default":     "default",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed for reproducible output. 0 picks one from the clock",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor applied after growing. Default 1.0",
						"default":     1.0,
					},
					"smooth": map[string]interface{}{
						"type":        "number",
						"description": "Optional Gaussian blur radius applied after growing. Default 0 (off)",
						"default":     0,
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to write the image to (format from extension: png, jpg, gif, tif, bmp)",
					},
					"palette": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colours to report. Default 5, 0 disables",
						"default":     5,
					},
				},
			},
		},
		{
			Name:        "fondo_kinds",
			Description: "List the growth patterns accepted by fondo_generate's 'kind' argument.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
