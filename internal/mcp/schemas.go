package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexCodebaseTool returns the tool definition for index_codebase
func indexCodebaseTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_codebase",
		Description: "Build the semantic index for a codebase and write its artifacts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
				"max_entries": map[string]interface{}{
					"type":        "integer",
					"description": "Cap on emitted index entries (overrides config)",
					"minimum":     1,
				},
				"partition_by": map[string]interface{}{
					"type":        "string",
					"description": "Partitioning strategy for output artifacts",
					"enum":        []string{"domain", "importance", "none"},
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchIndexTool returns the tool definition for search_index
func searchIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_index",
		Description: "Search a previously built index by keyword, domain, or tag",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the indexed project root",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Keyword matched against entry titles, summaries, and sources",
				},
				"domain": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one domain",
				},
				"tag": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to entries carrying this tag",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query index status and artifact inventory for a project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project root",
				},
			},
			Required: []string{"path"},
		},
	}
}
