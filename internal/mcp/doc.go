// Package mcp implements the Model Context Protocol (MCP) server for CodeAtlas.
//
// The MCP server exposes three tools to AI coding assistants (Claude Code, Codex CLI):
//   - index_codebase: Build the YAML index artifacts for a project
//   - search_index: Query indexed entries by keyword, domain, or tag
//   - get_status: Report run metadata, partitions, and domain rollups
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Basic Usage
//
// The MCP server is typically started via the serve command:
//
//	codeatlas serve
//
// It then listens on stdin for MCP protocol messages and writes responses to stdout.
//
// # Tool: index_codebase
//
// Index a project to produce its artifacts:
//
//	Request:
//	{
//	  "name": "index_codebase",
//	  "arguments": {
//	    "path": "/path/to/project",
//	    "max_entries": 500,
//	    "partition_by": "domain"
//	  }
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "project": "myapp",
//	  "files_indexed": 247,
//	  "chunks_created": 812,
//	  "entries_kept": 430,
//	  "partitions_written": 6,
//	  "duration_ms": 1840
//	}
//
// # Tool: search_index
//
// Query previously written artifacts:
//
//	Request:
//	{
//	  "name": "search_index",
//	  "arguments": {
//	    "path": "/path/to/project",
//	    "query": "websocket reconnect",
//	    "domain": "server",
//	    "limit": 10
//	  }
//	}
//
//	Response:
//	{
//	  "matched": 3,
//	  "results": [
//	    {
//	      "id": "doc-gateway#c02",
//	      "title": "function handleReconnect",
//	      "domain": "server",
//	      "source": "src/server/gateway.ts",
//	      "importance": 0.72
//	    }
//	  ]
//	}
//
// # Tool: get_status
//
// Check whether a project has artifacts and summarize them:
//
//	Request:
//	{
//	  "name": "get_status",
//	  "arguments": {
//	    "path": "/path/to/project"
//	  }
//	}
//
//	Response:
//	{
//	  "indexed": true,
//	  "project": "myapp",
//	  "run_id": "0b2f...",
//	  "entry_count": 430,
//	  "partitioned": true,
//	  "partitions": [...],
//	  "domains": [...]
//	}
//
// # MCP Client Configuration
//
// Configure in Claude Code's MCP settings:
//
//	{
//	  "mcpServers": {
//	    "codeatlas": {
//	      "command": "/usr/local/bin/codeatlas",
//	      "args": ["serve"]
//	    }
//	  }
//	}
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "Invalid params",
//	    "data": {
//	      "param": "path",
//	      "reason": "path does not exist"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (indexing, filesystem, etc.)
//   - -32001: Project not indexed
//   - -32002: Empty query (no query, domain, or tag supplied)
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol).
// Set log level via configuration or environment:
//
//	CODEATLAS_LOG_LEVEL=debug codeatlas serve
package mcp
