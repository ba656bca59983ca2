package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/codeatlas/internal/config"
	"github.com/dshills/codeatlas/internal/index"
	"github.com/dshills/codeatlas/internal/indexer"
	"github.com/dshills/codeatlas/internal/partition"
	"github.com/dshills/codeatlas/internal/score"
	"github.com/dshills/codeatlas/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNotIndexed    = -32001 // Project has no index artifacts
	ErrorCodeEmptyQuery    = -32002 // No query or filter supplied
)

// Path validation errors
var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrNotDirectory    = errors.New("path is not a directory")
)

// handleIndexCodebase handles the index_codebase tool invocation
func (s *Server) handleIndexCodebase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	root, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if v, ok := args["max_entries"].(float64); ok && v >= 1 {
		cfg.MaxEntries = int(v)
	}
	if v, ok := args["partition_by"].(string); ok && v != "" {
		cfg.PartitionBy = partition.Strategy(v)
		if !cfg.PartitionBy.Valid() {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid partition_by", map[string]interface{}{
				"value":   v,
				"allowed": []string{"domain", "importance", "none"},
			})
		}
	}

	idx, cleanup := newIndexer(root, cfg)
	defer cleanup()

	stats, err := idx.Run(ctx, root, indexer.Options{
		ProjectName: cfg.ProjectName,
		MaxEntries:  cfg.MaxEntries,
		PartitionBy: cfg.PartitionBy,
		OutputDir:   cfg.OutputDir,
	})
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "indexing failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"indexed":            true,
		"project":            cfg.ProjectName,
		"files_discovered":   stats.FilesDiscovered,
		"files_indexed":      stats.FilesIndexed,
		"files_failed":       stats.FilesFailed,
		"chunks_created":     stats.ChunksCreated,
		"entries_kept":       stats.EntriesKept,
		"entries_filtered":   stats.EntriesFiltered,
		"partitions_written": stats.PartitionsWritten,
		"duration_ms":        stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
		} else {
			response["errors"] = stats.ErrorMessages
		}
		response["error_count"] = errorCount
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSearchIndex handles the search_index tool invocation
func (s *Server) handleSearchIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	root, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	query := getStringDefault(args, "query", "")
	domain := getStringDefault(args, "domain", "")
	tag := getStringDefault(args, "tag", "")
	if query == "" && domain == "" && tag == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "at least one of query, domain, or tag is required", nil)
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"value": limit,
		})
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	entries, err := index.LoadDir(cfg.OutputDir)
	if errors.Is(err, types.ErrNoArtifact) {
		return nil, newMCPError(ErrorCodeNotIndexed, "project not indexed; run index_codebase first", map[string]interface{}{
			"path": root,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load index", map[string]interface{}{
			"error": err.Error(),
		})
	}

	matches := filterEntries(entries, query, domain, tag)
	matches = score.Prioritize(matches, limit)

	results := make([]map[string]interface{}, 0, len(matches))
	for i := range matches {
		e := &matches[i]
		results = append(results, map[string]interface{}{
			"id":         e.ID,
			"title":      e.Title,
			"domain":     e.Domain,
			"source":     e.Source,
			"summary":    e.MiniSummary,
			"tags":       e.Tags,
			"importance": e.ImportanceScore,
			"freshness":  e.FreshnessScore,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"total_loaded": len(entries),
		"matched":      len(matches),
		"results":      results,
	})), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	root, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	mainPath, err := index.Find(cfg.OutputDir)
	if errors.Is(err, types.ErrNoArtifact) {
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"indexed": false,
			"path":    root,
			"message": "Project not indexed. Use index_codebase tool to build the index.",
		})), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to locate index", map[string]interface{}{
			"error": err.Error(),
		})
	}

	art, err := index.LoadArtifact(mainPath)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to read index", map[string]interface{}{
			"error": err.Error(),
		})
	}

	partitions := make([]map[string]interface{}, 0, len(art.Partitions))
	for _, ref := range art.Partitions {
		partitions = append(partitions, map[string]interface{}{
			"name":     ref.Name,
			"artifact": ref.Artifact,
			"count":    ref.Count,
		})
	}

	domains := make([]map[string]interface{}, 0, len(art.Domains))
	for _, r := range art.Domains {
		domains = append(domains, map[string]interface{}{
			"domain":          r.Domain,
			"count":           r.Count,
			"mean_importance": r.MeanImportance,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"indexed":      true,
		"artifact":     filepath.Base(mainPath),
		"project":      art.Run.Project,
		"run_id":       art.Run.RunID,
		"generated_at": art.Run.GeneratedAt,
		"entry_count":  art.Run.EntryCount,
		"partitioned":  art.IsManifest(),
		"partitions":   partitions,
		"domains":      domains,
	})), nil
}

// filterEntries applies the keyword/domain/tag filters.
func filterEntries(entries []types.IndexEntry, query, domain, tag string) []types.IndexEntry {
	query = strings.ToLower(query)

	var out []types.IndexEntry
	for _, e := range entries {
		if domain != "" && e.Domain != domain {
			continue
		}
		if tag != "" && !hasTag(e.Tags, tag) {
			continue
		}
		if query != "" && !matchesQuery(&e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e *types.IndexEntry, query string) bool {
	return strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.MiniSummary), query) ||
		strings.Contains(strings.ToLower(e.Source), query)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Helper functions

// requirePath extracts and validates the path argument.
func requirePath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if err := validatePath(path); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return path, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is an accessible directory
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return fmt.Errorf("path not readable: %w", err)
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
