package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/kgalign/pkg/graph/analytics"
	"github.com/athapong/kgalign/pkg/graph/storage"
	"github.com/athapong/kgalign/pkg/graph/visualizer"
)

// RegisterGraphTools exposes search, analysis, export and visualization over
// stored graphs.
func RegisterGraphTools(s *server.MCPServer, store storage.GraphStore) {
	s.AddTool(mcp.NewTool(
		"search_entities",
		mcp.WithDescription("Search entities of a stored graph by text or type"),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Name of the stored graph")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithString("fields", mcp.Description("Comma-separated fields to search (default text,type)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kg, err := store.LoadGraph(ctx, mcp.ParseString(request, "graph", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load graph: %v", err)), nil
		}
		var fields []string
		if raw := mcp.ParseString(request, "fields", ""); raw != "" {
			for _, f := range strings.Split(raw, ",") {
				fields = append(fields, strings.TrimSpace(f))
			}
		}
		results := kg.SearchEntities(mcp.ParseString(request, "query", ""), fields...)
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	s.AddTool(mcp.NewTool(
		"analyze_graph",
		mcp.WithDescription("Compute statistics, centrality measures and communities for a stored graph, optionally with a shortest path between two entities"),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Name of the stored graph")),
		mcp.WithString("from", mcp.Description("Optional entity id to start a shortest-path query from")),
		mcp.WithString("to", mcp.Description("Optional entity id to find a shortest path to")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kg, err := store.LoadGraph(ctx, mcp.ParseString(request, "graph", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load graph: %v", err)), nil
		}
		analysis := map[string]interface{}{
			"statistics":  kg.Statistics(),
			"centrality":  analytics.Centrality(kg),
			"communities": analytics.Communities(kg),
		}
		from := mcp.ParseString(request, "from", "")
		to := mcp.ParseString(request, "to", "")
		if from != "" && to != "" {
			if path, ok := analytics.ShortestPath(kg, from, to); ok {
				analysis["shortest_path"] = path
			} else {
				analysis["shortest_path"] = []string{}
			}
		}
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal analysis: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	s.AddTool(mcp.NewTool(
		"export_graph",
		mcp.WithDescription("Export a stored graph to JSON, CSV and GraphML files"),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Name of the stored graph")),
		mcp.WithString("directory", mcp.Required(), mcp.Description("Output directory")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := mcp.ParseString(request, "graph", "")
		kg, err := store.LoadGraph(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load graph: %v", err)), nil
		}
		written := storage.ExportAll(kg, mcp.ParseString(request, "directory", ""), name)
		data, err := json.MarshalIndent(written, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal export summary: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	s.AddTool(mcp.NewTool(
		"visualize_graph",
		mcp.WithDescription("Render a stored graph as an interactive HTML page"),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Name of the stored graph")),
		mcp.WithString("output", mcp.Required(), mcp.Description("Output HTML file path")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := mcp.ParseString(request, "graph", "")
		kg, err := store.LoadGraph(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load graph: %v", err)), nil
		}
		output := mcp.ParseString(request, "output", "")
		if err := visualizer.RenderHTML(kg, name, output); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render graph: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Visualization written to %s", output)), nil
	})
}
