package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/kgalign/pkg/graph"
	"github.com/athapong/kgalign/pkg/graph/extract"
	kgmetrics "github.com/athapong/kgalign/pkg/graph/metrics"
	"github.com/athapong/kgalign/pkg/graph/storage"
)

// RegisterExtractTools exposes the convenience producers: they build a graph
// from raw contract text and persist it under a name for later comparison.
func RegisterExtractTools(s *server.MCPServer, store storage.GraphStore) {
	s.AddTool(mcp.NewTool(
		"extract_business_graph",
		mcp.WithDescription("Extract a business knowledge graph from natural-language contract text and store it"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to store the graph under")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Contract text")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kg, err := extract.NewBusinessExtractor().Extract(mcp.ParseString(request, "text", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
		}
		return storeExtracted(ctx, store, mcp.ParseString(request, "name", ""), kg)
	})

	s.AddTool(mcp.NewTool(
		"extract_solidity_graph",
		mcp.WithDescription("Extract a programmatic knowledge graph from Solidity source and store it"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to store the graph under")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Solidity source code")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kg := extract.NewSolidityExtractor().Extract(mcp.ParseString(request, "source", ""))
		return storeExtracted(ctx, store, mcp.ParseString(request, "name", ""), kg)
	})
}

func storeExtracted(ctx context.Context, store storage.GraphStore, name string, kg *graph.KnowledgeGraph) (*mcp.CallToolResult, error) {
	if err := store.StoreGraph(ctx, name, kg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store graph: %v", err)), nil
	}
	kgmetrics.Record(kg)

	summary, err := json.MarshalIndent(kg.Metadata(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal metadata: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Stored graph %q\n%s", name, summary)), nil
}
