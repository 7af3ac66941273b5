package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/kgalign/pkg/compare"
	"github.com/athapong/kgalign/pkg/graph/storage"
)

// RegisterCompareTool exposes graph comparison over MCP. Graphs are referred
// to by their names in the snapshot store.
func RegisterCompareTool(s *server.MCPServer, store storage.GraphStore) {
	s.AddTool(mcp.NewTool(
		"compare_graphs",
		mcp.WithDescription("Compare a business knowledge graph against a programmatic one and report preservation, compliance and recommendations"),
		mcp.WithString("source_graph", mcp.Required(), mcp.Description("Name of the stored source (business) graph")),
		mcp.WithString("target_graph", mcp.Required(), mcp.Description("Name of the stored target (programmatic) graph")),
		mcp.WithNumber("entity_threshold", mcp.Description("Entity match acceptance threshold (default 0.15)")),
		mcp.WithNumber("relationship_threshold", mcp.Description("Relationship match acceptance threshold (default 0.2)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sourceName := mcp.ParseString(request, "source_graph", "")
		targetName := mcp.ParseString(request, "target_graph", "")

		defaults := compare.DefaultMatcherConfig()
		config := compare.MatcherConfig{
			EntityThreshold:       mcp.ParseFloat64(request, "entity_threshold", defaults.EntityThreshold),
			RelationshipThreshold: mcp.ParseFloat64(request, "relationship_threshold", defaults.RelationshipThreshold),
		}

		source, err := store.LoadGraph(ctx, sourceName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load source graph: %v", err)), nil
		}
		target, err := store.LoadGraph(ctx, targetName)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load target graph: %v", err)), nil
		}

		report := compare.NewComparator(config).Compare(source, target)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal report: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}
