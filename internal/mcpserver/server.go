// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the recipe library tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cooklang/cooklang-find/internal/api"
	"github.com/cooklang/cooklang-find/internal/apperr"
	"github.com/cooklang/cooklang-find/internal/recipeservice"
)

// Server wraps the MCP server with recipe library tools.
type Server struct {
	mcp *server.MCPServer
	svc *recipeservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *recipeservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"cooklang-find",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_recipe",
		mcp.WithDescription("Load a recipe or menu by name from the configured search roots. "+
			"Names without an extension probe .cook then .menu."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipe name, with or without extension")),
	), s.getRecipe)

	s.mcp.AddTool(mcp.NewTool("search_recipes",
		mcp.WithDescription("Relevance-ranked search across recipe filenames and contents."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query (space-separated terms)")),
		mcp.WithString("root", mcp.Description("Optional configured search root (defaults to the primary one)")),
	), s.searchRecipes)

	s.mcp.AddTool(mcp.NewTool("recipe_tree",
		mcp.WithDescription("Build the directory-mirroring tree of all recipes under a search root."),
		mcp.WithString("root", mcp.Description("Optional configured search root (defaults to the primary one)")),
	), s.recipeTree)

	// Resource: recipe format conventions.
	s.mcp.AddResource(
		mcp.NewResource("cooklang://recipe-format", "Recipe Format Conventions",
			mcp.WithResourceDescription("Filename and frontmatter conventions the library discovers recipes by."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecipeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.GetRecipe(ctx, name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := api.NewRecipeDetail(entry)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	root := req.GetString("root", "")
	entries, err := s.svc.Search(ctx, root, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := make([]api.RecipeSummary, len(entries))
	for i, e := range entries {
		results[i] = api.NewRecipeSummary(e)
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) recipeTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("root", "")
	node, err := s.svc.Tree(ctx, root)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(api.NewTreeNodeView(node), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readRecipeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "cooklang://recipe-format",
			MIMEType: "text/markdown",
			Text:     RecipeFormatConventions,
		},
	}, nil
}
