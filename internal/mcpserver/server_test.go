package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cooklang/cooklang-find/internal/api"
	"github.com/cooklang/cooklang-find/internal/recipeservice"
	"github.com/cooklang/cooklang-find/internal/testutil"
)

func testServer(t *testing.T, roots []string) *Server {
	t.Helper()
	return New(recipeservice.NewService(roots), "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go exposes no direct "call tool" test helper, so the tool handler
	// functions are invoked directly.
	var result *mcp.CallToolResult
	var err error
	switch name {
	case "get_recipe":
		result, err = srv.getRecipe(ctx, req)
	case "search_recipes":
		result, err = srv.searchRecipes(ctx, req)
	case "recipe_tree":
		result, err = srv.recipeTree(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestGetRecipeTool(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "pancakes", "---\ntitle: Fluffy Pancakes\n---\n\nMix @flour{}.")
	srv := testServer(t, []string{root})

	r := callTool(t, srv, "get_recipe", map[string]interface{}{"name": "pancakes"})
	if r.IsError {
		t.Fatalf("tool errored: %s", resultText(r))
	}
	var detail api.RecipeDetail
	if err := json.Unmarshal([]byte(resultText(r)), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Name != "Fluffy Pancakes" {
		t.Errorf("name = %q", detail.Name)
	}
	if !strings.Contains(detail.Content, "@flour{}") {
		t.Errorf("content = %q", detail.Content)
	}
}

func TestGetRecipeToolMissing(t *testing.T) {
	srv := testServer(t, []string{t.TempDir()})
	r := callTool(t, srv, "get_recipe", map[string]interface{}{"name": "ghost"})
	if !r.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(r), "not found") {
		t.Errorf("error text = %q", resultText(r))
	}
}

func TestGetRecipeToolMissingArgument(t *testing.T) {
	srv := testServer(t, []string{t.TempDir()})
	r := callTool(t, srv, "get_recipe", map[string]interface{}{})
	if !r.IsError {
		t.Fatal("expected error result for missing name")
	}
}

func TestSearchRecipesTool(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "tomato_soup", "Blend the @tomato{}.")
	testutil.WriteRecipe(t, root, "bread", "Plain loaf.")
	srv := testServer(t, []string{root})

	r := callTool(t, srv, "search_recipes", map[string]interface{}{"query": "tomato"})
	if r.IsError {
		t.Fatalf("tool errored: %s", resultText(r))
	}
	var results []api.RecipeSummary
	if err := json.Unmarshal([]byte(resultText(r)), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results) != 1 || results[0].Name != "tomato_soup" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearchRecipesToolUnknownRoot(t *testing.T) {
	srv := testServer(t, []string{t.TempDir()})
	r := callTool(t, srv, "search_recipes", map[string]interface{}{
		"query": "x",
		"root":  "/not/configured",
	})
	if !r.IsError {
		t.Fatal("expected error result for unknown root")
	}
}

func TestRecipeTreeTool(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "sides/salad", "Toss the @greens{}.")
	srv := testServer(t, []string{root})

	r := callTool(t, srv, "recipe_tree", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("tool errored: %s", resultText(r))
	}
	var view api.TreeNodeView
	if err := json.Unmarshal([]byte(resultText(r)), &view); err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	if _, ok := view.Children["sides"]; !ok {
		t.Errorf("tree = %+v", view)
	}
}

func TestRecipeFormatResource(t *testing.T) {
	srv := testServer(t, []string{t.TempDir()})
	contents, err := srv.readRecipeFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.Text == "" {
		t.Errorf("unexpected resource contents: %+v", contents[0])
	}
}
