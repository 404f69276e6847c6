package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/cooklang/cooklang-find/internal"
	"github.com/cooklang/cooklang-find/internal/api"
	pkgconfig "github.com/cooklang/cooklang-find/pkg/config"
)

const version = "1.0.0"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cmd.IsSet("roots") {
		cfg.Library.Roots = cmd.StringSlice("roots")
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

func getRecipe(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("usage: get <name>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	entry, err := internal.NewService(cfg).GetRecipe(ctx, name)
	if err != nil {
		return err
	}
	detail, err := api.NewRecipeDetail(entry)
	if err != nil {
		return err
	}
	return printJSON(detail)
}

func searchRecipes(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("usage: search <query>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	entries, err := internal.NewService(cfg).Search(ctx, cmd.String("root"), query)
	if err != nil {
		return err
	}
	results := make([]api.RecipeSummary, len(entries))
	for i, e := range entries {
		results[i] = api.NewRecipeSummary(e)
	}
	return printJSON(results)
}

func recipeTree(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	node, err := internal.NewService(cfg).Tree(ctx, cmd.String("root"))
	if err != nil {
		return err
	}
	return printJSON(api.NewTreeNodeView(node))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
	rootsFlag := &cli.StringSliceFlag{
		Name:  "roots",
		Usage: "Recipe search roots in priority order (overrides config)",
	}
	rootFlag := &cli.StringFlag{
		Name:  "root",
		Usage: "Search root to scan (defaults to the primary configured root)",
	}

	cmd := &cli.Command{
		Name:    "cooklang-find",
		Usage:   "Discover, search, and organize Cooklang recipe files",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Flags:  []cli.Flag{configFlag, rootsFlag},
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Flags:  []cli.Flag{configFlag, rootsFlag},
				Action: serveMCP,
			},
			{
				Name:      "get",
				Usage:     "Fetch one recipe by name and print it as JSON",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{configFlag, rootsFlag},
				Action:    getRecipe,
			},
			{
				Name:      "search",
				Usage:     "Search recipes by relevance and print matches as JSON",
				ArgsUsage: "<query>",
				Flags:     []cli.Flag{configFlag, rootsFlag, rootFlag},
				Action:    searchRecipes,
			},
			{
				Name:   "tree",
				Usage:  "Print the recipe directory tree as JSON",
				Flags:  []cli.Flag{configFlag, rootsFlag, rootFlag},
				Action: recipeTree,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
