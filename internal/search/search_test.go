package search

import (
	"os"
	"strings"
	"testing"

	"github.com/cooklang/cooklang-find/internal/recipe"
	"github.com/cooklang/cooklang-find/internal/testutil"
)

func names(entries []*recipe.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func assertOrder(t *testing.T, entries []*recipe.Entry, want ...string) {
	t.Helper()
	got := names(entries)
	if len(got) != len(want) {
		t.Fatalf("results = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("results = %v, want %v", got, want)
		}
	}
}

func TestRecipes_FilenameSignalOrdering(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "pasta", "Boil water, add salt.")
	testutil.WriteRecipe(t, root, "pasta_carbonara", "Boil water, add guanciale.")
	testutil.WriteRecipe(t, root, "risotto", "Stir often; a pasta pot helps.")
	testutil.WriteRecipe(t, root, "tiramisu", "No savoury ingredients at all.")

	entries, err := Recipes(root, "pasta")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	// exact stem > substring stem > content-only; no-signal files excluded.
	assertOrder(t, entries, "pasta", "pasta_carbonara", "risotto")
}

func TestRecipes_ContentScoreSeparatesMatches(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "a_one_mention", "chocolate")
	testutil.WriteRecipe(t, root, "b_many_mentions", "chocolate chocolate\nchocolate chocolate chocolate")

	entries, err := Recipes(root, "chocolate")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	assertOrder(t, entries, "b_many_mentions", "a_one_mention")
}

func TestRecipes_TieBreakByStemThenPath(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "zresto/lemon_pie", "lemon")
	testutil.WriteRecipe(t, root, "aresto/lemon_pie", "lemon")
	testutil.WriteRecipe(t, root, "apple_pie", "lemon")

	entries, err := Recipes(root, "lemon")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	// Same score everywhere: partial stem matches rank above the
	// content-only hit, equal stems fall back to path order.
	if len(entries) != 3 {
		t.Fatalf("results = %v", names(entries))
	}
	if entries[0].Path() >= entries[1].Path() {
		t.Errorf("equal stems not path-ordered: %q, %q", entries[0].Path(), entries[1].Path())
	}
	if entries[2].Name() != "apple_pie" {
		t.Errorf("content-only hit must rank last, got %v", names(entries))
	}
}

func TestRecipes_CaseInsensitive(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "Chicken_Soup", "Simmer the CHICKEN gently.")

	entries, err := Recipes(root, "chicken")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("results = %v, want one hit", names(entries))
	}
}

func TestRecipes_MultiTermQuery(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "both_terms", "tomato soup with basil")
	testutil.WriteRecipe(t, root, "one_term", "tomato salad")
	testutil.WriteRecipe(t, root, "neither", "plain bread")

	entries, err := Recipes(root, "tomato soup")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	assertOrder(t, entries, "both_terms", "one_term")
}

func TestRecipes_MenuFilesIncluded(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "week.menu", "Monday: gazpacho")

	entries, err := Recipes(root, "gazpacho")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(entries) != 1 || !entries[0].IsMenu() {
		t.Fatalf("results = %v, want the menu file", names(entries))
	}
}

func TestRecipes_Subdirectories(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "deep/nested/cellar/wine_sauce", "Reduce the wine.")

	entries, err := Recipes(root, "wine")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "wine_sauce" {
		t.Fatalf("results = %v", names(entries))
	}
}

func TestRecipes_NoMatchesEmpty(t *testing.T) {
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "bread", "Knead and rest.")

	entries, err := Recipes(root, "sushi")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("results = %v, want none", names(entries))
	}
}

func TestRecipes_MissingRootYieldsEmpty(t *testing.T) {
	entries, err := Recipes("/nonexistent/recipe/root", "anything")
	if err != nil {
		t.Fatalf("missing root must not error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("results = %v, want none", names(entries))
	}
}

func TestRecipes_LongLineKeepsContentSignal(t *testing.T) {
	root := t.TempDir()
	line := strings.Repeat("filler ", 10*1024) + "chocolate"
	testutil.WriteRecipe(t, root, "dense", line)

	entries, err := Recipes(root, "chocolate")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "dense" {
		t.Fatalf("results = %v, want the long-lined file", names(entries))
	}
}

func TestRecipes_UnreadableCandidateExcluded(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}
	root := t.TempDir()
	testutil.WriteRecipe(t, root, "lemon_cake", "Add lemon zest.")
	blocked := testutil.WriteRecipe(t, root, "archive", "lemon lemon lemon")
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatal(err)
	}

	// The unreadable file has no filename signal; its lost content signal
	// drops it to zero so the scan carries on without it.
	entries, err := Recipes(root, "lemon")
	if err != nil {
		t.Fatalf("unreadable non-matching candidate must not abort: %v", err)
	}
	assertOrder(t, entries, "lemon_cake")
}

func TestRecipes_UnreadableRankedCandidateAborts(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}
	root := t.TempDir()
	blocked := testutil.WriteRecipe(t, root, "lemon_tart", "filling")
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatal(err)
	}

	// The filename signal ranks the file, so loading it as an entry is
	// attempted and its failure surfaces to the caller.
	if _, err := Recipes(root, "lemon"); err == nil {
		t.Fatal("expected error when a ranked candidate cannot be loaded")
	}
}

func TestRecipes_IgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "notes.txt", "chocolate everywhere")
	testutil.WriteFile(t, root, "chocolate.md", "chocolate")

	entries, err := Recipes(root, "chocolate")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("results = %v, want none", names(entries))
	}
}
