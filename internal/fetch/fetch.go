// Package fetch resolves a recipe name against an ordered list of search
// roots into a single recipe entry.
package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cooklang/cooklang-find/internal/apperr"
	"github.com/cooklang/cooklang-find/internal/recipe"
)

// probeExtensions is the extension priority when the name carries none.
var probeExtensions = []string{".cook", ".menu"}

// Recipe finds the first entry matching name across roots, tried in order.
// A name with an explicit extension is probed literally; otherwise
// <name>.cook then <name>.menu are tried per root before moving on. A miss
// across all roots is apperr.ErrNotFound.
func Recipe(roots []string, name string) (*recipe.Entry, error) {
	for _, root := range roots {
		if filepath.Ext(name) != "" {
			path := filepath.Join(root, name)
			if fileExists(path) {
				return recipe.FromPath(path)
			}
			continue
		}
		for _, ext := range probeExtensions {
			path := filepath.Join(root, name+ext)
			if fileExists(path) {
				return recipe.FromPath(path)
			}
		}
	}
	return nil, fmt.Errorf("fetch: %q: %w", name, apperr.ErrNotFound)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
