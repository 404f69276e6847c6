// Package recipeservice coordinates the discovery operations (fetch, search,
// tree) over the configured search roots for the API, MCP, and CLI surfaces.
package recipeservice

import (
	"context"
	"fmt"

	"github.com/cooklang/cooklang-find/internal/apperr"
	"github.com/cooklang/cooklang-find/internal/fetch"
	"github.com/cooklang/cooklang-find/internal/recipe"
	"github.com/cooklang/cooklang-find/internal/search"
	"github.com/cooklang/cooklang-find/internal/tree"
)

// Service owns the ordered list of search roots. It holds no other state;
// every call scans the filesystem on demand.
type Service struct {
	roots []string
}

// NewService creates a service over the given ordered search roots.
func NewService(roots []string) *Service {
	return &Service{roots: roots}
}

// Roots returns the configured search roots in priority order.
func (s *Service) Roots() []string {
	return s.roots
}

// resolveRoot maps an optional caller-supplied root onto the configured set.
// An empty root means the primary (first) one; anything else must match a
// configured root exactly so requests cannot roam the filesystem.
func (s *Service) resolveRoot(root string) (string, error) {
	if len(s.roots) == 0 {
		return "", fmt.Errorf("recipeservice: no search roots configured")
	}
	if root == "" {
		return s.roots[0], nil
	}
	for _, r := range s.roots {
		if r == root {
			return r, nil
		}
	}
	return "", fmt.Errorf("recipeservice: root %q: %w", root, apperr.ErrDirectoryNotFound)
}

// GetRecipe fetches one recipe by name across all roots in order.
func (s *Service) GetRecipe(_ context.Context, name string) (*recipe.Entry, error) {
	return fetch.Recipe(s.roots, name)
}

// Search runs a relevance-ranked search under one root (empty = primary).
func (s *Service) Search(_ context.Context, root, query string) ([]*recipe.Entry, error) {
	dir, err := s.resolveRoot(root)
	if err != nil {
		return nil, err
	}
	return search.Recipes(dir, query)
}

// Tree builds the directory-mirroring recipe tree under one root
// (empty = primary).
func (s *Service) Tree(_ context.Context, root string) (*tree.Node, error) {
	dir, err := s.resolveRoot(root)
	if err != nil {
		return nil, err
	}
	return tree.Build(dir)
}

// FromContent wraps raw document text as an entry, with an optional name.
func (s *Service) FromContent(_ context.Context, content, name string) *recipe.Entry {
	return recipe.FromContent(content, name)
}
