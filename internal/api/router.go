package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/cooklang/cooklang-find/internal/recipeservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *recipeservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Recipe lookup by name.
	r.Get("/recipes/*", h.GetRecipe)

	// Relevance-ranked search.
	r.Get("/search", h.Search)

	// Directory-mirroring tree.
	r.Get("/tree", h.Tree)

	// Configured search roots.
	r.Get("/roots", h.Roots)

	return r
}
