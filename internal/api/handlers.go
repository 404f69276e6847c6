package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cooklang/cooklang-find/internal/apperr"
	"github.com/cooklang/cooklang-find/internal/recipeservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *recipeservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *recipeservice.Service) *Handler {
	return &Handler{svc: svc}
}

// recipeName extracts the recipe name from the URL (everything after
// /recipes/). Supports encoded slashes for names in subdirectories.
func recipeName(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetRecipe handles GET /recipes/*. The name may carry an extension
// (literal lookup) or not (probes .cook then .menu per root).
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	name := recipeName(r)
	if name == "" {
		writeError(w, http.StatusBadRequest, "recipe name is required")
		return
	}
	entry, err := h.svc.GetRecipe(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get recipe failed", slog.String("name", name), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	detail, err := NewRecipeDetail(entry)
	if err != nil {
		slog.Error("read recipe failed", slog.String("name", name), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Search handles GET /search?q=...&root=....
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	root := r.URL.Query().Get("root")
	entries, err := h.svc.Search(r.Context(), root, q)
	if err != nil {
		if errors.Is(err, apperr.ErrDirectoryNotFound) {
			writeError(w, http.StatusBadRequest, "unknown root")
			return
		}
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	results := make([]RecipeSummary, len(entries))
	for i, e := range entries {
		results[i] = NewRecipeSummary(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
	})
}

// Tree handles GET /tree?root=....
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	node, err := h.svc.Tree(r.Context(), root)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrDirectoryNotFound):
			writeError(w, http.StatusBadRequest, "unknown root")
		case errors.Is(err, apperr.ErrNotADirectory):
			writeError(w, http.StatusBadRequest, "root is not a directory")
		default:
			slog.Error("tree failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, NewTreeNodeView(node))
}

// Roots handles GET /roots.
func (h *Handler) Roots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"roots": h.svc.Roots(),
	})
}
