package api

import (
	"github.com/cooklang/cooklang-find/internal/recipe"
	"github.com/cooklang/cooklang-find/internal/tree"
)

// The DTO layer is a stateless projection: rich core types are flattened
// into primitive records on every call, never cached.

// MetadataView is the flattened frontmatter of a recipe.
type MetadataView struct {
	Title    string         `json:"title,omitempty"`
	Servings *int           `json:"servings,omitempty"`
	Tags     []string       `json:"tags"`
	ImageURL string         `json:"image_url,omitempty"`
	Raw      map[string]any `json:"raw,omitempty"`
}

// RecipeSummary is the lightweight projection used by search results and
// tree leaves.
type RecipeSummary struct {
	Name       string `json:"name,omitempty"`
	Path       string `json:"path,omitempty"`
	TitleImage string `json:"title_image,omitempty"`
	IsMenu     bool   `json:"is_menu"`
}

// RecipeDetail is the full projection of one recipe entry.
type RecipeDetail struct {
	Name         string             `json:"name,omitempty"`
	Path         string             `json:"path,omitempty"`
	FileName     string             `json:"file_name,omitempty"`
	IsMenu       bool               `json:"is_menu"`
	TitleImage   string             `json:"title_image,omitempty"`
	Content      string             `json:"content"`
	Metadata     MetadataView       `json:"metadata"`
	StepImages   []recipe.StepImage `json:"step_images"`
	RelatedFiles []string           `json:"related_files"`
}

// TreeNodeView is the recursive projection of a recipe tree node.
type TreeNodeView struct {
	Name     string                  `json:"name"`
	Path     string                  `json:"path"`
	Recipe   *RecipeSummary          `json:"recipe,omitempty"`
	Children map[string]TreeNodeView `json:"children,omitempty"`
}

// NewMetadataView flattens an entry's metadata.
func NewMetadataView(e *recipe.Entry) MetadataView {
	m := e.Metadata()
	view := MetadataView{Tags: nonNilSlice(m.Tags()), Raw: m.Raw()}
	if title, ok := m.Title(); ok {
		view.Title = title
	}
	if servings, ok := m.Servings(); ok {
		view.Servings = &servings
	}
	if url, ok := m.ImageURL(); ok {
		view.ImageURL = url
	}
	return view
}

// NewRecipeSummary flattens an entry without touching its content.
func NewRecipeSummary(e *recipe.Entry) RecipeSummary {
	return RecipeSummary{
		Name:       e.Name(),
		Path:       e.Path(),
		TitleImage: e.TitleImage(),
		IsMenu:     e.IsMenu(),
	}
}

// NewRecipeDetail fully flattens an entry. Reading the content of a
// path-backed entry can fail; that error is the caller's to surface.
func NewRecipeDetail(e *recipe.Entry) (RecipeDetail, error) {
	content, err := e.Content()
	if err != nil {
		return RecipeDetail{}, err
	}
	return RecipeDetail{
		Name:         e.Name(),
		Path:         e.Path(),
		FileName:     e.FileName(),
		IsMenu:       e.IsMenu(),
		TitleImage:   e.TitleImage(),
		Content:      content,
		Metadata:     NewMetadataView(e),
		StepImages:   nonNilSlice(e.StepImages().All()),
		RelatedFiles: nonNilSlice(e.RelatedFiles()),
	}, nil
}

// NewTreeNodeView recursively flattens a tree node.
func NewTreeNodeView(n *tree.Node) TreeNodeView {
	view := TreeNodeView{Name: n.Name, Path: n.Path}
	if n.Recipe != nil {
		summary := NewRecipeSummary(n.Recipe)
		view.Recipe = &summary
	}
	if len(n.Children) > 0 {
		view.Children = make(map[string]TreeNodeView, len(n.Children))
		for name, child := range n.Children {
			view.Children[name] = NewTreeNodeView(child)
		}
	}
	return view
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
