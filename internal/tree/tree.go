// Package tree assembles a directory-mirroring tree of every recipe under a
// root directory.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-zglob"

	"github.com/cooklang/cooklang-find/internal/apperr"
	"github.com/cooklang/cooklang-find/internal/recipe"
)

// Node is one node of the recipe tree: a directory (Children populated) or a
// recipe leaf (Recipe populated). The tree is rooted and acyclic; nodes hold
// no reference back to their parent.
type Node struct {
	Name     string
	Path     string
	Recipe   *recipe.Entry
	Children map[string]*Node
}

func newNode(name, path string) *Node {
	return &Node{Name: name, Path: path, Children: make(map[string]*Node)}
}

// Build scans root recursively for .cook files and assembles the tree. The
// root must exist and be a directory; every discovered recipe is loaded as
// an entry and inserted as a leaf named by its resolved name.
func Build(root string) (*Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("tree: %s: %w", root, apperr.ErrDirectoryNotFound)
		}
		return nil, fmt.Errorf("tree: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tree: %s: %w", root, apperr.ErrNotADirectory)
	}

	node := newNode(filepath.Base(root), root)

	matches, err := zglob.Glob(filepath.Join(root, "**", "*.cook"))
	if err != nil {
		return nil, fmt.Errorf("tree: glob %s: %w", root, err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		if !utf8.ValidString(path) {
			return nil, fmt.Errorf("tree: path contains invalid UTF-8: %q", path)
		}
		entry, err := recipe.FromPath(path)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("tree: %s: %w", path, apperr.ErrPathOutsideRoot)
		}

		current := node
		components := strings.Split(filepath.ToSlash(rel), "/")
		for _, dir := range components[:len(components)-1] {
			child, ok := current.Children[dir]
			if !ok {
				child = newNode(dir, filepath.Join(current.Path, dir))
				current.Children[dir] = child
			}
			current = child
		}

		leaf := newNode(entry.Name(), path)
		leaf.Recipe = entry
		current.Children[leaf.Name] = leaf
	}

	return node, nil
}

// Walk visits every node of the tree depth-first, parents before children.
// Children are visited in sorted name order so traversal is deterministic.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n.Children[name].Walk(visit)
	}
}

// Recipes returns every recipe entry in the tree in deterministic traversal
// order.
func (n *Node) Recipes() []*recipe.Entry {
	var out []*recipe.Entry
	n.Walk(func(node *Node) {
		if node.Recipe != nil {
			out = append(out, node.Recipe)
		}
	})
	return out
}
