// Package recipe implements the cached-lazy recipe entry: one discoverable
// .cook or .menu document together with its frontmatter metadata, title
// image, step images, and related-files closure.
package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cooklang/cooklang-find/internal/apperr"
	"github.com/cooklang/cooklang-find/internal/metadata"
)

// imageExtensions are the accepted image extensions in priority order.
var imageExtensions = []string{"jpg", "jpeg", "png", "webp"}

const menuExtension = ".menu"

// Entry is the unified representation of one document. The source and
// metadata are fixed at construction; everything else is derived at most
// once on first access and memoized for the life of the entry.
type Entry struct {
	src  Source
	meta metadata.Metadata

	name         func() string
	titleImage   func() string
	isMenu       func() bool
	stepImages   func() *StepImages
	relatedFiles func() []string
}

func newEntry(src Source, meta metadata.Metadata) *Entry {
	e := &Entry{src: src, meta: meta}
	e.name = sync.OnceValue(e.deriveName)
	e.titleImage = sync.OnceValue(e.deriveTitleImage)
	e.isMenu = sync.OnceValue(e.deriveIsMenu)
	e.stepImages = sync.OnceValue(e.deriveStepImages)
	e.relatedFiles = sync.OnceValue(e.deriveRelatedFiles)
	return e
}

// FromPath loads the entry backing file's frontmatter and constructs an
// entry. It fails if the file is unreadable or the path has no derivable
// stem; a frontmatter block that does not parse is absorbed into empty
// metadata.
func FromPath(path string) (*Entry, error) {
	if stem(path) == "" {
		return nil, fmt.Errorf("recipe: %q: %w", path, apperr.ErrInvalidPath)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: open %s: %w", path, err)
	}
	defer f.Close()

	meta, err := metadata.ExtractReader(f)
	if err != nil {
		return nil, fmt.Errorf("recipe: read %s: %w", path, err)
	}
	return newEntry(PathSource{Path: path}, meta), nil
}

// FromContent constructs an entry from in-memory document text. The name is
// optional and may be empty.
func FromContent(content, name string) *Entry {
	return newEntry(ContentSource{Content: content, Name: name}, metadata.ExtractString(content))
}

// Clone returns an independent copy: source and metadata are deep-copied and
// every lazy field is recomputed on its own.
func (e *Entry) Clone() *Entry {
	return newEntry(e.src.clone(), e.meta.Clone())
}

// Metadata returns the entry's frontmatter metadata.
func (e *Entry) Metadata() metadata.Metadata {
	return e.meta
}

// Path returns the backing file path, or "" for in-memory entries.
func (e *Entry) Path() string {
	if ps, ok := e.src.(PathSource); ok {
		return ps.Path
	}
	return ""
}

// FileName returns the base name of the backing file, or "" for in-memory
// entries.
func (e *Entry) FileName() string {
	if ps, ok := e.src.(PathSource); ok {
		return filepath.Base(ps.Path)
	}
	return ""
}

// Content returns the full document text. Path-backed entries re-read the
// file on every call so callers always observe the current bytes; the cost
// is repeated I/O and a possible error if the file has gone away.
func (e *Entry) Content() (string, error) {
	switch src := e.src.(type) {
	case PathSource:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("recipe: read %s: %w", src.Path, err)
		}
		return string(data), nil
	case ContentSource:
		return src.Content, nil
	default:
		return "", fmt.Errorf("recipe: unknown source %T", e.src)
	}
}

// Name returns the display name: metadata title, else the file stem, else
// the name provided with in-memory content. Empty means no name could be
// derived.
func (e *Entry) Name() string { return e.name() }

func (e *Entry) deriveName() string {
	if title, ok := e.meta.Title(); ok {
		return title
	}
	switch src := e.src.(type) {
	case PathSource:
		return stem(src.Path)
	case ContentSource:
		return src.Name
	}
	return ""
}

// TitleImage returns the metadata image reference if present, otherwise a
// same-stem sibling image file. Empty means no title image.
func (e *Entry) TitleImage() string { return e.titleImage() }

func (e *Entry) deriveTitleImage() string {
	if url, ok := e.meta.ImageURL(); ok {
		return url
	}
	if ps, ok := e.src.(PathSource); ok {
		return findTitleImage(ps.Path)
	}
	return ""
}

// IsMenu reports whether the backing file carries the .menu extension.
func (e *Entry) IsMenu() bool { return e.isMenu() }

func (e *Entry) deriveIsMenu() bool {
	ps, ok := e.src.(PathSource)
	return ok && filepath.Ext(ps.Path) == menuExtension
}

// StepImages returns the entry's step image collection, discovered by
// filename convention in the backing file's directory. In-memory entries
// have an empty collection.
func (e *Entry) StepImages() *StepImages { return e.stepImages() }

func (e *Entry) deriveStepImages() *StepImages {
	if ps, ok := e.src.(PathSource); ok {
		return findStepImages(ps.Path)
	}
	return newStepImages()
}

// RelatedFiles returns the transitive closure of auxiliary files reachable
// from this entry: its title image, its step images, and every existing
// cross-referenced document, recursively. See related.go.
func (e *Entry) RelatedFiles() []string { return e.relatedFiles() }

// findTitleImage looks for a sibling file sharing the stem of path with an
// accepted image extension, in priority order.
func findTitleImage(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range imageExtensions {
		candidate := base + "." + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// stem returns the file name of path without its final extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
