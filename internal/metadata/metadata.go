// Package metadata extracts YAML frontmatter from recipe and menu documents
// and exposes typed accessors over the loosely-typed key/value block.
package metadata

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxFrontmatterLines bounds how many lines may sit between the frontmatter
// delimiters. A block that runs longer is treated as no frontmatter at all.
const maxFrontmatterLines = 30

// maxLineBytes bounds a single scanned line. A line this long cannot be a
// delimiter or a frontmatter entry, so hitting the bound means the document
// has no (valid) frontmatter, not that it is unreadable.
const maxLineBytes = 1 << 20

const delimiter = "---"

// Metadata is the parsed frontmatter of a single document. It is constructed
// once and never mutated afterwards.
type Metadata struct {
	data map[string]any
}

// ExtractString extracts frontmatter from in-memory document text.
// Malformed or missing frontmatter yields empty metadata, never an error.
func ExtractString(content string) Metadata {
	m, _ := ExtractReader(strings.NewReader(content))
	return m
}

// ExtractReader extracts frontmatter from a line stream. It reads no further
// than the closing delimiter (plus the line limit), so a caller handing it
// an open file pays only for the document head. The only errors returned are
// I/O errors from the reader; parse failures are absorbed into empty metadata.
func ExtractReader(r io.Reader) (Metadata, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return Metadata{}, nil // an oversized first line is never a delimiter
			}
			return Metadata{}, err
		}
		return Metadata{}, nil // empty document
	}
	if strings.TrimSpace(sc.Text()) != delimiter {
		return Metadata{}, nil // no frontmatter
	}

	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == delimiter {
			return parse(strings.Join(lines, "\n")), nil
		}
		lines = append(lines, line)
		if len(lines) > maxFrontmatterLines {
			// Runaway block: treat as no frontmatter rather than truncate.
			return Metadata{}, nil
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			// Oversized line inside the block: treat like a runaway block.
			return Metadata{}, nil
		}
		return Metadata{}, err
	}
	// No closing delimiter.
	return Metadata{}, nil
}

// parse unmarshals a raw YAML block into Metadata. Invalid YAML yields
// empty metadata.
func parse(block string) Metadata {
	if strings.TrimSpace(block) == "" {
		return Metadata{}
	}
	var data map[string]any
	if err := yaml.Unmarshal([]byte(block), &data); err != nil {
		return Metadata{}
	}
	return Metadata{data: data}
}

// Get returns the raw value for key, if present.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Len returns the number of frontmatter keys.
func (m Metadata) Len() int {
	return len(m.data)
}

// Raw returns a copy of the underlying key/value map.
func (m Metadata) Raw() map[string]any {
	if m.data == nil {
		return nil
	}
	out := make(map[string]any, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the metadata.
func (m Metadata) Clone() Metadata {
	return Metadata{data: m.Raw()}
}

// Title returns the string value of the "title" key, if present.
func (m Metadata) Title() (string, bool) {
	if s, ok := m.data["title"].(string); ok {
		return s, true
	}
	return "", false
}

// Servings returns the integer value of the "servings" key, if present.
func (m Metadata) Servings() (int, bool) {
	switch v := m.data["servings"].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Tags returns tags from the "tags" or "tag" key, first present wins.
// A string value is split on commas with empties dropped; a sequence value
// keeps only its string elements.
func (m Metadata) Tags() []string {
	for _, key := range []string{"tags", "tag"} {
		v, ok := m.data[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			var out []string
			for _, part := range strings.Split(t, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			return out
		case []any:
			var out []string
			for _, item := range t {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		default:
			return nil
		}
	}
	return nil
}

// ImageURL returns the primary image reference from metadata, scanning the
// keys "image", "images", "picture", "pictures" in order. A string value is
// returned directly; a sequence yields its first string element.
func (m Metadata) ImageURL() (string, bool) {
	for _, key := range []string{"image", "images", "picture", "pictures"} {
		v, ok := m.data[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t, true
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					return s, true
				}
			}
		}
	}
	return "", false
}
