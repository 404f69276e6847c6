package recipe

import (
	"os"
	"path/filepath"
	"regexp"
)

// refPattern matches ingredient-style cross-references to other documents:
// an @ followed by a relative path starting with ./ or ../, terminated by
// whitespace or an opening brace.
var refPattern = regexp.MustCompile(`@(\.\.?/[^\s{]+)`)

func (e *Entry) deriveRelatedFiles() []string {
	ps, ok := e.src.(PathSource)
	if !ok {
		return nil
	}
	abs, err := filepath.Abs(ps.Path)
	if err != nil {
		return nil
	}
	// The entry's own path is visited up front so a cycle back to it is
	// never followed and it never appears in the result.
	visited := map[string]struct{}{abs: {}}
	seen := make(map[string]struct{})
	var out []string
	collectRelated(abs, visited, seen, &out)
	return out
}

// collectRelated appends the title image and step images of the document at
// path, then follows its cross-references depth-first. visited guards
// against re-entering documents (cycles); seen deduplicates the flat result.
func collectRelated(path string, visited, seen map[string]struct{}, out *[]string) {
	if img := findTitleImage(path); img != "" {
		appendUnique(out, seen, img)
	}
	for _, si := range findStepImages(path).All() {
		appendUnique(out, seen, si.Path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Unreadable mid-scan: this document contributes no references.
		return
	}

	dir := filepath.Dir(path)
	refSeen := make(map[string]struct{})
	for _, m := range refPattern.FindAllStringSubmatch(string(data), -1) {
		ref := m[1]
		if _, dup := refSeen[ref]; dup {
			continue
		}
		refSeen[ref] = struct{}{}

		candidate := filepath.Join(dir, filepath.FromSlash(ref))
		if filepath.Ext(candidate) == "" {
			candidate += ".cook"
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if _, done := visited[abs]; done {
			continue
		}
		if _, err := os.Stat(abs); err != nil {
			// Reference to a missing file: silently dropped.
			continue
		}
		visited[abs] = struct{}{}
		appendUnique(out, seen, abs)
		collectRelated(abs, visited, seen, out)
	}
}

func appendUnique(out *[]string, seen map[string]struct{}, path string) {
	if _, dup := seen[path]; dup {
		return
	}
	seen[path] = struct{}{}
	*out = append(*out, path)
}
