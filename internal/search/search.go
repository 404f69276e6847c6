// Package search scans a directory subtree for recipe documents and ranks
// them against a free-text query.
package search

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-zglob"

	"github.com/cooklang/cooklang-find/internal/recipe"
)

// Scoring constants. The filename signal compares the whole query against
// the file stem; the content signal counts per-term substring occurrences
// with a flat participation bonus and a capped density bonus.
const (
	exactNameScore   = 20.0
	partialNameScore = 10.0
	contentBaseScore = 1.0
	contentPerMatch  = 0.1
	contentScoreCap  = 5.0
)

var documentPatterns = []string{"**/*.cook", "**/*.menu"}

// maxLineBytes bounds a single scanned content line; counting stops at the
// first longer line instead of failing the candidate.
const maxLineBytes = 1 << 20

// Recipes returns the entries under root matching query, ordered by
// descending relevance. Candidates whose total score is zero are excluded.
// An unreadable file only loses its content score during scanning, but a
// ranked candidate that cannot be loaded as an entry fails the whole call.
func Recipes(root, query string) ([]*recipe.Entry, error) {
	paths, err := rankedPaths(root, query)
	if err != nil {
		return nil, err
	}
	entries := make([]*recipe.Entry, 0, len(paths))
	for _, path := range paths {
		entry, err := recipe.FromPath(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type scored struct {
	path  string
	score float64
}

func rankedPaths(root, query string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // missing root yields no results, not an error
		}
		return nil, fmt.Errorf("search: stat root: %w", err)
	}

	queryLower := strings.ToLower(query)
	terms := strings.Fields(queryLower)

	var results []scored
	for _, pattern := range documentPatterns {
		matches, err := zglob.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("search: glob %s: %w", pattern, err)
		}
		for _, path := range matches {
			if !utf8.ValidString(path) {
				return nil, fmt.Errorf("search: path contains invalid UTF-8: %q", path)
			}
			score := scoreFilename(path, queryLower) + scoreContent(path, terms)
			if score > 0 {
				results = append(results, scored{path: path, score: score})
			}
		}
	}

	sortResults(results)

	paths := make([]string, len(results))
	for i, r := range results {
		paths[i] = r.path
	}
	return paths, nil
}

// scoreFilename compares the whole lower-cased query against the file stem.
func scoreFilename(path, queryLower string) float64 {
	name := strings.ToLower(stem(path))
	switch {
	case name == queryLower:
		return exactNameScore
	case strings.Contains(name, queryLower):
		return partialNameScore
	default:
		return 0
	}
}

// scoreContent counts term occurrences line by line. Read failures are
// swallowed: a candidate that vanished mid-scan simply contributes nothing.
func scoreContent(path string, terms []string) float64 {
	matches, err := countMatches(path, terms)
	if err != nil || matches == 0 {
		return 0
	}
	return contentBaseScore + min(contentPerMatch*float64(matches), contentScoreCap)
}

func countMatches(path string, terms []string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	total := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.ToLower(sc.Text())
		for _, term := range terms {
			total += strings.Count(line, term)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return total, nil // keep the counts gathered before the oversized line
		}
		return 0, err
	}
	return total, nil
}

// sortResults orders by descending score, then ascending lower-cased stem,
// then path, so the ranking is deterministic regardless of filesystem
// enumeration order.
func sortResults(results []scored) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		si, sj := strings.ToLower(stem(results[i].path)), strings.ToLower(stem(results[j].path))
		if si != sj {
			return si < sj
		}
		return results[i].path < results[j].path
	})
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
