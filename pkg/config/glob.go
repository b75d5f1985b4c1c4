package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/httpmock/pkg/rule"
)

// LoadGlob loads and concatenates the rules of every file matching the given
// patterns. Patterns may be plain paths or globs with ** for recursive
// matching. Files load in sorted order and each file is loaded once, however
// many patterns match it. ErrNoFiles is returned when nothing matches.
func LoadGlob(patterns ...string) ([]rule.Rule, error) {
	files, err := ExpandPatterns(patterns...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(patterns, ", "))
	}

	var rules []rule.Rule
	for _, f := range files {
		loaded, err := LoadFromFile(f)
		if err != nil {
			return nil, err
		}
		rules = append(rules, loaded...)
	}
	return rules, nil
}

// ExpandPatterns resolves patterns to a sorted, de-duplicated file list.
// A pattern without glob metacharacters is returned as is, so a missing
// file surfaces as ErrFileNotFound when loaded.
func ExpandPatterns(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		var matches []string
		if hasMeta(pattern) {
			var err error
			matches, err = expandGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
			}
		} else {
			matches = []string{pattern}
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob expands a glob pattern to a list of matching file paths.
// Uses doublestar for ** and {a,b} support, falls back to filepath.Glob for simple patterns.
func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") || strings.Contains(pattern, "{") {
		return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	}
	return filepath.Glob(pattern)
}
