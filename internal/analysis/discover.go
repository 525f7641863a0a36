package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	documentExts = []string{".json", ".yaml", ".yml"}

	// skippedSuffixes mirror files that never describe a component.
	skippedSuffixes = []string{"demo", "index", "metadata", "web-animations", "iron-jsonp-library"}
	skippedNames    = map[string]bool{"bower.json": true, "package.json": true, "package-lock.json": true}
	skippedDirs     = map[string]bool{"polymer": true}
)

// Discover lists analysis documents one level below root
// (<root>/<component dir>/<file>) in lexical order, returned relative to root.
func Discover(root string) ([]string, error) {
	out := make([]string, 0)
	for _, ext := range documentExts {
		matches, err := filepath.Glob(filepath.Join(root, "*", "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", root, err)
		}
		for _, m := range matches {
			rel, err := filepath.Rel(root, m)
			if err != nil {
				return nil, fmt.Errorf("discover %s: %w", root, err)
			}
			rel = filepath.ToSlash(rel)
			if skip(rel) {
				continue
			}
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out, nil
}

func skip(rel string) bool {
	dir, file, _ := strings.Cut(rel, "/")
	if skippedDirs[dir] || skippedNames[file] {
		return true
	}
	if strings.HasPrefix(file, "iron-doc") {
		return true
	}
	base := strings.TrimSuffix(file, filepath.Ext(file))
	for _, s := range skippedSuffixes {
		if strings.HasSuffix(base, s) {
			return true
		}
	}
	return false
}
