package frontend

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIncludes matches the usual C++ source and header extensions.
var defaultIncludes = []string{"**/*.cpp", "**/*.cc", "**/*.cxx", "**/*.h", "**/*.hpp"}

// DiscoverFiles walks root and returns the files matched by the
// include globs and not matched by any exclude glob, sorted for
// deterministic processing order. Patterns are doublestar globs
// relative to root.
func DiscoverFiles(root string, includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		includes = defaultIncludes
	}

	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		included, err := matchAny(includes, rel)
		if err != nil {
			return err
		}

		if !included {
			return nil
		}

		excluded, err := matchAny(excludes, rel)
		if err != nil {
			return err
		}

		if !excluded {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering input files under %s: %w", root, err)
	}

	sort.Strings(files)

	return files, nil
}

// matchAny reports whether any pattern matches the path.
func matchAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("bad glob %q: %w", pattern, err)
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}
