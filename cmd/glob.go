// Copyright © 2026 The elmguard authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandArgs expands arguments, resolving patterns ending with "/..." to
// all .elm files found recursively under the given directory, then applies
// exclude patterns. Non-pattern arguments pass through unchanged.
func expandArgs(args []string, excludes []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findElmFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
		} else {
			out = append(out, arg)
		}
	}
	return filterExcludes(out, excludes), nil
}

func findElmFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// elm-stuff holds build artifacts and dependency sources.
			if info.Name() == "elm-stuff" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".elm") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// filterExcludes drops paths matched by any exclude pattern. A pattern
// excludes a path when it globs the whole slash path, globs the base name,
// or names one of the path's directory components.
func filterExcludes(paths []string, excludes []string) []string {
	if len(excludes) == 0 {
		return paths
	}
	var out []string
	for _, path := range paths {
		if !excluded(path, excludes) {
			out = append(out, path)
		}
	}
	return out
}

func excluded(path string, excludes []string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range excludes {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, filepath.Base(path)); err == nil && ok {
			return true
		}
		for _, seg := range strings.Split(filepath.Dir(slashed), "/") {
			if seg == pattern {
				return true
			}
		}
	}
	return false
}
