package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExt is the file extension module paths resolve against when the
// import path itself carries none.
const sourceExt = ".sn"

// resolve turns an import path into an absolute file path, trying it
// relative to fromDir (the importing file's directory) before falling
// back to each configured search path in order, the way the teacher's
// FindUnit tries search paths in order and prefers an exact match.
func resolve(path string, fromDir string, searchPaths []string) (string, error) {
	candidates := candidatesFor(path)

	dirs := make([]string, 0, len(searchPaths)+1)
	if fromDir != "" {
		dirs = append(dirs, fromDir)
	}
	dirs = append(dirs, searchPaths...)

	var tried []string
	for _, dir := range dirs {
		for _, name := range candidates {
			full := filepath.Join(dir, name)
			tried = append(tried, full)
			if fileExists(full) {
				abs, err := filepath.Abs(full)
				if err != nil {
					return "", fmt.Errorf("module %q: %w", path, err)
				}
				return abs, nil
			}
		}
	}
	return "", fmt.Errorf("module %q not found, searched: %s", path, strings.Join(tried, ", "))
}

// candidatesFor returns the file names to try for an import path, in
// order: for a path with no extension, the path with the source
// extension appended and then the path as written; for a path with any
// extension, only the path as written.
func candidatesFor(path string) []string {
	if filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{path + sourceExt, path}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("module %q: %w", path, err)
	}
	return string(data), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
