// Package jarsource turns the --jars CLI argument (a mix of file and
// directory paths) into the flat, ordered list of jar file paths the
// Pipeline reads, per spec §6: directories are flattened one level,
// filtered to *.jar.
package jarsource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves each input path: a file path is taken as-is (regardless
// of extension — an explicit path is trusted); a directory is listed
// one level deep and filtered to entries matching "*.jar". Input order is
// preserved, and directory entries are listed in the order os.ReadDir
// returns (lexical).
func Expand(paths []string) ([]string, error) {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("jarsource: stat %s: %w", p, err)
		}
		if !info.IsDir() {
			result = append(result, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("jarsource: list %s: %w", p, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			matched, err := doublestar.Match("*.jar", entry.Name())
			if err != nil || !matched {
				continue
			}
			result = append(result, filepath.Join(p, entry.Name()))
		}
	}
	return result, nil
}
