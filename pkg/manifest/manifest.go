// Package manifest loads the batch file list: one input path per line.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads a newline-delimited list of file paths. Surrounding whitespace
// is trimmed and blank lines are skipped; everything else is kept verbatim,
// in file order. There are no comments and no quoting rules.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return paths, nil
}
