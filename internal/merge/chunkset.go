package merge

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// chunkPattern matches uploaded chunk files inside a session directory.
const chunkPattern = "chunk*.mp4"

// MarkerFileName is the sentinel written when all chunks for a session
// stream have been uploaded.
const MarkerFileName = "done.txt"

// ResolveChunkSet discovers chunk files in dir and returns them ordered
// ascending by the numeric sequence embedded in each filename. Returns
// ErrNoChunks when the directory holds no matching files.
func ResolveChunkSet(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, chunkPattern))
	if err != nil {
		return nil, fmt.Errorf("globbing chunks in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChunks, dir)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return sequenceNumber(matches[i]) < sequenceNumber(matches[j])
	})
	return matches, nil
}

// sequenceNumber extracts the chunk sequence from a filename by stripping
// every non-digit character from the stem and parsing the remainder as an
// integer. A stem with no digits sorts first.
func sequenceNumber(path string) int {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var digits strings.Builder
	for _, r := range stem {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
