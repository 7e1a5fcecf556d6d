package kvgate

import (
	"fmt"
	"strings"
)

// ResolveKey extracts the lookup key from a raw request path.
//
// The path ends at the first whitespace character, if any, so a path that
// still carries trailing request-line text resolves the same as a clean one.
// A path whose length is at or above maxLen is rejected with ErrPathTooLong;
// maxLen <= 0 selects DefaultMaxPathLength.
//
// The key is everything after the final '/', or the whole path when there is
// no separator. A path ending in '/' yields the empty key, which is a valid
// key. No decoding or normalisation is applied.
func ResolveKey(rawPath string, maxLen int) ([]byte, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxPathLength
	}

	end := len(rawPath)
	if i := strings.IndexAny(rawPath, " \t\r\n"); i >= 0 {
		end = i
	}
	if end >= maxLen {
		return nil, fmt.Errorf("resolve key: %d bytes (limit %d): %w", end, maxLen, ErrPathTooLong)
	}

	path := rawPath[:end]
	start := strings.LastIndexByte(path, '/') + 1

	// always a fresh, non-nil slice so the empty key is distinct from "no key"
	key := make([]byte, end-start)
	copy(key, path[start:])
	return key, nil
}
