package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	keyTimeWidth = 13
	keySeparator = '#'
)

// OrderingKey builds the index key "<13-digit ms>#<id>". The fixed width keeps
// lexicographic order equal to numeric time order until the year 2286.
func OrderingKey(epochMs int64, id string) string {
	return fmt.Sprintf("%013d#%s", epochMs, id)
}

// SinceKey is the smallest key carrying the given timestamp: the empty id
// suffix sorts before every real id.
func SinceKey(epochMs int64) string {
	return OrderingKey(epochMs, "")
}

// ParseOrderingKey splits a key produced by OrderingKey. ok is false unless
// the key has exactly 13 leading digits, the separator and a non-empty id.
func ParseOrderingKey(key string) (epochMs int64, id string, ok bool) {
	if len(key) < keyTimeWidth+2 || key[keyTimeWidth] != keySeparator {
		return 0, "", false
	}
	ts := key[:keyTimeWidth]
	if strings.IndexFunc(ts, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, "", false
	}
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return ms, key[keyTimeWidth+1:], true
}
