package common

import (
	"fmt"
	"strings"
)

// Pair is one key=value entry of a comma separated list.
type Pair struct {
	Key   string
	Value string
}

// ParsePairs splits "a=x,b=y" into pairs. Blank entries are skipped;
// an entry without "=" or with an empty key, and repeated keys, are errors.
func ParsePairs(s string) ([]Pair, error) {
	var out []Pair
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("malformed entry %q, want key=value", part)
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate key %q", k)
		}
		seen[k] = true
		out = append(out, Pair{Key: k, Value: v})
	}
	return out, nil
}
