package xgelf

import (
	"regexp"
	"sort"
)

// MatchKeys returns the keys that re matches in full. A match that covers
// only part of a key does not count, even for unanchored expressions.
// The result is deduplicated and sorted.
func MatchKeys(re *regexp.Regexp, keys []string) []string {
	if re == nil || len(keys) == 0 {
		return nil
	}
	return matchFull(anchored(re), keys)
}

func matchFull(full *regexp.Regexp, keys []string) []string {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if full.MatchString(k) {
			set[k] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// anchored wraps re so that it only matches the whole input. Go's regexp
// has no full-match call, and FindStringIndex would pick the leftmost
// match rather than one spanning the input for alternations like `a|ab`.
func anchored(re *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + re.String() + `)$`)
}
