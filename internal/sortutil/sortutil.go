// Package sortutil holds the deterministic orderings used for output.
package sortutil

import "sort"

// StableSortBy returns a new slice with items ordered by key. Items with
// equal keys keep their input order. The original slice is not modified.
func StableSortBy[T any](items []T, key func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

// Dedup returns the strings of in without repeats, first occurrence kept.
func Dedup(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
