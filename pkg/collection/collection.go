// Package collection provides generic helpers for slices.
//
//	entries := collection.Map(items, toEntry)
//	veg := collection.Filter(items, func(m models.MenuItem) bool { return m.Category == "Veg" })
//	groups := collection.GroupBy(items, models.MenuItem.GroupLabel, models.CategoryRank)
package collection

import "sort"

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true. The result is
// never nil.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	if i := IndexOf(s, fn); i >= 0 {
		return s[i], true
	}
	var zero T
	return zero, false
}

// IndexOf returns the index of the first element matching fn, or -1.
func IndexOf[T any](s []T, fn func(T) bool) int {
	for i, v := range s {
		if fn(v) {
			return i
		}
	}
	return -1
}

// Sum sums numeric values extracted by fn.
func Sum[T any](s []T, fn func(T) float64) float64 {
	total := 0.0
	for _, v := range s {
		total += fn(v)
	}
	return total
}

// Group is one bucket produced by GroupBy.
type Group[T any] struct {
	Key   string `json:"category"`
	Items []T    `json:"items"`
}

// GroupBy partitions s by the key returned by fn. Groups come back ordered by
// rank(key) ascending, then by key; items keep their input order.
func GroupBy[T any](s []T, fn func(T) string, rank func(string) int) []Group[T] {
	index := map[string]int{}
	groups := make([]Group[T], 0)
	for _, v := range s {
		k := fn(v)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, v)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		ri, rj := rank(groups[i].Key), rank(groups[j].Key)
		if ri != rj {
			return ri < rj
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// SortBy sorts s in place, keeping equal elements in order.
func SortBy[T any](s []T, less func(a, b T) bool) []T {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i], s[j]) })
	return s
}
