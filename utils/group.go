// utils/group.go
package utils

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Group[T any] struct {
	Key   string `json:"key"`
	Items []T    `json:"items"`
}

// GroupBy buckets items by key, preserving first-seen key order and the
// input order within each bucket.
func GroupBy[T any](items []T, keyFn func(T) string) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, item := range items {
		key := keyFn(item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group[T]{Key: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// SortedGroupBy groups like GroupBy, then orders the buckets by the given
// comparator. Item order within buckets is untouched.
func SortedGroupBy[T any](items []T, keyFn func(T) string, less func(a, b string) bool) []Group[T] {
	groups := GroupBy(items, keyFn)
	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i].Key, groups[j].Key)
	})
	return groups
}

var (
	nameCollator   = collate.New(language.Chinese)
	nameCollatorMu sync.Mutex
)

// CollatedLess orders strings with a Chinese-aware collation so mixed
// Chinese/Latin names group the way the printable report expects. The
// collator buffers internally, hence the lock.
func CollatedLess(a, b string) bool {
	nameCollatorMu.Lock()
	defer nameCollatorMu.Unlock()
	return nameCollator.CompareString(a, b) < 0
}
