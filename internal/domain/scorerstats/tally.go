package scorerstats

import "sort"

// tally counts occurrences per key and remembers first-seen order so that a
// stable sort keeps encounter order among equal counts.
type tally[K comparable, V any] struct {
	index map[K]int
	items []V
}

func newTally[K comparable, V any]() *tally[K, V] {
	return &tally[K, V]{index: make(map[K]int)}
}

// at returns the entry for key, creating it with init on first sight.
func (t *tally[K, V]) at(key K, init func() V) *V {
	if i, ok := t.index[key]; ok {
		return &t.items[i]
	}
	t.index[key] = len(t.items)
	t.items = append(t.items, init())
	return &t.items[len(t.items)-1]
}

func (t *tally[K, V]) sorted(count func(V) int) []V {
	out := make([]V, len(t.items))
	copy(out, t.items)
	sort.SliceStable(out, func(i, j int) bool {
		return count(out[i]) > count(out[j])
	})
	return out
}

func limit[V any](items []V, n int) []V {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
