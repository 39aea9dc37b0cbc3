package utils

// SeenFilter drops repeated keys from a stream, keeping the first occurrence.
// It is not safe for concurrent use; create one per query.
type SeenFilter[K comparable] struct {
	seen map[K]struct{}
}

// NewSeenFilter creates a filter sized for about n distinct keys.
func NewSeenFilter[K comparable](n int) *SeenFilter[K] {
	if n < 0 {
		n = 0
	}
	return &SeenFilter[K]{seen: make(map[K]struct{}, n)}
}

// ShouldInclude checks if key is new to the filter.
// Returns true the first time a key is offered, false for every repeat.
func (f *SeenFilter[K]) ShouldInclude(key K) bool {
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}

// Len returns how many distinct keys were accepted.
func (f *SeenFilter[K]) Len() int {
	return len(f.seen)
}
