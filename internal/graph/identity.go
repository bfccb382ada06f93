package graph

// Index maps identity keys to stable sequential entry indices. It is the only
// deduplication mechanism in the graph: the same key admitted twice always
// resolves to the same index, regardless of fetch order.
type Index struct {
	slots map[string]int
	keys  []string
}

// NewIndex creates an empty identity index
func NewIndex() *Index {
	return &Index{slots: make(map[string]int)}
}

// Resolve returns the entry index for a key, if one was admitted
func (ix *Index) Resolve(key string) (int, bool) {
	idx, ok := ix.slots[key]
	return idx, ok
}

// Admit assigns the next sequential index to a key, or returns the existing
// index when the key was admitted before. The returned index is stable for the
// lifetime of the index.
func (ix *Index) Admit(key string) (int, bool) {
	if idx, ok := ix.slots[key]; ok {
		return idx, false
	}
	idx := len(ix.keys)
	ix.slots[key] = idx
	ix.keys = append(ix.keys, key)
	return idx, true
}

// Key returns the identity key admitted at an index
func (ix *Index) Key(idx int) string {
	return ix.keys[idx]
}

// Len returns the number of admitted entries
func (ix *Index) Len() int {
	return len(ix.keys)
}
