package datastructure

// Nested is a tree whose levels spring into existence on first access, so
// n.Path("a", "b", "c").Set(1) needs no prior setup. Children keep the order
// in which they were first reached. The zero value is an empty tree.
type Nested[K comparable] struct {
	value    any
	hasValue bool
	children *DefaultMap[K, *Nested[K]]
}

// NewNested returns an empty tree.
func NewNested[K comparable]() *Nested[K] {
	return &Nested[K]{}
}

// Child returns the sub-tree under key, creating it when missing.
func (n *Nested[K]) Child(key K) *Nested[K] {
	if n.children == nil {
		n.children = NewDefaultMap[K, *Nested[K]](NewNested[K])
	}
	return n.children.GetOrInsertDefault(key, NewNested[K])
}

// Path walks keys from n, creating every missing level.
func (n *Nested[K]) Path(keys ...K) *Nested[K] {
	cur := n
	for _, k := range keys {
		cur = cur.Child(k)
	}
	return cur
}

// Set stores a leaf value on this node.
func (n *Nested[K]) Set(v any) {
	n.value, n.hasValue = v, true
}

// Get returns the leaf value of this node, if one was set.
func (n *Nested[K]) Get() (any, bool) {
	return n.value, n.hasValue
}

// Has reports whether key is a direct child. It does not create anything.
func (n *Nested[K]) Has(key K) bool {
	if n.children == nil {
		return false
	}
	_, ok := n.children.Get(key)
	return ok
}

// Keys returns the direct child keys in first-access order.
func (n *Nested[K]) Keys() []K {
	if n.children == nil {
		return nil
	}
	return n.children.Keys()
}

// ToMap converts the tree to plain nested maps. A node with a value and no
// children becomes that value; a node with children becomes a map[K]any.
// A node with neither becomes an empty map.
func (n *Nested[K]) ToMap() map[K]any {
	if n.children == nil {
		return map[K]any{}
	}
	out := make(map[K]any, n.children.Len())
	for k, c := range n.children.All() {
		if c.hasValue && c.children == nil {
			out[k] = c.value
			continue
		}
		out[k] = c.ToMap()
	}
	return out
}
