package persist

// hamtBits is the branching factor exponent for Map's hash-array-mapped
// trie: each internal node holds up to 1<<hamtBits children, selected by
// hamtBits bits of the key's hash per level, matching the classic HAMT
// design (Bagwell) that Clojure's and Scala's persistent maps use.
const hamtBits = 5
const hamtWidth = 1 << hamtBits
const hamtMask = hamtWidth - 1

// HashFunc computes a 64-bit hash for a key of type K.
type HashFunc[K any] func(K) uint64

// EqualFunc reports whether two keys of type K are equal.
type EqualFunc[K any] func(a, b K) bool

// Map is an immutable, persistent hash map with structural sharing: Set
// and Delete return a new Map sharing every subtree untouched by the
// change. The zero value is not usable; construct one with NewMap.
type Map[K any, V any] struct {
	hash  HashFunc[K]
	equal EqualFunc[K]
	root  *hamtNode[K, V]
	count int
}

type hamtEntry[K any, V any] struct {
	key K
	val V
}

// hamtNode is either a bitmap-indexed branch (children populated according
// to bitmap) or, once a subtree has only one entry left along a path, a
// collapsed leaf holding that single entry directly (entries has len 1),
// or a collision leaf holding multiple entries that hash identically
// (entries has len > 1).
type hamtNode[K any, V any] struct {
	bitmap   uint32
	children []*hamtNode[K, V]
	entries  []hamtEntry[K, V]
}

// NewMap creates an empty Map using hash and equal to compare keys.
func NewMap[K any, V any](hash HashFunc[K], equal EqualFunc[K]) Map[K, V] {
	return Map[K, V]{hash: hash, equal: equal}
}

// Len returns the number of entries in m.
func (m Map[K, V]) Len() int { return m.count }

// Get returns the value stored for key, and whether it was present.
func (m Map[K, V]) Get(key K) (V, bool) {
	var zero V
	if m.root == nil {
		return zero, false
	}
	return get(m.root, m.hash(key), key, m.equal, 0)
}

func get[K any, V any](n *hamtNode[K, V], h uint64, key K, equal EqualFunc[K], shift uint) (V, bool) {
	var zero V
	if n.children == nil {
		for _, e := range n.entries {
			if equal(e.key, key) {
				return e.val, true
			}
		}
		return zero, false
	}
	frag := (h >> shift) & hamtMask
	bit := uint32(1) << frag
	if n.bitmap&bit == 0 {
		return zero, false
	}
	idx := popcount(n.bitmap & (bit - 1))
	return get(n.children[idx], h, key, equal, shift+hamtBits)
}

// Set returns a new Map with key bound to val, sharing every part of the
// trie not on the path to key.
func (m Map[K, V]) Set(key K, val V) Map[K, V] {
	h := m.hash(key)
	added := false
	m.root = setHamtNode(m.root, h, key, val, m.hash, m.equal, 0, &added)
	if added {
		m.count++
	}
	return m
}

func setHamtNode[K any, V any](n *hamtNode[K, V], h uint64, key K, val V, hash HashFunc[K], equal EqualFunc[K], shift uint, added *bool) *hamtNode[K, V] {
	if n == nil {
		*added = true
		return &hamtNode[K, V]{entries: []hamtEntry[K, V]{{key: key, val: val}}}
	}
	if n.children == nil {
		for i, e := range n.entries {
			if equal(e.key, key) {
				entries := append([]hamtEntry[K, V](nil), n.entries...)
				entries[i] = hamtEntry[K, V]{key: key, val: val}
				return &hamtNode[K, V]{entries: entries}
			}
		}
		*added = true
		if hash(n.entries[0].key) != h {
			// different hash: split this leaf into a branch one level deeper
			// holding both the old entries and the new one
			branch := &hamtNode[K, V]{children: []*hamtNode[K, V]{}}
			for _, e := range n.entries {
				branch = setHamtNode(branch, hash(e.key), e.key, e.val, hash, equal, shift, new(bool))
			}
			return setHamtNode(branch, h, key, val, hash, equal, shift, new(bool))
		}
		// a true hash collision: keep every colliding entry in this leaf
		entries := append(append([]hamtEntry[K, V](nil), n.entries...), hamtEntry[K, V]{key: key, val: val})
		return &hamtNode[K, V]{entries: entries}
	}

	frag := (h >> shift) & hamtMask
	bit := uint32(1) << frag
	idx := popcount(n.bitmap & (bit - 1))
	if n.bitmap&bit == 0 {
		*added = true
		children := make([]*hamtNode[K, V], len(n.children)+1)
		copy(children[:idx], n.children[:idx])
		children[idx] = &hamtNode[K, V]{entries: []hamtEntry[K, V]{{key: key, val: val}}}
		copy(children[idx+1:], n.children[idx:])
		return &hamtNode[K, V]{bitmap: n.bitmap | bit, children: children}
	}
	children := append([]*hamtNode[K, V](nil), n.children...)
	children[idx] = setHamtNode(children[idx], h, key, val, hash, equal, shift+hamtBits, added)
	return &hamtNode[K, V]{bitmap: n.bitmap, children: children}
}

// Delete returns a new Map with key removed, if present.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	if m.root == nil {
		return m
	}
	h := m.hash(key)
	removed := false
	m.root = deleteNode(m.root, h, key, m.equal, 0, &removed)
	if removed {
		m.count--
	}
	return m
}

func deleteNode[K any, V any](n *hamtNode[K, V], h uint64, key K, equal EqualFunc[K], shift uint, removed *bool) *hamtNode[K, V] {
	if n.children == nil {
		for i, e := range n.entries {
			if equal(e.key, key) {
				*removed = true
				if len(n.entries) == 1 {
					return nil
				}
				entries := append([]hamtEntry[K, V](nil), n.entries[:i]...)
				entries = append(entries, n.entries[i+1:]...)
				return &hamtNode[K, V]{entries: entries}
			}
		}
		return n
	}
	frag := (h >> shift) & hamtMask
	bit := uint32(1) << frag
	if n.bitmap&bit == 0 {
		return n
	}
	idx := popcount(n.bitmap & (bit - 1))
	child := deleteNode(n.children[idx], h, key, equal, shift+hamtBits, removed)
	if !*removed {
		return n
	}
	if child == nil {
		if len(n.children) == 1 {
			return nil
		}
		children := append([]*hamtNode[K, V](nil), n.children[:idx]...)
		children = append(children, n.children[idx+1:]...)
		return &hamtNode[K, V]{bitmap: n.bitmap &^ bit, children: children}
	}
	children := append([]*hamtNode[K, V](nil), n.children...)
	children[idx] = child
	return &hamtNode[K, V]{bitmap: n.bitmap, children: children}
}

// Range calls f for every entry in m, in unspecified order, stopping early
// if f returns false.
func (m Map[K, V]) Range(f func(K, V) bool) {
	if m.root == nil {
		return
	}
	rangeNode(m.root, f)
}

func rangeNode[K any, V any](n *hamtNode[K, V], f func(K, V) bool) bool {
	if n.children == nil {
		for _, e := range n.entries {
			if !f(e.key, e.val) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !rangeNode(c, f) {
			return false
		}
	}
	return true
}

func popcount(x uint32) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}
