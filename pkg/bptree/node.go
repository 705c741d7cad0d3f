package bptree

import "github.com/ssargent/intsetbtree/pkg/nodestore"

// Backend selects the node store implementation a Tree builds its nodes
// from. All three satisfy the identical nodestore.Store contract; the tree
// is oblivious to which one is in use.
type Backend int

const (
	// Array is the default backend: a contiguous sorted pair of slices.
	Array Backend = iota
	// Linked backs each node with a singly linked list of entries.
	Linked
	// SkipList mirrors the array backend with an auxiliary skip list
	// rebuilt after every mutation; included as a benchmark baseline, not
	// because it outperforms the array.
	SkipList
)

func (b Backend) String() string {
	switch b {
	case Linked:
		return "linked"
	case SkipList:
		return "skiplist"
	default:
		return "array"
	}
}

// ParseBackend maps the CLI/library backend selector strings onto a
// Backend. An empty selector defaults to Array, per the library surface
// defined for this package's callers.
func ParseBackend(s string) (Backend, bool) {
	switch s {
	case "", "array":
		return Array, true
	case "linked":
		return Linked, true
	case "skiplist":
		return SkipList, true
	default:
		return Array, false
	}
}

func (b Backend) factory() nodestore.Factory[*node] {
	switch b {
	case Linked:
		return nodestore.NewLinked[*node]
	case SkipList:
		return nodestore.NewSkipList[*node]
	default:
		return nodestore.NewArray[*node]
	}
}

// node is the B+ tree's header record: it ties one node store to tree
// structure. Leaves use next to chain to their right sibling; internal
// nodes use child0 as the distinguished leftmost child, separate from the
// store's value slots which hold child[1:].
type node struct {
	isLeaf bool
	parent *node
	next   *node
	child0 *node
	store  nodestore.Store[*node]
}

func newNode(isLeaf bool, capacity int, factory nodestore.Factory[*node]) *node {
	return &node{isLeaf: isLeaf, store: factory(capacity)}
}

// setKeyAt overwrites the key at position i while preserving its value.
// The node store contract exposes no direct key mutation (only set_val), so
// a key replacement is performed as the store's own primitives intend:
// erase then reinsert at the same position, exactly how the tree already
// builds splits under full control (see splitLeaf/splitInternal).
func setKeyAt(n *node, i int, newKey nodestore.Key) {
	v := n.store.ValAt(i)
	n.store.EraseAt(i)
	n.store.InsertAt(i, newKey, v)
}

// childAt returns the i-th child of an internal node: child0 at i==0,
// otherwise the value slot at i-1.
func childAt(n *node, i int) *node {
	if i == 0 {
		return n.child0
	}
	return n.store.ValAt(i - 1)
}

// childIndex returns child's position among parent's children: 0 if it is
// parent's child0, else one more than its value-slot index.
func childIndex(parent, child *node) int {
	if parent.child0 == child {
		return 0
	}
	for i := 0; i < parent.store.Len(); i++ {
		if parent.store.ValAt(i) == child {
			return i + 1
		}
	}
	assert(false, "child not found in parent")
	return -1
}

// subtreeMin returns the minimum key stored under n, found by descending
// child0 links to a leaf, per the copy-up separator invariant.
func subtreeMin(n *node) nodestore.Key {
	cur := n
	for !cur.isLeaf {
		cur = cur.child0
	}
	assert(cur.store.Len() > 0, "leaf reached by subtreeMin must be non-empty")
	return cur.store.KeyAt(0)
}
