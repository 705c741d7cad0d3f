// Package bptree implements an in-memory ordered set of 32-bit signed
// integers as a B+ tree. Every node's key/child slot array is delegated to
// an interchangeable pkg/nodestore backend; the tree itself only ever
// drives that backend through its narrow positional contract.
package bptree

import "github.com/ssargent/intsetbtree/pkg/nodestore"

// MinOrder is the smallest tree order the library accepts; smaller values
// supplied to New are clamped up to this.
const MinOrder = 3

// Tree is an ordered set of int32 keys backed by a B+ tree. It is not safe
// for concurrent use: every public call runs to completion synchronously,
// matching the single-threaded scheduling model this library targets.
type Tree struct {
	order   int
	maxKeys int
	backend Backend
	factory nodestore.Factory[*node]
	root    *node
}

// New creates an empty tree of the given order and backend. Orders below
// MinOrder are clamped up to it. The empty tree is represented as a single
// empty leaf, never a nil root.
func New(order int, backend Backend) *Tree {
	if order < MinOrder {
		order = MinOrder
	}
	f := backend.factory()
	t := &Tree{
		order:   order,
		maxKeys: order - 1,
		backend: backend,
		factory: f,
	}
	t.root = newNode(true, order, f)
	return t
}

// Backend reports the node-store backend this tree was created with.
func (t *Tree) Backend() Backend { return t.backend }

// Order reports the tree's branching factor M.
func (t *Tree) Order() int { return t.order }

// descendIndex computes the child-slot index to follow at an internal node
// for key, using Rule L: a key equal to a separator shifts right, since the
// separator equals the minimum of its right subtree and that subtree is
// where an equal key must be found (or inserted).
func descendIndex(n *node, key nodestore.Key) int {
	idx := n.store.LowerBound(key)
	if idx < n.store.Len() && n.store.KeyAt(idx) == key {
		idx++
	}
	return idx
}

// findLeaf descends from the root to the leaf that would contain key.
func (t *Tree) findLeaf(key nodestore.Key) *node {
	cur := t.root
	for !cur.isLeaf {
		idx := descendIndex(cur, key)
		cur = childAt(cur, idx)
	}
	return cur
}

// Search reports whether key is a member of the set.
func (t *Tree) Search(key nodestore.Key) bool {
	leaf := t.findLeaf(key)
	idx := leaf.store.LowerBound(key)
	return idx < leaf.store.Len() && leaf.store.KeyAt(idx) == key
}

// Height returns the number of nodes from the root to any leaf, inclusive,
// counted by following child0 links; all leaves lie at the same depth.
func (t *Tree) Height() int {
	h := 1
	n := t.root
	for !n.isLeaf {
		n = n.child0
		h++
	}
	return h
}

func (t *Tree) minKeys(isLeaf bool) int {
	if isLeaf {
		return ceilDiv(t.maxKeys, 2)
	}
	return ceilDiv(t.order, 2) - 1
}
