package bptree

import "github.com/ssargent/intsetbtree/pkg/nodestore"

// Insert adds key to the set. Duplicate inserts are a silent no-op.
func (t *Tree) Insert(key nodestore.Key) {
	leaf := t.findLeaf(key)
	idx := leaf.store.LowerBound(key)
	if idx < leaf.store.Len() && leaf.store.KeyAt(idx) == key {
		return
	}

	leaf.store.InsertAt(idx, key, nil)

	if leaf.store.Len() > t.maxKeys {
		t.splitLeaf(leaf)
		return
	}
	if idx == 0 {
		t.fixupSeparatorAfterInsert(leaf)
	}
}

// fixupSeparatorAfterInsert implements the spec's single-step separator
// repair: when an insert changes a leaf's minimum without triggering a
// split, only the immediate parent can hold a separator referencing that
// leaf, and only if the leaf isn't that parent's child0 (a leaf can only
// receive a minimum-changing insert by being reached via child0 at every
// ancestor, in which case no separator anywhere references it).
func (t *Tree) fixupSeparatorAfterInsert(leaf *node) {
	p := leaf.parent
	if p == nil {
		return
	}
	j := childIndex(p, leaf)
	if j > 0 {
		setKeyAt(p, j-1, leaf.store.KeyAt(0))
	}
}

// splitLeaf splits an overflowing leaf (holding exactly M keys) into two
// leaves, splices the new leaf into the leaf chain, and propagates the
// separator upward.
func (t *Tree) splitLeaf(leaf *node) {
	total := leaf.store.Len()
	leftSz := ceilDiv(total, 2)

	keys := make([]nodestore.Key, total)
	for i := 0; i < total; i++ {
		keys[i] = leaf.store.KeyAt(i)
	}
	leaf.store.Clear()

	newLeaf := newNode(true, t.order, t.factory)
	for i := 0; i < leftSz; i++ {
		leaf.store.InsertAt(i, keys[i], nil)
	}
	for i := leftSz; i < total; i++ {
		newLeaf.store.InsertAt(i-leftSz, keys[i], nil)
	}

	newLeaf.next = leaf.next
	leaf.next = newLeaf
	newLeaf.parent = leaf.parent

	separator := newLeaf.store.KeyAt(0)
	t.insertIntoParent(leaf, separator, newLeaf)
}

// insertIntoParent links right into left's parent under separator, growing
// a new root if left had none, and recursing into an internal split if the
// parent overflows.
func (t *Tree) insertIntoParent(left *node, separator nodestore.Key, right *node) {
	p := left.parent
	if p == nil {
		newRoot := newNode(false, t.order, t.factory)
		newRoot.child0 = left
		newRoot.store.InsertAt(0, separator, right)
		left.parent = newRoot
		right.parent = newRoot
		t.root = newRoot
		return
	}

	j := childIndex(p, left)
	p.store.InsertAt(j, separator, right)
	right.parent = p

	if p.store.Len() > t.maxKeys {
		t.splitInternal(p)
	}
}

// splitInternal splits an overflowing internal node (holding M keys, M+1
// children) using the copy-up rule: the promoted separator is a copy of
// the new right sibling's subtree minimum, not moved out of either side.
func (t *Tree) splitInternal(n *node) {
	k := n.store.Len()

	children := make([]*node, k+1)
	keys := make([]nodestore.Key, k)
	children[0] = n.child0
	for i := 0; i < k; i++ {
		keys[i] = n.store.KeyAt(i)
		children[i+1] = n.store.ValAt(i)
	}

	leftChildren := ceilDiv(k+1, 2)

	n.store.Clear()
	n.child0 = children[0]
	n.child0.parent = n
	for i := 0; i < leftChildren-1; i++ {
		n.store.InsertAt(i, keys[i], children[i+1])
		children[i+1].parent = n
	}

	right := newNode(false, t.order, t.factory)
	right.child0 = children[leftChildren]
	right.child0.parent = right
	for i := leftChildren; i < k; i++ {
		right.store.InsertAt(i-leftChildren, keys[i], children[i+1])
		children[i+1].parent = right
	}
	right.parent = n.parent

	separator := subtreeMin(right)
	t.insertIntoParent(n, separator, right)
}
