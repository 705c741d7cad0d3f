package bptree

import "github.com/ssargent/intsetbtree/pkg/nodestore"

// Delete removes key from the set. Deleting an absent key is a silent
// no-op.
func (t *Tree) Delete(key nodestore.Key) {
	leaf := t.findLeaf(key)
	idx := leaf.store.LowerBound(key)
	if idx >= leaf.store.Len() || leaf.store.KeyAt(idx) != key {
		return
	}
	leaf.store.EraseAt(idx)
	t.rebalance(leaf)

	// A separator that still holds the deleted key lies on key's descent
	// path; rewrite any separator there that differs from its right
	// subtree's minimum.
	for n := t.root; !n.isLeaf; {
		i := descendIndex(n, key)
		if i > 0 {
			if m := subtreeMin(childAt(n, i)); n.store.KeyAt(i-1) != m {
				setKeyAt(n, i-1, m)
			}
		}
		n = childAt(n, i)
	}
}

// rebalance restores minimum occupancy at x after a deletion removed one of
// its entries, propagating borrow/merge upward as needed and shrinking the
// root when it becomes an empty internal node.
func (t *Tree) rebalance(x *node) {
	if x == t.root {
		for !x.isLeaf && x.store.Len() == 0 {
			newRoot := x.child0
			newRoot.parent = nil
			t.root = newRoot
			x = newRoot
		}
		return
	}

	p := x.parent
	j := childIndex(p, x)
	minKeys := t.minKeys(x.isLeaf)

	if x.store.Len() >= minKeys {
		if j > 0 {
			setKeyAt(p, j-1, subtreeMin(x))
		}
		return
	}

	var left, right *node
	if j > 0 {
		left = childAt(p, j-1)
	}
	if j < p.store.Len() {
		right = childAt(p, j+1)
	}

	if x.isLeaf {
		t.rebalanceLeaf(x, p, j, left, right, minKeys)
	} else {
		t.rebalanceInternal(x, p, j, left, right, minKeys)
	}
}

func (t *Tree) rebalanceLeaf(x, p *node, j int, left, right *node, leafMin int) {
	if left != nil && left.store.Len() > leafMin {
		i := left.store.Len() - 1
		k := left.store.KeyAt(i)
		left.store.EraseAt(i)
		x.store.InsertAt(0, k, nil)
		setKeyAt(p, j-1, x.store.KeyAt(0))
		return
	}
	if right != nil && right.store.Len() > leafMin {
		k := right.store.KeyAt(0)
		right.store.EraseAt(0)
		x.store.InsertAt(x.store.Len(), k, nil)
		// Safe rather than load-bearing: a borrow only fires when right was
		// above its minimum, so it is still non-empty after losing one key.
		if right.store.Len() > 0 {
			setKeyAt(p, j, right.store.KeyAt(0))
		}
		return
	}

	if left != nil {
		for i := 0; i < x.store.Len(); i++ {
			left.store.InsertAt(left.store.Len(), x.store.KeyAt(i), nil)
		}
		left.next = x.next
		p.store.EraseAt(j - 1)
		t.rebalance(p)
		return
	}

	assert(right != nil, "leaf underflow with neither sibling")
	for i := 0; i < right.store.Len(); i++ {
		x.store.InsertAt(x.store.Len(), right.store.KeyAt(i), nil)
	}
	x.next = right.next
	p.store.EraseAt(j)
	t.rebalance(p)
}

func (t *Tree) rebalanceInternal(x, p *node, j int, left, right *node, internalMin int) {
	if left != nil && left.store.Len() > internalMin {
		li := left.store.Len() - 1
		c := left.store.ValAt(li)
		left.store.EraseAt(li)

		oldChild0 := x.child0
		x.child0 = c
		c.parent = x
		x.store.InsertAt(0, p.store.KeyAt(j-1), oldChild0)
		oldChild0.parent = x

		setKeyAt(p, j-1, subtreeMin(x))
		return
	}
	if right != nil && right.store.Len() > internalMin {
		sep := p.store.KeyAt(j)
		c := right.child0
		newChild0 := right.store.ValAt(0)
		mPrime := right.store.KeyAt(0)
		right.store.EraseAt(0)
		right.child0 = newChild0
		newChild0.parent = right

		x.store.InsertAt(x.store.Len(), sep, c)
		c.parent = x

		setKeyAt(p, j, mPrime)
		return
	}

	if left != nil {
		left.store.InsertAt(left.store.Len(), p.store.KeyAt(j-1), x.child0)
		x.child0.parent = left
		for i := 0; i < x.store.Len(); i++ {
			c := x.store.ValAt(i)
			left.store.InsertAt(left.store.Len(), x.store.KeyAt(i), c)
			c.parent = left
		}
		p.store.EraseAt(j - 1)
		t.rebalance(p)
		return
	}

	assert(right != nil, "internal underflow with neither sibling")
	x.store.InsertAt(x.store.Len(), p.store.KeyAt(j), right.child0)
	right.child0.parent = x
	for i := 0; i < right.store.Len(); i++ {
		c := right.store.ValAt(i)
		x.store.InsertAt(x.store.Len(), right.store.KeyAt(i), c)
		c.parent = x
	}
	p.store.EraseAt(j)
	t.rebalance(p)
}
