package bptree

import "testing"

// leftmostLeaf walks child0 links from the root to the leftmost leaf.
func leftmostLeaf(t *Tree) *node {
	n := t.root
	for !n.isLeaf {
		n = n.child0
	}
	return n
}

// leafKeys returns a leaf's keys as a plain slice.
func leafKeys(n *node) []int32 {
	out := make([]int32, n.store.Len())
	for i := range out {
		out[i] = n.store.KeyAt(i)
	}
	return out
}

// collectAll walks the leaf chain from the leftmost leaf and returns every
// key in ascending order, exercising the chain the way a range scan would
// even though one isn't part of the public API.
func collectAll(t *Tree) []int32 {
	var out []int32
	for n := leftmostLeaf(t); n != nil; n = n.next {
		out = append(out, leafKeys(n)...)
	}
	return out
}

// checkInvariants walks the whole tree and fails t if any structural
// invariant from the spec's testable-properties section is violated:
// ascending stores, copy-up separators, minimum occupancy, equal leaf
// depth, correct parent links, and a leaf chain free of gaps or dupes.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()

	leafDepth, leaves := -1, 0
	var walk func(n *node, depth int, isRoot bool)
	walk = func(n *node, depth int, isRoot bool) {
		// Strictly ascending keys.
		for i := 1; i < n.store.Len(); i++ {
			if n.store.KeyAt(i-1) >= n.store.KeyAt(i) {
				t.Fatalf("store not strictly ascending at depth %d: %v", depth, leafKeys(n))
			}
		}

		if n.isLeaf {
			leaves++
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				t.Fatalf("leaves at unequal depth: %d vs %d", leafDepth, depth)
			}
			if !isRoot && n.store.Len() < tr.minKeys(true) {
				t.Fatalf("leaf below minimum occupancy: %d < %d", n.store.Len(), tr.minKeys(true))
			}
			return
		}

		if !isRoot && n.store.Len() < tr.minKeys(false) {
			t.Fatalf("internal node below minimum occupancy: %d < %d", n.store.Len(), tr.minKeys(false))
		}

		if n.child0.parent != n {
			t.Fatalf("child0's parent link does not point back to its parent")
		}
		walk(n.child0, depth+1, false)

		for i := 0; i < n.store.Len(); i++ {
			child := n.store.ValAt(i)
			if child.parent != n {
				t.Fatalf("value-slot child's parent link does not point back to its parent")
			}
			want := subtreeMin(child)
			if n.store.KeyAt(i) != want {
				t.Fatalf("separator %d does not equal right subtree minimum %d", n.store.KeyAt(i), want)
			}
			walk(child, depth+1, false)
		}
	}
	walk(tr.root, 0, true)

	keys := collectAll(tr)
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("leaf chain not strictly ascending at %d: %v", i, keys)
		}
	}
	chained := 0
	for n := leftmostLeaf(tr); n != nil; n = n.next {
		chained++
	}
	if chained != leaves {
		t.Fatalf("leaf chain visits %d leaves, tree has %d", chained, leaves)
	}
}
