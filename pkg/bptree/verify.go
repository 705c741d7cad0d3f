package bptree

import "fmt"

// Verify walks the whole tree and returns an error describing the first
// structural invariant violation found (ascending stores, copy-up
// separators, minimum occupancy, equal leaf depth, parent back-links, a
// leaf chain free of gaps or duplicates). It is meant as a development
// aid, not part of the steady-state hot path.
func (t *Tree) Verify() error {
	leafDepth, leaves := -1, 0
	var walk func(n *node, depth int, isRoot bool) error
	walk = func(n *node, depth int, isRoot bool) error {
		for i := 1; i < n.store.Len(); i++ {
			if n.store.KeyAt(i-1) >= n.store.KeyAt(i) {
				return fmt.Errorf("store not strictly ascending at depth %d", depth)
			}
		}

		if n.isLeaf {
			leaves++
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				return fmt.Errorf("leaves at unequal depth: %d vs %d", leafDepth, depth)
			}
			if !isRoot && n.store.Len() < t.minKeys(true) {
				return fmt.Errorf("leaf below minimum occupancy: %d < %d", n.store.Len(), t.minKeys(true))
			}
			return nil
		}

		if !isRoot && n.store.Len() < t.minKeys(false) {
			return fmt.Errorf("internal node below minimum occupancy: %d < %d", n.store.Len(), t.minKeys(false))
		}
		if n.child0.parent != n {
			return fmt.Errorf("child0's parent link does not point back to its parent")
		}
		if err := walk(n.child0, depth+1, false); err != nil {
			return err
		}
		for i := 0; i < n.store.Len(); i++ {
			child := n.store.ValAt(i)
			if child.parent != n {
				return fmt.Errorf("value-slot child's parent link does not point back to its parent")
			}
			want := subtreeMin(child)
			if n.store.KeyAt(i) != want {
				return fmt.Errorf("separator %d does not equal right subtree minimum %d", n.store.KeyAt(i), want)
			}
			if err := walk(child, depth+1, false); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.root, 0, true); err != nil {
		return err
	}

	n := t.root
	for !n.isLeaf {
		n = n.child0
	}
	prev, havePrev := int32(0), false
	chained := 0
	for ; n != nil; n = n.next {
		chained++
		for i := 0; i < n.store.Len(); i++ {
			k := n.store.KeyAt(i)
			if havePrev && prev >= k {
				return fmt.Errorf("leaf chain not strictly ascending: %d before %d", prev, k)
			}
			prev, havePrev = k, true
		}
	}
	if chained != leaves {
		return fmt.Errorf("leaf chain visits %d leaves, tree has %d", chained, leaves)
	}
	return nil
}
