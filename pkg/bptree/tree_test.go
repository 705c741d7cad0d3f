package bptree

import (
	"math/rand"
	"testing"
)

var allBackends = []Backend{Array, Linked, SkipList}

func TestNew_ClampsOrder(t *testing.T) {
	for _, b := range allBackends {
		tr := New(1, b)
		if tr.Order() != MinOrder {
			t.Fatalf("%v: expected order clamped to %d, got %d", b, MinOrder, tr.Order())
		}
	}
}

func TestEmptyTree(t *testing.T) {
	for _, b := range allBackends {
		tr := New(4, b)
		if tr.Search(0) {
			t.Fatalf("%v: expected search miss on empty tree", b)
		}
		tr.Delete(0) // must not panic
		if tr.Height() != 1 {
			t.Fatalf("%v: expected height 1 for empty tree, got %d", b, tr.Height())
		}
	}
}

func TestSingleInsertThenDelete(t *testing.T) {
	for _, b := range allBackends {
		tr := New(4, b)
		tr.Insert(42)
		if !tr.Search(42) {
			t.Fatalf("%v: expected 42 present after insert", b)
		}
		if tr.Height() != 1 {
			t.Fatalf("%v: expected height 1, got %d", b, tr.Height())
		}
		tr.Delete(42)
		if tr.Search(42) {
			t.Fatalf("%v: expected 42 absent after delete", b)
		}
		if tr.Height() != 1 {
			t.Fatalf("%v: expected height 1 after delete, got %d", b, tr.Height())
		}
	}
}

func TestOrder3LeafSplit(t *testing.T) {
	for _, b := range allBackends {
		tr := New(3, b)
		tr.Insert(10)
		tr.Insert(20)
		tr.Insert(30)

		if tr.Height() != 2 {
			t.Fatalf("%v: expected height 2 after third insert, got %d", b, tr.Height())
		}
		for _, k := range []int32{10, 20, 30} {
			if !tr.Search(k) {
				t.Fatalf("%v: expected %d present", b, k)
			}
		}
		leftmost := leftmostLeaf(tr)
		keys := leafKeys(leftmost)
		if len(keys) != 2 || keys[0] != 10 || keys[1] != 20 {
			t.Fatalf("%v: expected left leaf [10,20], got %v", b, keys)
		}
		if !leftmost.isLeaf || leftmost.next == nil {
			t.Fatalf("%v: expected leftmost leaf to chain to a sibling", b)
		}
		rightKeys := leafKeys(leftmost.next)
		if len(rightKeys) != 1 || rightKeys[0] != 30 {
			t.Fatalf("%v: expected right leaf [30], got %v", b, rightKeys)
		}
	}
}

func TestSequentialInsertReverseDelete(t *testing.T) {
	for _, b := range allBackends {
		tr := New(4, b)
		for i := int32(1); i <= 100; i++ {
			tr.Insert(i)
			checkInvariants(t, tr)
		}
		for i := int32(100); i >= 1; i-- {
			tr.Delete(i)
			checkInvariants(t, tr)
		}
		if tr.Height() != 1 {
			t.Fatalf("%v: expected height 1 after draining, got %d", b, tr.Height())
		}
		if tr.root.store.Len() != 0 {
			t.Fatalf("%v: expected empty root leaf after draining", b)
		}
	}
}

func TestRandomPermutation(t *testing.T) {
	const n = 2000
	rng := rand.New(rand.NewSource(7))
	perm := rng.Perm(n)

	for _, b := range allBackends {
		tr := New(64, b)
		for _, p := range perm {
			tr.Insert(int32(p + 1))
		}
		for i := 1; i <= n; i++ {
			if !tr.Search(int32(i)) {
				t.Fatalf("%v: expected %d present", b, i)
			}
		}
		for i := n + 1; i <= n+200; i++ {
			if tr.Search(int32(i)) {
				t.Fatalf("%v: expected %d absent", b, i)
			}
		}
		checkInvariants(t, tr)

		delPerm := rng.Perm(n)
		for _, p := range delPerm {
			tr.Delete(int32(p + 1))
		}
		if tr.Height() != 1 || tr.root.store.Len() != 0 {
			t.Fatalf("%v: expected single empty leaf after full drain", b)
		}
	}
}

func TestIdempotenceAndMissingDelete(t *testing.T) {
	for _, b := range allBackends {
		tr := New(5, b)
		for _, k := range []int32{5, 5, 5, 3, 3, 7} {
			tr.Insert(k)
		}
		for _, k := range []int32{3, 5, 7} {
			if !tr.Search(k) {
				t.Fatalf("%v: expected %d present", b, k)
			}
		}
		before := collectAll(tr)
		tr.Delete(4)
		tr.Delete(4)
		after := collectAll(tr)
		if !sameInts(before, after) {
			t.Fatalf("%v: missing-key delete must not change the set: %v -> %v", b, before, after)
		}
	}
}

func TestHeightBound(t *testing.T) {
	for _, order := range []int{3, 4, 5, 16, 64} {
		for _, b := range allBackends {
			tr := New(order, b)
			n := 5000
			for i := 1; i <= n; i++ {
				tr.Insert(int32(i))
			}
			minChildren := ceilDiv(order, 2)
			bound := ceilLog(minChildren, n) + 1
			if tr.Height() > bound {
				t.Fatalf("order=%d backend=%v: height %d exceeds bound %d", order, b, tr.Height(), bound)
			}
		}
	}
}

func ceilLog(base, n int) int {
	if n <= 1 {
		return 1
	}
	count := 0
	v := 1
	for v < n {
		v *= base
		count++
	}
	return count
}

func sameInts(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
