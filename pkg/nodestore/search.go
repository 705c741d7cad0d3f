package nodestore

import "golang.org/x/exp/constraints"

// lowerBound returns the least i in [0, len(keys)] such that keys[i] >= k,
// or len(keys) if no such i exists. Used by the array backend; the
// skip-list backend answers LowerBound from its skip list instead.
func lowerBound[T constraints.Ordered](keys []T, k T) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keys[mid] < k {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
