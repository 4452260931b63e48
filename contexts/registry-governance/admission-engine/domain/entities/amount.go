package entities

import "math"

// AddAmount sums two base-unit amounts. The second return is false when
// the result would overflow uint64.
func AddAmount(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}
