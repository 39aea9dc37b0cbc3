package utils

import "math"

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and saturates at MaxUint16, for
// result lists that are already sorted best first.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		ranks[i] = uint16(min(i+1, math.MaxUint16))
	}
	return ranks
}
