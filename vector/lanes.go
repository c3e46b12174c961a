package vector

import "github.com/hupe1980/glovebin/internal/simd"

// laneWidth is fixed for the lifetime of the process.
var laneWidth = simd.LaneWidth()

// LaneWidth returns the number of float64 values per lane.
func LaneWidth() int {
	return laneWidth
}

// paddedLen rounds n up to a whole number of lanes.
func paddedLen(n int) int {
	return (n + laneWidth - 1) &^ (laneWidth - 1)
}

// laneCount returns the number of lanes needed for n values.
func laneCount(n int) int {
	return paddedLen(n) / laneWidth
}
