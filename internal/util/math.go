package util

import (
	"golang.org/x/exp/constraints"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// InterpolateLinear returns the y-value for the given input on the polyline
// described by the x- and y-values. xValues must be sorted ascending and
// both slices must have the same, non-zero length.
// Inputs outside of the x range are clamped to the first/last y-value.
func InterpolateLinear(xValues []float64, yValues []float64, input float64) float64 {
	last := len(xValues) - 1
	if input <= xValues[0] {
		// input is below the smallest given step, so
		// we fall back to the value of the smallest step
		return yValues[0]
	}
	if input >= xValues[last] {
		// input is above (or equal to) the largest given
		// step, so we fall back to the value of the largest step
		return yValues[last]
	}

	for i := 0; i < last; i++ {
		currentX := xValues[i]
		nextX := xValues[i+1]

		if input >= nextX {
			continue
		}

		if input == currentX {
			return yValues[i]
		}

		// input is somewhere in between currentX and nextX
		currentY := yValues[i]
		nextY := yValues[i+1]

		ratio := Ratio(input, currentX, nextX)
		return currentY + ratio*(nextY-currentY)
	}

	return yValues[last]
}
