package geom

// MinRangeDistance returns the distance between the two inclusive ranges
// [min1, max1] and [min2, max2], choosing the closest point in each. Zero
// when the ranges overlap.
func MinRangeDistance(min1, max1, min2, max2 int64) int64 {
	switch {
	case max1 < min2:
		return min2 - max1
	case max2 < min1:
		return min1 - max2
	default:
		return 0
	}
}

// MaxRangeDistance returns the distance from the farthest end of
// [min1, max1] to the closest point of [min2, max2].
func MaxRangeDistance(min1, max1, min2, max2 int64) int64 {
	return max(
		RangeDistanceToPoint(min2, max2, min1),
		RangeDistanceToPoint(min2, max2, max1),
	)
}

// RangeDistanceToPoint returns the distance from the inclusive range
// [min, max] to pos. Zero when the range contains pos.
func RangeDistanceToPoint(min, max, pos int64) int64 {
	switch {
	case max < pos:
		return pos - max
	case pos < min:
		return min - pos
	default:
		return 0
	}
}
