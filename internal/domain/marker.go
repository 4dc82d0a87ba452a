package domain

import "math"

// SizeClass buckets an incident by burned area for marker colouring.
type SizeClass string

const (
	SizeSmall     SizeClass = "small"
	SizeMedium    SizeClass = "medium"
	SizeLarge     SizeClass = "large"
	SizeVeryLarge SizeClass = "very_large"
)

// ClassifySize maps acres to a SizeClass: <100 small, <750 medium, <50000 large.
func ClassifySize(acres float64) SizeClass {
	switch {
	case acres < 100:
		return SizeSmall
	case acres < 750:
		return SizeMedium
	case acres < 50000:
		return SizeLarge
	default:
		return SizeVeryLarge
	}
}

// MarkerRadius returns the log-scaled marker radius ln(acres/2 + 1).
func MarkerRadius(acres float64) float64 {
	return math.Log(acres/2 + 1)
}
