package util

import (
	"math"
	"strconv"
)

// RoundHalfUp rounds a non-negative value to the given number of fractional
// digits, with ties rounded up. The scaled value is snapped to 6 extra digits
// first so binary noise such as 12.4999999999 does not flip a tie.
func RoundHalfUp(value float64, places int) float64 {
	scale := math.Pow10(places)
	shifted, err := strconv.ParseFloat(strconv.FormatFloat(value*scale, 'f', 6, 64), 64)
	if err != nil {
		shifted = value * scale
	}
	return math.Floor(shifted+0.5) / scale
}

// NormalizeLikert maps a 1..5 Likert value onto [0,1] as (v-1)/4 with 6 fractional digits.
func NormalizeLikert(value int) float64 {
	return RoundHalfUp(float64(value-1)/4, 6)
}
