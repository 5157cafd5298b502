// Package training holds load arithmetic shared by the engine.
package training

import "math"

// Default progression step: +2.5% rounded to 2.5 kg plates
const (
	DefaultStepPercent = 2.5
	DefaultIncrementKg = 2.5
)

// RoundToIncrement rounds weight to the nearest increment (e.g. 2.5 kg for plates)
func RoundToIncrement(weight, increment float64) float64 {
	if weight <= 0 || increment <= 0 {
		return 0
	}
	return math.Round(weight/increment) * increment
}

// NextLoad returns the suggested working weight after a progression step.
// The result is always at least one increment above the current load.
func NextLoad(currentKg, stepPercent, increment float64) float64 {
	if currentKg <= 0 || increment <= 0 {
		return 0
	}
	next := RoundToIncrement(currentKg*(1+stepPercent/100), increment)
	if min := RoundToIncrement(currentKg, increment) + increment; next < min {
		next = min
	}
	return next
}
