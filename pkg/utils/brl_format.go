// Package utils provides ticker and number helpers shared by the CLI and the
// report renderers.
package utils

import (
	"math"
)

// Magnitude units used for compact Brazilian amounts.
const (
	UnitNone     = ""
	UnitThousand = "mil"
	UnitMillion  = "mi"
	UnitBillion  = "bi"
	UnitTrillion = "tri"
)

// Compact scales amount to the largest Brazilian magnitude unit it reaches.
// e.g., 1927345 → (1.927345, "mi"), 972950000000 → (972.95, "bi")
func Compact(amount float64) (float64, string) {
	abs := math.Abs(amount)
	switch {
	case abs >= 1e12:
		return amount / 1e12, UnitTrillion
	case abs >= 1e9:
		return amount / 1e9, UnitBillion
	case abs >= 1e6:
		return amount / 1e6, UnitMillion
	case abs >= 1e3:
		return amount / 1e3, UnitThousand
	default:
		return amount, UnitNone
	}
}
