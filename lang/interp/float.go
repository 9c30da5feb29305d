package interp

import "strconv"

// Float is the type of numbers, a 64-bit float.
type Float float64

var _ Value = Float(0)

// String renders the shortest decimal representation that parses back to
// the same value, without a trailing ".0" for whole numbers (3, not 3.0).
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f Float) Type() string { return "number" }
