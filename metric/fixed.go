// Package metric provides the 26.6 fixed-point measurement type used for all
// layout arithmetic, together with points and rectangles built on it.
//
// Fixed is a distinct type rather than an alias of fixed.Int26_6 so that
// every conversion from floating point is explicit. Multiplication follows
// the rounding of golang.org/x/image/math/fixed; addition and subtraction
// saturate instead of wrapping.
package metric

import (
	"math"
	"strconv"

	"golang.org/x/image/math/fixed"
)

// Fixed is a signed 26.6 fixed-point number: the value is Fixed/64.
type Fixed int32

const (
	// One is 1.0.
	One Fixed = 64

	// MaxFixed is the largest representable value. Layout uses it as
	// "unlimited" for widths.
	MaxFixed Fixed = math.MaxInt32

	// MinFixed is the smallest representable value.
	MinFixed Fixed = math.MinInt32
)

// FromInt converts an integer, saturating at MaxFixed/MinFixed.
func FromInt(n int) Fixed {
	return saturate(int64(n) << 6)
}

// FromFloat converts a float, rounding half away from zero.
func FromFloat(f float64) Fixed {
	if math.IsNaN(f) {
		return 0
	}
	v := math.Round(f * 64)
	switch {
	case v >= math.MaxInt32:
		return MaxFixed
	case v <= math.MinInt32:
		return MinFixed
	}
	return Fixed(v)
}

// FromInt26_6 converts from the x/image fixed-point type.
func FromInt26_6(v fixed.Int26_6) Fixed { return Fixed(v) }

// Int26_6 converts to the x/image fixed-point type.
func (f Fixed) Int26_6() fixed.Int26_6 { return fixed.Int26_6(f) }

// Float returns f as a float64.
func (f Fixed) Float() float64 { return float64(f) / 64 }

// Floor rounds toward negative infinity.
func (f Fixed) Floor() Fixed { return f &^ 63 }

// Ceil rounds toward positive infinity, saturating at the largest whole value.
func (f Fixed) Ceil() Fixed {
	if f > MaxFixed-63 {
		return MaxFixed &^ 63
	}
	return (f + 63) &^ 63
}

// Round rounds to the nearest whole value, halves up.
func (f Fixed) Round() Fixed {
	if f > MaxFixed-32 {
		return MaxFixed &^ 63
	}
	return (f + 32) &^ 63
}

// RoundInt is Round as an int.
func (f Fixed) RoundInt() int { return int(f.Round() >> 6) }

// Truncate returns the integer part, rounding toward zero.
func (f Fixed) Truncate() int { return int(f / 64) }

// Add returns f+g, saturating.
func (f Fixed) Add(g Fixed) Fixed { return saturate(int64(f) + int64(g)) }

// Sub returns f-g, saturating.
func (f Fixed) Sub(g Fixed) Fixed { return saturate(int64(f) - int64(g)) }

// Mul returns f*g rounded to nearest as fixed.Int26_6.Mul does.
func (f Fixed) Mul(g Fixed) Fixed {
	return Fixed(fixed.Int26_6(f).Mul(fixed.Int26_6(g)))
}

// Div returns f/g rounded half away from zero. Division by zero saturates
// toward the sign of f; 0/0 is 0.
func (f Fixed) Div(g Fixed) Fixed {
	if g == 0 {
		switch {
		case f > 0:
			return MaxFixed
		case f < 0:
			return MinFixed
		}
		return 0
	}
	return saturate(divRound(int64(f)<<6, int64(g)))
}

// MulInt returns f*n, saturating.
func (f Fixed) MulInt(n int) Fixed { return saturate(int64(f) * int64(n)) }

// DivInt returns f/n rounded half away from zero.
func (f Fixed) DivInt(n int) Fixed {
	if n == 0 {
		return f.Div(0)
	}
	return saturate(divRound(int64(f), int64(n)))
}

// MulDiv returns f*n/d truncated toward zero, computed in 64 bits.
// It is used to interpolate inside a cluster without losing precision.
func (f Fixed) MulDiv(n, d int) Fixed {
	if d == 0 {
		return f.Div(0)
	}
	return saturate(int64(f) * int64(n) / int64(d))
}

// Abs returns |f|, saturating for MinFixed.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return saturate(-int64(f))
	}
	return f
}

// Min returns the smaller of a and b.
func Min(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

// String formats f as a decimal number.
func (f Fixed) String() string {
	return strconv.FormatFloat(f.Float(), 'f', -1, 64)
}

func saturate(v int64) Fixed {
	switch {
	case v > math.MaxInt32:
		return MaxFixed
	case v < math.MinInt32:
		return MinFixed
	}
	return Fixed(v)
}

// divRound divides rounding half away from zero. d must not be zero.
func divRound(n, d int64) int64 {
	neg := (n < 0) != (d < 0)
	if n < 0 {
		n = -n
	}
	if d < 0 {
		d = -d
	}
	q := (n + d/2) / d
	if neg {
		return -q
	}
	return q
}
