package sanitizer

import "math"

// Numeric represents numeric types that support ordering.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Signed represents signed numeric types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Float represents floating-point numeric types.
type Float interface {
	~float32 | ~float64
}

// Clamp constrains value to [lo, hi].
func Clamp[T Numeric](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampMin ensures value is not less than lo.
func ClampMin[T Numeric](value, lo T) T {
	if value < lo {
		return lo
	}
	return value
}

// ZeroIfNegative returns zero for negative values.
func ZeroIfNegative[T Signed](value T) T {
	if value < 0 {
		return 0
	}
	return value
}

// FiniteOr returns fallback when value is NaN or infinite.
func FiniteOr[T Float](value, fallback T) T {
	f := float64(value)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return value
}

// Measurement sanitizes a measured quantity such as a duration, a memory
// delta or a byte count: non-finite and negative values become zero.
func Measurement[T Float](value T) T {
	return ZeroIfNegative(FiniteOr(value, 0))
}

// RoundToDecimalPlaces rounds value to the given number of decimal places.
func RoundToDecimalPlaces[T Float](value T, places int) T {
	if places < 0 {
		places = 0
	}
	multiplier := math.Pow(10, float64(places))
	return T(math.Round(float64(value)*multiplier) / multiplier)
}
