// Package sanitizer provides small, stateless helpers that coerce untrusted
// values into a safe shape instead of rejecting them.
//
// Numeric helpers clamp values into a range and replace non-finite floats
// (NaN, ±Inf) with a fallback so aggregates computed downstream never
// propagate them. Text helpers normalise strings for use in file names and
// bounded display fields.
//
//	sanitizer.Measurement(math.NaN())        // 0
//	sanitizer.Measurement(-3)                // 0
//	sanitizer.Clamp(5000, 64, 2048)          // 2048
//	sanitizer.Slug("https://example.com/a")  // "https-example-com-a"
//
// None of the helpers returns an error and all are safe for concurrent use.
package sanitizer
