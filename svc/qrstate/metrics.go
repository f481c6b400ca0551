package qrstate

import "github.com/dmitrymomot/qrbench/pkg/sanitizer"

// Calculate derives the aggregate of stack. An empty stack yields zero values
// and a nil LastGeneration.
func Calculate(stack []GenerationMetric) AggregatedMetrics {
	n := len(stack)
	if n == 0 {
		return AggregatedMetrics{}
	}

	var totalRender, totalMemory float64
	lo, hi := stack[0].RenderTime, stack[0].RenderTime
	for _, m := range stack {
		totalRender += m.RenderTime
		totalMemory += m.MemoryUsage
		lo = min(lo, m.RenderTime)
		hi = max(hi, m.RenderTime)
	}

	last := stack[n-1]
	return AggregatedMetrics{
		TotalGenerations:   n,
		AverageRenderTime:  totalRender / float64(n),
		MinRenderTime:      lo,
		MaxRenderTime:      hi,
		TotalMemoryUsage:   totalMemory,
		AverageMemoryUsage: totalMemory / float64(n),
		LastGeneration:     &last,
	}
}

// Sanitize replaces non-finite or negative measurements with zero.
func Sanitize(m GenerationMetric) GenerationMetric {
	m.RenderTime = sanitizer.Measurement(m.RenderTime)
	m.MemoryUsage = sanitizer.Measurement(m.MemoryUsage)
	m.FileSize = sanitizer.Measurement(m.FileSize)
	return m
}
