// Package qrstate holds the application store of qrbench: the QR parameters
// the user edits, one metric stack per QR library and the aggregates derived
// from each stack.
//
// The store is built from a pkg/store slice named "QRCodeStore". Reducers
// never reject input. Sizes and iteration counts are clamped and raw
// measurements are sanitized before they reach a stack, so aggregates stay
// finite.
//
//	st := qrstate.New(qrstate.WithLogger(log))
//	st.SetValue("https://example.com")
//	st.AddMetric("qrcode", qrstate.GenerationMetric{RenderTime: 1.2})
//	m := st.Stack("qrcode").Metrics
package qrstate
