// Package benchmark runs generation batches against every configured QR
// encoder and records one metric per encoder per iteration in the
// qrstate store.
//
// Iterations run strictly in order and, within an iteration, encoders run
// strictly in registration order. Each step is timed and its heap growth
// is sampled with runtime.ReadMemStats. The first failing step aborts the
// run; the loading indicator is hidden whatever the outcome.
//
// Only one run may be active per Runner. A concurrent Run returns ErrBusy.
package benchmark
