// Package registry fetches npm package metadata and download statistics.
//
// Client.PackageInfo combines three requests, issued concurrently with
// golang.org/x/sync/errgroup: the registry document of the package (required)
// and the last-week and last-month download counters (best effort; failures
// are logged and leave the fields empty). Results are cached through
// pkg/cache, which may be backed by Redis so several processes share them.
//
// Transient upstream failures (network errors, 429 and 5xx responses) are
// retried with exponential backoff. Repeated failures open a circuit breaker
// that fails fast with ErrUnavailable until the recovery timeout passes.
package registry
