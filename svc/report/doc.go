// Package report turns a library's metric stack into downloadable
// artifacts: JSON and CSV performance exports and the current QR image as
// PNG or SVG. It also holds the human readable formatting helpers used by
// the CLI and HTTP layers.
//
// Rendering is pure (Performance, WriteJSON, WriteCSV, Image). Exporter
// adds persistence through a file.Storage backend.
package report
