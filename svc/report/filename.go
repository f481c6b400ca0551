package report

import (
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/qrbench/pkg/sanitizer"
)

const previewLength = 20

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename builds a download name of the form
// qrcode-<package>-<content preview>[-with-logo]-<YYYY-MM-DD>.
// Empty parts are skipped.
func Filename(pkg, content string, hasLogo bool, now time.Time) string {
	preview := sanitizer.Slug(sanitizer.MaxLength(content, previewLength))

	parts := []string{"qrcode", nonAlnum.ReplaceAllString(pkg, "-"), preview}
	if hasLogo {
		parts = append(parts, "with-logo")
	}
	parts = append(parts, now.UTC().Format(time.DateOnly))

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "-")
}

// PerformanceFilename is the default base name of a performance export.
func PerformanceFilename(pkg string) string {
	return nonAlnum.ReplaceAllString(pkg, "-") + "-performance-data"
}
