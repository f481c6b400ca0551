package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerate is returned when the QR library fails.
	ErrFailedToGenerate = errors.New("failed to generate QR code")
	// ErrInvalidColor is returned for malformed hex colors.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidDataURL is returned when a data URL cannot be decoded.
	ErrInvalidDataURL = errors.New("invalid data URL")
	// ErrUnknownEncoder is returned by Lookup for unknown names.
	ErrUnknownEncoder = errors.New("unknown encoder")
)
