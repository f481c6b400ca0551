package registry

import "errors"

var (
	ErrInvalidName      = errors.New("registry: invalid package name")
	ErrPackageNotFound  = errors.New("registry: package not found")
	ErrNoVersionData    = errors.New("registry: no version data")
	ErrUnexpectedStatus = errors.New("registry: unexpected status")
	ErrDecode           = errors.New("registry: malformed response")
	ErrUnavailable      = errors.New("registry: temporarily unavailable")
)
