package benchmark

import "errors"

var (
	ErrBusy       = errors.New("benchmark: a run is already in progress")
	ErrNoEncoders = errors.New("benchmark: no encoders configured")
	ErrStep       = errors.New("benchmark: generation step failed")
	ErrPanic      = errors.New("benchmark: generation step panicked")
	ErrLogo       = errors.New("benchmark: invalid logo")
)
