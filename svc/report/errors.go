package report

import "errors"

var (
	ErrUnknownFormat   = errors.New("report: unknown format")
	ErrNoImage         = errors.New("report: metric has no image")
	ErrUnsupportedType = errors.New("report: image conversion not supported")
	ErrStore           = errors.New("report: failed to store artifact")
)
