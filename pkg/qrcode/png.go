package qrcode

import (
	"context"
	"errors"

	skipqrcode "github.com/skip2/go-qrcode"
)

// PNGEncoder renders PNG images with github.com/skip2/go-qrcode.
type PNGEncoder struct {
	level skipqrcode.RecoveryLevel
}

// NewPNGEncoder returns an encoder using medium error correction.
func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{level: skipqrcode.Medium}
}

// Name implements Encoder.
func (e *PNGEncoder) Name() string { return "go-qrcode" }

// Encode implements Encoder. The library draws a fixed four-module quiet
// zone, so any non-zero margin keeps it and a zero margin disables it.
func (e *PNGEncoder) Encode(_ context.Context, req Request) (Result, error) {
	req, pal, err := prepare(req)
	if err != nil {
		return Result{}, err
	}

	q, err := skipqrcode.New(req.Content, e.level)
	if err != nil {
		return Result{}, errors.Join(ErrFailedToGenerate, err)
	}
	q.ForegroundColor = pal.fg
	q.BackgroundColor = pal.bg
	q.DisableBorder = req.Style.Margin == 0

	data, err := q.PNG(req.Size)
	if err != nil {
		return Result{}, errors.Join(ErrFailedToGenerate, err)
	}

	return newResult(MIMEPNG, overlayPNG(data, req.Logo, req.Style.LogoStyle)), nil
}
