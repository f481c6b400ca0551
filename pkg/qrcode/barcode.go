package qrcode

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"golang.org/x/image/draw"
)

// BarcodeEncoder renders PNG images with github.com/boombuler/barcode.
type BarcodeEncoder struct {
	level qr.ErrorCorrectionLevel
}

// NewBarcodeEncoder returns an encoder using medium error correction.
func NewBarcodeEncoder() *BarcodeEncoder {
	return &BarcodeEncoder{level: qr.M}
}

// Name implements Encoder.
func (e *BarcodeEncoder) Name() string { return "boombuler-barcode" }

// Encode implements Encoder.
func (e *BarcodeEncoder) Encode(_ context.Context, req Request) (Result, error) {
	req, pal, err := prepare(req)
	if err != nil {
		return Result{}, err
	}

	code, err := qr.Encode(req.Content, e.level, qr.Auto)
	if err != nil {
		return Result{}, errors.Join(ErrFailedToGenerate, err)
	}

	modules := code.Bounds().Dx()
	total := modules + 2*req.Style.Margin
	inner := req.Size * modules / total
	if inner < modules {
		inner = modules
	}
	scaled, err := barcode.Scale(code, inner, inner)
	if err != nil {
		return Result{}, errors.Join(ErrFailedToGenerate, err)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, max(req.Size, inner), max(req.Size, inner)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(pal.bg), image.Point{}, draw.Src)
	offset := (canvas.Bounds().Dx() - inner) / 2
	b := scaled.Bounds()
	for y := range inner {
		for x := range inner {
			r, _, _, _ := scaled.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if r < 0x8000 {
				canvas.SetNRGBA(offset+x, offset+y, pal.fg)
			}
		}
	}

	var img image.Image = canvas
	if len(req.Logo) > 0 {
		if logo, err := DecodeLogo(req.Logo); err == nil {
			img = Overlay(canvas, logo, req.Style.LogoStyle)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, errors.Join(ErrFailedToGenerate, err)
	}
	return newResult(MIMEPNG, buf.Bytes()), nil
}
