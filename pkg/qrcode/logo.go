package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // logo decoding
	_ "image/jpeg" // logo decoding
	"image/png"

	"golang.org/x/image/draw"
)

// Logo placement relative to the code.
const (
	logoScale   = 0.2 // logo edge as a share of the code edge
	logoPadding = 0.1 // padding as a share of the logo edge
	logoRadius  = 8   // corner radius of the rounded background, px
)

// DecodeLogo decodes PNG, JPEG or GIF bytes.
func DecodeLogo(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}

// logoBox is the background square of the logo, centred in a canvas of the
// given edge, and the inner rectangle the logo is scaled into.
func logoBox(edge int) (outer, inner image.Rectangle) {
	logo := float64(edge) * logoScale
	pad := logo * logoPadding
	total := int(logo + 2*pad)
	x := (edge - total) / 2
	outer = image.Rect(x, x, x+total, x+total)
	inner = outer.Inset(int(pad))
	return outer, inner
}

// Overlay draws logo centred on a copy of qr over a white background shaped
// by style.
func Overlay(qr image.Image, logo image.Image, style string) *image.NRGBA {
	b := qr.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), qr, b.Min, draw.Src)

	outer, inner := logoBox(min(b.Dx(), b.Dy()))
	mask := shapeMask{rect: outer, style: style}
	white := image.NewUniform(color.White)
	draw.DrawMask(dst, outer, white, image.Point{}, mask, outer.Min, draw.Over)

	scaled := image.NewNRGBA(outer)
	draw.CatmullRom.Scale(scaled, inner, logo, logo.Bounds(), draw.Over, nil)
	draw.DrawMask(dst, outer, scaled, outer.Min, mask, outer.Min, draw.Over)

	return dst
}

// overlayPNG composites logo onto an encoded PNG. It returns the input
// untouched when either image cannot be decoded.
func overlayPNG(data, logo []byte, style string) []byte {
	if len(logo) == 0 {
		return data
	}
	qr, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	img, err := DecodeLogo(logo)
	if err != nil {
		return data
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Overlay(qr, img, style)); err != nil {
		return data
	}
	return buf.Bytes()
}

// shapeMask is an alpha mask covering rect with the given shape.
type shapeMask struct {
	rect  image.Rectangle
	style string
}

func (m shapeMask) ColorModel() color.Model { return color.AlphaModel }

func (m shapeMask) Bounds() image.Rectangle { return m.rect }

func (m shapeMask) At(x, y int) color.Color {
	if inShape(m.style, m.rect, x, y) {
		return color.Opaque
	}
	return color.Transparent
}

func inShape(style string, r image.Rectangle, x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(r) {
		return false
	}
	fx := float64(x) + 0.5
	fy := float64(y) + 0.5
	switch style {
	case ShapeCircle:
		cx := float64(r.Min.X+r.Max.X) / 2
		cy := float64(r.Min.Y+r.Max.Y) / 2
		rad := float64(r.Dx()) / 2
		return (fx-cx)*(fx-cx)+(fy-cy)*(fy-cy) <= rad*rad
	case ShapeRounded:
		rad := float64(min(logoRadius, r.Dx()/2))
		cx := clampF(fx, float64(r.Min.X)+rad, float64(r.Max.X)-rad)
		cy := clampF(fy, float64(r.Min.Y)+rad, float64(r.Max.Y)-rad)
		return (fx-cx)*(fx-cx)+(fy-cy)*(fy-cy) <= rad*rad
	default:
		return true
	}
}

func clampF(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
