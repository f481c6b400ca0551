package qrcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// finderSize is the edge of a finder pattern in modules.
const finderSize = 7

// SVGEncoder builds SVG documents from the module bitmap of
// github.com/skip2/go-qrcode.
type SVGEncoder struct {
	level skipqrcode.RecoveryLevel
}

// NewSVGEncoder returns an encoder using medium error correction.
func NewSVGEncoder() *SVGEncoder {
	return &SVGEncoder{level: skipqrcode.Medium}
}

// Name implements Encoder.
func (e *SVGEncoder) Name() string { return "go-qrcode-svg" }

// Encode implements Encoder.
func (e *SVGEncoder) Encode(_ context.Context, req Request) (Result, error) {
	req, pal, err := prepare(req)
	if err != nil {
		return Result{}, err
	}

	q, err := skipqrcode.New(req.Content, e.level)
	if err != nil {
		return Result{}, errors.Join(ErrFailedToGenerate, err)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	n := len(bitmap)
	m := req.Style.Margin
	view := n + 2*m

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" shape-rendering="crispEdges">`+"\n",
		req.Size, req.Size, view, view)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", view, view, hexString(pal.bg))
	fmt.Fprintf(&b, `<g fill="%s">`+"\n", hexString(pal.fg))
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			shape := req.Style.DotStyle
			if inFinder(x, y, n) {
				shape = req.Style.CornerStyle
			}
			writeModule(&b, shape, x+m, y+m)
		}
	}
	b.WriteString("</g>\n")

	if len(req.Logo) > 0 {
		if _, err := DecodeLogo(req.Logo); err == nil {
			writeLogo(&b, view, req.Logo, req.Style.LogoStyle)
		}
	}
	b.WriteString("</svg>\n")

	return newResult(MIMESVG, []byte(b.String())), nil
}

func inFinder(x, y, n int) bool {
	top := y < finderSize
	left := x < finderSize
	right := x >= n-finderSize
	bottom := y >= n-finderSize
	return (top && left) || (top && right) || (bottom && left)
}

func writeModule(b *strings.Builder, shape string, x, y int) {
	switch shape {
	case ShapeCircle:
		fmt.Fprintf(b, `<circle cx="%d.5" cy="%d.5" r="0.5"/>`, x, y)
	case ShapeDots:
		fmt.Fprintf(b, `<circle cx="%d.5" cy="%d.5" r="0.35"/>`, x, y)
	case ShapeRounded:
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="1" height="1" rx="0.3"/>`, x, y)
	case ShapeDiamond:
		fx, fy := float64(x), float64(y)
		fmt.Fprintf(b, `<polygon points="%g,%g %g,%g %g,%g %g,%g"/>`,
			fx+0.5, fy, fx+1, fy+0.5, fx+0.5, fy+1, fx, fy+0.5)
	case ShapeStar:
		fx, fy := float64(x), float64(y)
		fmt.Fprintf(b, `<polygon points="%g,%g %g,%g %g,%g %g,%g %g,%g %g,%g %g,%g %g,%g"/>`,
			fx+0.5, fy, fx+0.65, fy+0.35, fx+1, fy+0.5, fx+0.65, fy+0.65,
			fx+0.5, fy+1, fx+0.35, fy+0.65, fx, fy+0.5, fx+0.35, fy+0.35)
	default:
		fmt.Fprintf(b, `<rect x="%d" y="%d" width="1" height="1"/>`, x, y)
	}
	b.WriteByte('\n')
}

func writeLogo(b *strings.Builder, view int, logo []byte, style string) {
	logoEdge := float64(view) * logoScale
	pad := logoEdge * logoPadding
	total := logoEdge + 2*pad
	x := (float64(view) - total) / 2

	switch style {
	case ShapeCircle:
		fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="%g" fill="#ffffff"/>`+"\n", x+total/2, x+total/2, total/2)
	case ShapeRounded:
		fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" rx="%g" fill="#ffffff"/>`+"\n", x, x, total, total, total*0.1)
	default:
		fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" fill="#ffffff"/>`+"\n", x, x, total, total)
	}
	fmt.Fprintf(b, `<image x="%g" y="%g" width="%g" height="%g" href="%s"/>`+"\n",
		x+pad, x+pad, logoEdge, logoEdge, EncodeDataURL(sniffImageType(logo), logo))
}
