package qrcode

import (
	"context"
	"fmt"
	"image/color"

	"github.com/dmitrymomot/qrbench/pkg/sanitizer"
)

// DefaultSize is the size in pixels used when no size is specified.
const DefaultSize = 256

// MIME types produced by the encoders.
const (
	MIMEPNG = "image/png"
	MIMESVG = "image/svg+xml"
)

// Dot and corner shapes understood by the SVG encoder.
const (
	ShapeSquare  = "square"
	ShapeCircle  = "circle"
	ShapeRounded = "rounded"
	ShapeDots    = "dots"
	ShapeStar    = "star"
	ShapeDiamond = "diamond"
)

// Style controls colors and shapes. Zero values fall back to black modules
// on a white background with square shapes.
type Style struct {
	DotStyle        string
	CornerStyle     string
	LogoStyle       string
	ForegroundColor string
	BackgroundColor string
	Margin          int // quiet zone in modules
}

// Request describes one code to render.
type Request struct {
	Content string
	Size    int
	Style   Style
	Logo    []byte // raw PNG, JPEG or GIF bytes
}

// Result is a rendered code.
type Result struct {
	Data     []byte
	MIMEType string
	DataURL  string
}

// Encoder renders QR codes through one library.
type Encoder interface {
	Name() string
	Encode(ctx context.Context, req Request) (Result, error)
}

type palette struct {
	fg, bg color.NRGBA
}

func prepare(req Request) (Request, palette, error) {
	if sanitizer.Trim(req.Content) == "" {
		return req, palette{}, ErrEmptyContent
	}
	if req.Size <= 0 {
		req.Size = DefaultSize
	}
	if req.Style.Margin < 0 {
		req.Style.Margin = 0
	}

	fg, err := ParseHexColor(req.Style.ForegroundColor, color.NRGBA{A: 0xff})
	if err != nil {
		return req, palette{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseHexColor(req.Style.BackgroundColor, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if err != nil {
		return req, palette{}, fmt.Errorf("background: %w", err)
	}
	return req, palette{fg: fg, bg: bg}, nil
}

func newResult(mime string, data []byte) Result {
	return Result{
		Data:     data,
		MIMEType: mime,
		DataURL:  EncodeDataURL(mime, data),
	}
}
