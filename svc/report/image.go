package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// Image returns the metric's QR image in format f. Raster images requested
// as SVG are wrapped in an SVG document; vector images cannot be rasterized.
func Image(m qrstate.GenerationMetric, f Format) ([]byte, error) {
	if !f.IsImage() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if m.DataURL == "" {
		return nil, ErrNoImage
	}

	mime, data, err := qrcode.DecodeDataURL(m.DataURL)
	if err != nil {
		return nil, err
	}

	switch {
	case mime == f.ContentType():
		return data, nil
	case f == FormatSVG && mime != qrcode.MIMESVG:
		w, h := m.Size, m.Size
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			w, h = cfg.Width, cfg.Height
		}
		return qrcode.WrapInSVG(m.DataURL, w, h), nil
	default:
		return nil, fmt.Errorf("%w: %s to %s", ErrUnsupportedType, mime, f)
	}
}
