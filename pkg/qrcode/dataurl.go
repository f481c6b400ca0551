package qrcode

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// EncodeDataURL returns a base64 data URL for data.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a data URL into its MIME type and payload. Both base64
// and percent-encoded payloads are accepted.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}

	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if mime == "" {
		mime = "text/plain"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
		}
		return mime, data, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	return mime, []byte(text), nil
}

// DecodedSize estimates the byte size of a base64 data URL payload.
func DecodedSize(dataURL string) float64 {
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return 0
	}
	return float64(len(payload)) * 0.75
}

// WrapInSVG embeds a raster data URL in an SVG document of the given size.
func WrapInSVG(dataURL string, width, height int) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n", width, height, width, height)
	b.WriteString("  <title>QR Code</title>\n")
	b.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	fmt.Fprintf(&b, `  <image x="0" y="0" width="%d" height="%d" xlink:href="%s"/>`+"\n", width, height, dataURL)
	b.WriteString("</svg>\n")
	return []byte(b.String())
}
