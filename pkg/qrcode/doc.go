// Package qrcode wraps the QR libraries qrbench compares behind one Encoder
// interface.
//
// Three encoders are provided:
//
//   - PNGEncoder ("go-qrcode") renders a PNG with github.com/skip2/go-qrcode.
//   - SVGEncoder ("go-qrcode-svg") builds an SVG document from the module
//     bitmap of github.com/skip2/go-qrcode and honours the dot and corner styles.
//   - BarcodeEncoder ("boombuler-barcode") renders a PNG with
//     github.com/boombuler/barcode.
//
// Every encoder validates the request, applies the colors and margin of the
// Style and, when a logo is supplied, places it in the center of the code at
// 20% of the code size with a 10% margin on a white background. A logo that
// cannot be decoded is skipped and the plain code is returned.
//
// # Usage
//
//	enc := qrcode.NewPNGEncoder()
//	res, err := enc.Encode(ctx, qrcode.Request{Content: "https://example.com", Size: 256})
//	if err != nil {
//		// handle error
//	}
//	// res.Data holds the PNG, res.DataURL can go straight into an <img> tag.
//
// # Error Handling
//
// Errors are package-level sentinels comparable with errors.Is:
//
//   - ErrEmptyContent: the content was empty or whitespace.
//   - ErrFailedToGenerate: the underlying library failed.
//   - ErrInvalidColor: a style color is not #rgb or #rrggbb.
//   - ErrInvalidDataURL: a data URL could not be parsed.
//   - ErrUnknownEncoder: Lookup was given an unregistered name.
package qrcode
