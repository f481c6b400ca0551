package qrcode

import (
	"fmt"
	"net/http"
)

// Default returns one encoder per supported library, in benchmark order.
func Default() []Encoder {
	return []Encoder{
		NewPNGEncoder(),
		NewSVGEncoder(),
		NewBarcodeEncoder(),
	}
}

// Lookup returns the encoder named name from encoders.
func Lookup(encoders []Encoder, name string) (Encoder, error) {
	for _, e := range encoders {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoder, name)
}

// Names returns the names of encoders in order.
func Names(encoders []Encoder) []string {
	out := make([]string, len(encoders))
	for i, e := range encoders {
		out[i] = e.Name()
	}
	return out
}

func sniffImageType(data []byte) string {
	return http.DetectContentType(data)
}
