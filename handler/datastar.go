package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader marks a request that expects an event stream.
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam carries datastar signals on GET requests.
	DataStarQueryParam = "datastar"
)

// IsDataStar reports whether r was issued by a datastar client.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// Stream pushes signal patches to a datastar client.
type Stream struct {
	sse *datastar.ServerSentEventGenerator
}

// Signals patches the client signals with v encoded as JSON.
func (s *Stream) Signals(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sse.PatchSignals(data)
}

// SSE returns a Response that opens a datastar event stream and runs fn
// until it returns.
func SSE(fn func(r *http.Request, stream *Stream) error) Response {
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		stream := &Stream{sse: datastar.NewSSE(w, r)}
		return fn(r, stream)
	})
}
