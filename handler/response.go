package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

// Empty answers with status and no body.
func Empty(status int) Response {
	return ResponseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(status)
		return nil
	})
}

// Blob writes data with contentType inline.
func Blob(contentType string, data []byte) Response {
	return ResponseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(data)
		return err
	})
}

// Attachment writes data as a download named filename.
func Attachment(filename, contentType string, data []byte) Response {
	inner := Blob(contentType, data)
	return ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return inner.Render(w, r)
	})
}
