package bench

import (
	"errors"
	"mime"
	"net/http"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/qrcode"
)

// LogoField is the multipart field carrying the upload.
const LogoField = "logo"

// LogoRequest is the JSON form of PUT /logo.
type LogoRequest struct {
	DataURL string `json:"dataURL"`
}

func (m *Module) getLogo(_ *http.Request, _ empty) handler.Response {
	logo := m.store.State().Logo
	if logo == "" {
		return handler.JSONError(handler.ErrNotFound.WithMessage("no logo set"))
	}
	mimeType, data, err := qrcode.DecodeDataURL(logo)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.Blob(mimeType, data)
}

func (m *Module) putLogo(r *http.Request, _ empty) handler.Response {
	data, mimeType, err := readLogo(r)
	if err != nil {
		return handler.JSONError(logoError(err))
	}
	m.store.SetLogo(qrcode.EncodeDataURL(mimeType, data))
	return handler.JSON(m.view())
}

func (m *Module) deleteLogo(_ *http.Request, _ empty) handler.Response {
	m.store.SetLogo("")
	return handler.Empty(http.StatusNoContent)
}

// readLogo accepts a multipart upload or a JSON data URL.
func readLogo(r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(nil, r.Body, file.MaxLogoSize+1<<20)
		if err := r.ParseMultipartForm(file.MaxLogoSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", errors.Join(file.ErrFileTooLarge, err)
			}
			return nil, "", handler.ErrBadRequest.WithMessage("malformed multipart body")
		}
		_, fh, err := r.FormFile(LogoField)
		if err != nil {
			return nil, "", handler.ErrBadRequest.WithMessage("missing logo file")
		}
		return file.ReadLogo(fh)
	}

	var req LogoRequest
	if err := handler.BindJSON()(r, &req); err != nil {
		return nil, "", err
	}
	_, data, err := qrcode.DecodeDataURL(req.DataURL)
	if err != nil {
		return nil, "", handler.ErrBadRequest.WithMessage("invalid data URL")
	}
	mimeType, err := file.ValidateLogo(data)
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}

func logoError(err error) error {
	switch {
	case errors.Is(err, file.ErrFileTooLarge):
		return handler.ErrRequestTooLarge.WithMessage("logo exceeds 5MB")
	case errors.Is(err, file.ErrMIMETypeNotAllowed):
		return handler.ErrUnsupportedMedia.WithMessage("logo must be PNG, JPEG or GIF")
	default:
		return err
	}
}
