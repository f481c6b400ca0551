package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"
)

// File describes a stored artifact.
type File struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mimeType"`
	URL      string `json:"url"`
}

// Entry is one item of a directory listing.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size"`
}

// Storage persists artifacts.
type Storage interface {
	// Put writes data to p, replacing any previous content.
	Put(ctx context.Context, p string, data []byte, contentType string) (*File, error)
	// Get reads the content stored at p.
	Get(ctx context.Context, p string) ([]byte, error)
	// Delete removes the artifact at p.
	Delete(ctx context.Context, p string) error
	// Exists reports whether an artifact is stored at p.
	Exists(ctx context.Context, p string) bool
	// List returns the entries directly below dir.
	List(ctx context.Context, dir string) ([]Entry, error)
	// URL returns the public URL of p.
	URL(p string) string
}

// LogoMIMETypes are the image types accepted as a QR logo.
var LogoMIMETypes = []string{"image/png", "image/jpeg", "image/gif"}

// MaxLogoSize is the upper bound of an uploaded logo.
const MaxLogoSize = 5 << 20

// DetectMIMEType sniffs the content type from the first bytes of data.
func DetectMIMEType(data []byte) string {
	return http.DetectContentType(data)
}

// GetMIMEType sniffs the content type of an uploaded file.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return DetectMIMEType(head[:n]), nil
}

// ValidateSize rejects uploads larger than maxBytes.
func ValidateSize(fh *multipart.FileHeader, maxBytes int64) error {
	if fh == nil {
		return ErrNilFileHeader
	}
	if fh.Size > maxBytes {
		return fmt.Errorf("%w: %d > %d", ErrFileTooLarge, fh.Size, maxBytes)
	}
	return nil
}

// ValidateMIMEType rejects uploads whose sniffed type is not in allowed.
func ValidateMIMEType(fh *multipart.FileHeader, allowed ...string) error {
	mime, err := GetMIMEType(fh)
	if err != nil {
		return err
	}
	if !slices.Contains(allowed, mime) {
		return fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mime)
	}
	return nil
}

// ReadAll returns the full content of an uploaded file.
func ReadAll(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return data, nil
}

// ReadLogo validates an uploaded logo and returns its bytes and MIME type.
func ReadLogo(fh *multipart.FileHeader) ([]byte, string, error) {
	if err := ValidateSize(fh, MaxLogoSize); err != nil {
		return nil, "", err
	}
	data, err := ReadAll(fh)
	if err != nil {
		return nil, "", err
	}
	mime, err := ValidateLogo(data)
	if err != nil {
		return nil, "", err
	}
	return data, mime, nil
}

// ValidateLogo checks raw logo bytes against the size and type limits and
// returns the sniffed MIME type.
func ValidateLogo(data []byte) (string, error) {
	if len(data) > MaxLogoSize {
		return "", fmt.Errorf("%w: %d > %d", ErrFileTooLarge, len(data), MaxLogoSize)
	}
	mime := DetectMIMEType(data)
	if !slices.Contains(LogoMIMETypes, mime) {
		return "", fmt.Errorf("%w: %s", ErrMIMETypeNotAllowed, mime)
	}
	return mime, nil
}

// SanitizeFilename reduces name to a safe single path element.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return -1
		case strings.ContainsRune(`<>:"|?*`, r):
			return '_'
		}
		return r
	}, name)
	name = strings.TrimLeft(strings.TrimSpace(name), ".")
	if name == "" || name == "/" {
		return "file"
	}
	return name
}

// cleanKey normalizes a storage path to a slash-separated relative key and
// rejects traversal.
func cleanKey(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
		}
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return p, nil
}
