package report

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path"
	"time"

	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// Directories used below the storage root.
const (
	ReportsDir = "reports"
	ImagesDir  = "images"
)

// Exporter renders artifacts and persists them.
type Exporter struct {
	storage file.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter creates an Exporter writing to storage.
func NewExporter(storage file.Storage, opts ...Option) *Exporter {
	e := &Exporter{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logger.OrDiscard(e.logger).With(logger.Component("report"))
	return e
}

// Artifact is a rendered file ready for download or storage.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Render renders the stack of library in format f. Image formats use the
// last generation; value is the content used for the file name preview.
func (e *Exporter) Render(library string, stack qrstate.MetricStack, f Format) (Artifact, error) {
	now := e.now()

	if f.IsImage() {
		last := stack.Metrics.LastGeneration
		if last == nil {
			return Artifact{}, ErrNoImage
		}
		data, err := Image(*last, f)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{
			Name:        Filename(library, last.Value, last.HasLogo(), now) + "." + string(f),
			ContentType: f.ContentType(),
			Data:        data,
		}, nil
	}

	p := NewPerformance(library, stack.Stack, now)
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatJSON:
		err = WriteJSON(&buf, p)
	case FormatCSV:
		err = WriteCSV(&buf, p)
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Name:        PerformanceFilename(library) + "-" + now.UTC().Format(time.DateOnly) + "." + string(f),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// Export renders the stack and stores the artifact. Reports land in
// ReportsDir and images in ImagesDir.
func (e *Exporter) Export(ctx context.Context, library string, stack qrstate.MetricStack, f Format) (*file.File, error) {
	a, err := e.Render(library, stack, f)
	if err != nil {
		return nil, err
	}

	dir := ReportsDir
	if f.IsImage() {
		dir = ImagesDir
	}

	stored, err := e.storage.Put(ctx, path.Join(dir, file.SanitizeFilename(a.Name)), a.Data, a.ContentType)
	if err != nil {
		e.logger.ErrorContext(ctx, "export failed",
			logger.Library(library),
			slog.String("format", string(f)),
			logger.Error(err))
		return nil, errors.Join(ErrStore, err)
	}

	e.logger.InfoContext(ctx, "artifact exported",
		logger.Library(library),
		slog.String("path", stored.Path),
		slog.Int64("size", stored.Size))
	return stored, nil
}

// List returns the stored artifacts of dir.
func (e *Exporter) List(ctx context.Context, dir string) ([]file.Entry, error) {
	return e.storage.List(ctx, dir)
}
