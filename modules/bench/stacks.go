package bench

import (
	"cmp"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
	"github.com/dmitrymomot/qrbench/svc/report"
)

// StackRequest addresses one library and, for exports, a format.
type StackRequest struct {
	Library string `path:"library"`
	Format  string `path:"format"`
}

// stack returns the stack of library. Libraries that are neither
// registered nor recorded are unknown.
func (m *Module) stack(library string) (qrstate.MetricStack, error) {
	st, ok := m.store.State().Stacks[library]
	if !ok && !slices.Contains(m.runner.Libraries(), library) {
		return st, handler.ErrNotFound.WithMessage("unknown library")
	}
	return st, nil
}

func (m *Module) getStack(_ *http.Request, req StackRequest) handler.Response {
	st, err := m.stack(req.Library)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(newStackView(req.Library, st))
}

func (m *Module) getCurrent(r *http.Request, req StackRequest) handler.Response {
	if _, err := m.stack(req.Library); err != nil {
		return handler.JSONError(err)
	}
	metric, ok := m.store.Current(req.Library)
	if !ok {
		return handler.JSONError(handler.ErrNotFound.WithMessage("no current generation"))
	}

	f := nativeFormat(metric.DataURL)
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, err := report.ParseFormat(q)
		if err != nil || !parsed.IsImage() {
			return handler.JSONError(handler.ErrBadRequest.WithMessage("format must be png or svg"))
		}
		f = parsed
	}

	data, err := report.Image(metric, f)
	if err != nil {
		return handler.JSONError(reportError(err))
	}
	return handler.Blob(f.ContentType(), data)
}

func (m *Module) export(r *http.Request, req StackRequest) handler.Response {
	f, err := report.ParseFormat(req.Format)
	if err != nil {
		return handler.JSONError(handler.ErrBadRequest.WithMessage("unknown export format"))
	}
	st, err := m.stack(req.Library)
	if err != nil {
		return handler.JSONError(err)
	}

	if r.URL.Query().Get("store") != "" {
		if !m.canStore {
			return handler.JSONError(handler.ErrBadRequest.WithMessage("artifact storage is not configured"))
		}
		stored, err := m.exporter.Export(r.Context(), req.Library, st, f)
		if err != nil {
			return handler.JSONError(reportError(err))
		}
		return handler.JSON(stored, handler.WithJSONStatus(http.StatusCreated))
	}

	a, err := m.exporter.Render(req.Library, st, f)
	if err != nil {
		return handler.JSONError(reportError(err))
	}
	return handler.Attachment(a.Name, a.ContentType, a.Data)
}

// listArtifacts lists ?dir=reports (the default) or ?dir=images.
func (m *Module) listArtifacts(r *http.Request, _ empty) handler.Response {
	dir := cmp.Or(r.URL.Query().Get("dir"), report.ReportsDir)
	if dir != report.ReportsDir && dir != report.ImagesDir {
		return handler.JSONError(handler.ErrNotFound.WithMessage("unknown artifact directory"))
	}
	entries, err := m.exporter.List(r.Context(), dir)
	if err != nil {
		return handler.JSONError(err)
	}
	if entries == nil {
		entries = []file.Entry{}
	}
	return handler.JSON(entries)
}

func nativeFormat(dataURL string) report.Format {
	if strings.HasPrefix(dataURL, "data:"+qrcode.MIMESVG) {
		return report.FormatSVG
	}
	return report.FormatPNG
}

func reportError(err error) error {
	switch {
	case errors.Is(err, report.ErrNoImage):
		return handler.ErrNotFound.WithMessage("no image recorded")
	case errors.Is(err, report.ErrUnsupportedType):
		return handler.ErrUnprocessableEntity.WithMessage("vector images cannot be converted to png")
	case errors.Is(err, report.ErrUnknownFormat):
		return handler.ErrBadRequest.WithMessage("unknown export format")
	default:
		return err
	}
}
