package bench

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/svc/registry"
)

// PackageRequest carries the package name, scoped names included.
type PackageRequest struct {
	Name string `path:"*"`
}

func (m *Module) getPackage(r *http.Request, req PackageRequest) handler.Response {
	info, err := m.packages.PackageInfo(r.Context(), req.Name)
	if err != nil {
		m.logger.WarnContext(r.Context(), "package lookup failed",
			logger.Package(req.Name),
			logger.Error(err))
		return handler.JSONError(registryError(err))
	}
	return handler.JSON(info)
}

func registryError(err error) error {
	switch {
	case errors.Is(err, registry.ErrInvalidName):
		return handler.ErrBadRequest.WithMessage("invalid package name")
	case errors.Is(err, registry.ErrPackageNotFound):
		return handler.ErrNotFound.WithMessage("package not found")
	case errors.Is(err, registry.ErrUnavailable):
		return handler.ErrServiceUnavailable.WithMessage("registry temporarily unavailable")
	default:
		return handler.ErrBadGateway.WithMessage("registry request failed")
	}
}
