package bench

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/svc/benchmark"
)

// GenerateResponse acknowledges a started batch.
type GenerateResponse struct {
	Status     string   `json:"status"`
	Iterations int      `json:"iterations"`
	Libraries  []string `json:"libraries"`
}

func (m *Module) generate(r *http.Request, _ empty) handler.Response {
	ctx := context.WithoutCancel(r.Context())
	iterations := m.store.State().Iterations

	err := m.runner.Start(ctx, func(res benchmark.Result, err error) {
		if err != nil {
			return
		}
		m.notifier.Success(ctx, fmt.Sprintf("Generated %d QR codes in %s", res.Generations, res.Duration.Round(time.Millisecond)))
	})
	switch {
	case errors.Is(err, benchmark.ErrBusy):
		return handler.JSONError(handler.ErrConflict.WithMessage("generation already running"))
	case err != nil:
		m.logger.ErrorContext(ctx, "generation not started", logger.Error(err))
		return handler.JSONError(err)
	}

	return handler.JSON(GenerateResponse{
		Status:     "started",
		Iterations: iterations,
		Libraries:  m.runner.Libraries(),
	}, handler.WithJSONStatus(http.StatusAccepted))
}
