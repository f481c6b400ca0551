package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/svc/notify"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// Result summarizes a finished run.
type Result struct {
	BatchID     string        `json:"batchId"`
	Iterations  int           `json:"iterations"`
	Generations int           `json:"generations"`
	Duration    time.Duration `json:"duration"`
}

// Runner executes generation batches.
type Runner struct {
	store    *qrstate.Store
	encoders []qrcode.Encoder
	notifier *notify.Notifier
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
	running  atomic.Bool
	wg       sync.WaitGroup
}

// Option configures a Runner.
type Option func(*Runner)

// WithEncoders replaces the default encoder set.
func WithEncoders(encoders ...qrcode.Encoder) Option {
	return func(r *Runner) {
		r.encoders = encoders
	}
}

// WithNotifier sets where progress and failures are reported.
func WithNotifier(n *notify.Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithIDGenerator overrides the batch id generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithClock overrides time.Now for metric timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Runner over store. Without WithEncoders it uses
// qrcode.Default().
func New(store *qrstate.Store, opts ...Option) *Runner {
	r := &Runner{
		store:    store,
		encoders: qrcode.Default(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notifier == nil {
		r.notifier = notify.New(notify.WithLogger(r.logger))
	}
	r.logger = logger.OrDiscard(r.logger).With(logger.Component("benchmark"))
	return r
}

// Libraries returns the encoder names in run order.
func (r *Runner) Libraries() []string {
	return qrcode.Names(r.encoders)
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run executes one batch with the current store settings. Every iteration
// gets a fresh id shared by all its metrics; the last id becomes the
// store's current id once the batch completes.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if err := r.claim(); err != nil {
		return Result{}, err
	}
	defer r.release()
	return r.run(ctx)
}

// Start claims the runner and executes the batch in the background. It
// returns ErrBusy or ErrNoEncoders without starting anything. done, when
// non-nil, receives the outcome.
func (r *Runner) Start(ctx context.Context, done func(Result, error)) error {
	if err := r.claim(); err != nil {
		return err
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.release()
		res, err := r.run(context.WithoutCancel(ctx))
		if done != nil {
			done(res, err)
		}
	}()
	return nil
}

// Wait blocks until background runs started with Start have finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) claim() error {
	if len(r.encoders) == 0 {
		return ErrNoEncoders
	}
	if !r.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (r *Runner) release() {
	r.running.Store(false)
}

func (r *Runner) run(ctx context.Context) (res Result, err error) {
	state := r.store.State()
	started := time.Now()

	r.notifier.ShowLoading(ctx, fmt.Sprintf("Generating QR codes... (%d iterations)", state.Iterations))
	defer r.notifier.HideLoading(ctx)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
		if err != nil {
			r.logger.ErrorContext(ctx, "generation run failed",
				logger.BatchID(res.BatchID),
				logger.Iteration(res.Iterations),
				logger.Error(err))
			r.notifier.Error(ctx, "QR code generation failed")
		}
	}()

	req, err := r.request(state)
	if err != nil {
		return res, err
	}

	for i := range state.Iterations {
		res.Iterations = i + 1
		progress := int(math.Round(float64(i+1) / float64(state.Iterations) * 100))
		r.notifier.ShowLoading(ctx, fmt.Sprintf("Generating QR codes... (%d/%d) - %d%%", i+1, state.Iterations, progress))

		id := r.newID()
		res.BatchID = id

		for _, enc := range r.encoders {
			metric, err := r.step(ctx, enc, req, id, state)
			if err != nil {
				return res, err
			}
			r.store.AddMetric(enc.Name(), metric)
			res.Generations++
		}
	}

	r.store.SetCurrentID(res.BatchID)
	res.Duration = time.Since(started)

	r.logger.InfoContext(ctx, "generation run completed",
		logger.BatchID(res.BatchID),
		slog.Int("iterations", res.Iterations),
		slog.Int("generations", res.Generations),
		logger.Duration(res.Duration))
	return res, nil
}

// step renders one code and measures it.
func (r *Runner) step(ctx context.Context, enc qrcode.Encoder, req qrcode.Request, id string, state qrstate.State) (qrstate.GenerationMetric, error) {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	out, err := enc.Encode(ctx, req)

	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	if err != nil {
		return qrstate.GenerationMetric{}, errors.Join(ErrStep, fmt.Errorf("%s: %w", enc.Name(), err))
	}

	size := float64(len(out.Data))
	if out.DataURL != "" {
		size = qrcode.DecodedSize(out.DataURL)
	}

	memory := float64(after.TotalAlloc) - float64(before.TotalAlloc)
	r.logger.DebugContext(ctx, "code generated",
		logger.Library(enc.Name()),
		logger.BatchID(id),
		logger.Group("measured",
			logger.Duration(elapsed),
			slog.Float64("memory_bytes", memory),
			slog.Float64("file_bytes", size)))

	return qrstate.GenerationMetric{
		ID:          id,
		RenderTime:  float64(elapsed) / float64(time.Millisecond),
		MemoryUsage: memory,
		FileSize:    size,
		Timestamp:   r.now(),
		Value:       state.Value,
		Size:        state.Size,
		Logo:        state.Logo,
		DataURL:     out.DataURL,
	}, nil
}

// request maps the store settings onto an encoder request. The logo data
// URL is decoded once per run.
func (r *Runner) request(state qrstate.State) (qrcode.Request, error) {
	req := qrcode.Request{
		Content: state.Value,
		Size:    state.Size,
		Style: qrcode.Style{
			DotStyle:        string(state.StyleSettings.DotStyle),
			CornerStyle:     string(state.StyleSettings.CornerStyle),
			LogoStyle:       string(state.StyleSettings.LogoStyle),
			ForegroundColor: state.StyleSettings.ForegroundColor,
			BackgroundColor: state.StyleSettings.BackgroundColor,
			Margin:          state.StyleSettings.Margin,
		},
	}
	if state.Logo == "" {
		return req, nil
	}

	_, logo, err := qrcode.DecodeDataURL(state.Logo)
	if err != nil {
		return req, errors.Join(ErrLogo, err)
	}
	req.Logo = logo
	return req, nil
}
