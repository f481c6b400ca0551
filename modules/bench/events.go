package bench

import (
	"net/http"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/svc/notify"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// LoadingSignal mirrors the loading indicator.
type LoadingSignal struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

type stateSignals struct {
	State StateView `json:"state"`
}

type loadingSignals struct {
	Loading LoadingSignal `json:"loading"`
}

type toastSignals struct {
	Toast notify.Event `json:"toast"`
}

// events streams the state after every dispatch together with toasts and
// loading changes. The first patches carry the current state and loading
// indicator.
func (m *Module) events(_ *http.Request, _ empty) handler.Response {
	return handler.SSE(func(r *http.Request, stream *handler.Stream) error {
		ctx := r.Context()
		states := m.store.Subscribe(ctx)
		defer states.Close()
		notes := m.notifier.Subscribe(ctx)
		defer notes.Close()

		if err := stream.Signals(stateSignals{State: m.view()}); err != nil {
			return nil
		}
		loading := LoadingSignal{}
		if ev, ok := m.notifier.Loading(); ok {
			loading = LoadingSignal{Visible: true, Message: ev.Message}
		}
		if err := stream.Signals(loadingSignals{Loading: loading}); err != nil {
			return nil
		}

		for {
			var payload any
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-states.Receive():
				if !ok {
					return nil
				}
				payload = stateSignals{State: m.snapshotView(msg.Data)}
			case msg, ok := <-notes.Receive():
				if !ok {
					return nil
				}
				payload = eventSignals(msg.Data)
			}
			if err := stream.Signals(payload); err != nil {
				m.logger.DebugContext(ctx, "event stream closed")
				return nil
			}
		}
	})
}

func (m *Module) snapshotView(s qrstate.State) StateView {
	return newStateView(s, m.runner.Running(), m.runner.Libraries())
}

func eventSignals(ev notify.Event) any {
	switch ev.Type {
	case notify.TopicLoadingShow:
		return loadingSignals{Loading: LoadingSignal{Visible: true, Message: ev.Message}}
	case notify.TopicLoadingHide:
		return loadingSignals{Loading: LoadingSignal{}}
	default:
		return toastSignals{Toast: ev}
	}
}
