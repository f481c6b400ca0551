package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/qrbench/pkg/broadcast"
	"github.com/dmitrymomot/qrbench/pkg/logger"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Topics of published events.
const (
	TopicToast       = "toast"
	TopicLoadingShow = "loading:show"
	TopicLoadingHide = "loading:hide"
)

// Kind is the severity of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Event is one notification.
type Event struct {
	Type     string        `json:"type"`
	Kind     Kind          `json:"kind,omitempty"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"-"`
}

// MarshalJSON renders Duration in milliseconds.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	return json.Marshal(struct {
		alias
		Duration int64 `json:"duration,omitempty"`
	}{alias: alias(e), Duration: e.Duration.Milliseconds()})
}

// Notifier publishes notifications.
type Notifier struct {
	feed     broadcast.Broadcaster[Event]
	logger   *slog.Logger
	duration time.Duration

	mu      sync.RWMutex
	loading *Event
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithBroadcaster replaces the in-memory feed.
func WithBroadcaster(b broadcast.Broadcaster[Event]) Option {
	return func(n *Notifier) {
		if b != nil {
			n.feed = b
		}
	}
}

// WithDuration sets the default toast duration.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		logger:   logger.Discard(),
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.feed == nil {
		n.feed = broadcast.NewMemoryBroadcaster[Event](32)
	}
	return n
}

// Toast publishes a toast of the given kind.
func (n *Notifier) Toast(ctx context.Context, kind Kind, message string) {
	n.publish(ctx, Event{Type: TopicToast, Kind: kind, Message: message, Duration: n.duration})
}

// Success publishes a success toast.
func (n *Notifier) Success(ctx context.Context, message string) { n.Toast(ctx, KindSuccess, message) }

// Error publishes an error toast.
func (n *Notifier) Error(ctx context.Context, message string) { n.Toast(ctx, KindError, message) }

// Info publishes an info toast.
func (n *Notifier) Info(ctx context.Context, message string) { n.Toast(ctx, KindInfo, message) }

// Warning publishes a warning toast.
func (n *Notifier) Warning(ctx context.Context, message string) { n.Toast(ctx, KindWarning, message) }

// ShowLoading shows the loading indicator, or updates its message.
func (n *Notifier) ShowLoading(ctx context.Context, message string) {
	ev := Event{Type: TopicLoadingShow, Message: message}
	n.mu.Lock()
	n.loading = &ev
	n.mu.Unlock()
	n.publish(ctx, ev)
}

// HideLoading hides the loading indicator.
func (n *Notifier) HideLoading(ctx context.Context) {
	n.mu.Lock()
	n.loading = nil
	n.mu.Unlock()
	n.publish(ctx, Event{Type: TopicLoadingHide})
}

// Loading returns the active loading event, if any.
func (n *Notifier) Loading() (Event, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.loading == nil {
		return Event{}, false
	}
	return *n.loading, true
}

// Subscribe returns a feed of events bound to ctx.
func (n *Notifier) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return n.feed.Subscribe(ctx)
}

// Close ends all subscriptions.
func (n *Notifier) Close() error {
	return n.feed.Close()
}

func (n *Notifier) publish(ctx context.Context, ev Event) {
	if err := n.feed.Publish(ctx, ev.Type, ev); err != nil {
		n.logger.DebugContext(ctx, "notification dropped",
			slog.String("type", ev.Type),
			logger.Error(err),
		)
	}
}
