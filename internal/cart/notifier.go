package cart

import (
	"headless-express/internal/domain"

	"go.uber.org/zap"
)

// Notifier receives the user-facing toast events emitted by cart mutations.
// Delivery is fire-and-forget: implementations must not block and are free to
// drop events under pressure.
type Notifier interface {
	Notify(n domain.Notification)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n domain.Notification) {
	l.logger.Info("Cart notification",
		zap.String("title", n.Title),
		zap.String("description", n.Description),
		zap.String("severity", string(n.Severity)),
	)
}

// Feed buffers notifications for the presentation layer to poll. The buffer is
// bounded; when full, new events are dropped rather than blocking a mutation.
type Feed struct {
	events chan domain.Notification
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 64
	}
	return &Feed{events: make(chan domain.Notification, size)}
}

func (f *Feed) Notify(n domain.Notification) {
	select {
	case f.events <- n:
	default:
	}
}

// Drain returns all buffered notifications in emission order, emptying the feed.
func (f *Feed) Drain() []domain.Notification {
	out := []domain.Notification{}
	for {
		select {
		case n := <-f.events:
			out = append(out, n)
		default:
			return out
		}
	}
}

// MultiNotifier fans one event out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(n domain.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// noopNotifier backs a nil notifier argument so the store never has to nil-check.
type noopNotifier struct{}

func (noopNotifier) Notify(domain.Notification) {}
